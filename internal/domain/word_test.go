package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord_Derived(t *testing.T) {
	w := Word{Output: "das Haus (n)", Input: "House", Directive: NoDirective()}

	assert.Equal(t, "house", w.Key())
	assert.Equal(t, "das haus", w.SimplifiedOutput())
	assert.True(t, w.IsComplex())
	assert.False(t, w.IsName())

	plain := NewWord("baum", "tree")
	assert.False(t, plain.IsComplex())

	// upper case counts as markup once normalized
	assert.True(t, NewWord("Baum", "tree").IsComplex())
}

func TestWord_Flip(t *testing.T) {
	w := Word{Output: "Haus", Input: "house", Directive: NameDirective()}

	flipped := w.Flip()
	assert.Equal(t, "house", flipped.Output)
	assert.Equal(t, "Haus", flipped.Input)
	assert.Equal(t, NameDirective(), flipped.Directive)
	assert.Equal(t, w, flipped.Flip())
}

func TestWord_Accepts(t *testing.T) {
	w := NewWord("das Haus (n)", "house")

	tests := []struct {
		name     string
		typed    string
		expected bool
	}{
		{name: "exact simplified", typed: "das haus", expected: true},
		{name: "different case", typed: "Das HAUS", expected: true},
		{name: "wrong word", typed: "der baum", expected: false},
		{name: "typed hint is not stripped", typed: "das haus (n)", expected: false},
		{name: "surrounding spaces are not stripped", typed: " das haus", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Accepts(tt.typed))
		})
	}
}

func TestWord_Line(t *testing.T) {
	assert.Equal(t, "Haus;house", NewWord("Haus", "house").Line())
	assert.Equal(t, "#name German;Allemand", Word{Output: "German", Input: "Allemand", Directive: NameDirective()}.Line())
	assert.Equal(t, "#verb gehen;to go", Word{Output: "gehen", Input: "to go", Directive: OtherDirective("#verb")}.Line())
}

func TestParseDirective(t *testing.T) {
	assert.Equal(t, NoDirective(), ParseDirective(""))
	assert.Equal(t, NameDirective(), ParseDirective("#name"))
	assert.Equal(t, Directive{Kind: DirectiveOther, Tag: "#verb"}, ParseDirective("#verb"))
	assert.Equal(t, "", NoDirective().String())
	assert.Equal(t, "#name", NameDirective().String())
}
