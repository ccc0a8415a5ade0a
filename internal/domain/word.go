package domain

import (
	"fmt"
	"strings"
)

// DirectiveKind tells how a word was tagged in its vocabulary file
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectiveName
	DirectiveOther
)

// NameTag marks the word holding the vocabulary's display name
const NameTag = "#name"

// Directive is an optional tag attached to a word
type Directive struct {
	Kind DirectiveKind
	Tag  string
}

// NoDirective is the directive of a plain word
func NoDirective() Directive {
	return Directive{Kind: DirectiveNone}
}

// NameDirective marks a word as the vocabulary's display name
func NameDirective() Directive {
	return Directive{Kind: DirectiveName, Tag: NameTag}
}

// OtherDirective keeps an unrecognized tag verbatim
func OtherDirective(tag string) Directive {
	if tag == NameTag {
		return NameDirective()
	}
	return Directive{Kind: DirectiveOther, Tag: tag}
}

// ParseDirective converts a stored tag back into a Directive.
// An empty tag means no directive.
func ParseDirective(tag string) Directive {
	if tag == "" {
		return NoDirective()
	}
	return OtherDirective(tag)
}

// String returns the tag as written in vocabulary files, empty for none
func (d Directive) String() string {
	if d.Kind == DirectiveNone {
		return ""
	}
	return d.Tag
}

// Word is a prompt/answer pair. Words are values: two words with
// the same fields are interchangeable.
type Word struct {
	// Output is the answer side, the one the learner types
	Output string
	// Input is the prompt side, shown to the learner
	Input     string
	Directive Directive
}

// NewWord creates a word without directive
func NewWord(output, input string) Word {
	return Word{Output: output, Input: input, Directive: NoDirective()}
}

// Key groups words sharing the same prompt.
// A guess is right if it matches any word with the same key.
func (w Word) Key() string {
	return Normalize(w.Input)
}

// SimplifiedOutput returns the normalized answer
func (w Word) SimplifiedOutput() string {
	return Normalize(w.Output)
}

// IsComplex reports whether the answer carries hints or markup
func (w Word) IsComplex() bool {
	return w.Output != w.SimplifiedOutput()
}

// IsName reports whether the word holds the vocabulary's display name
func (w Word) IsName() bool {
	return w.Directive.Kind == DirectiveName
}

// Flip swaps prompt and answer
func (w Word) Flip() Word {
	return Word{Output: w.Input, Input: w.Output, Directive: w.Directive}
}

// Accepts checks a typed answer. Only the stored answer is normalized,
// the typed one is just lower-cased.
func (w Word) Accepts(typed string) bool {
	return w.SimplifiedOutput() == strings.ToLower(typed)
}

// Line renders the word in vocabulary file format
func (w Word) Line() string {
	line := fmt.Sprintf("%s;%s", w.Output, w.Input)
	if w.Directive.Kind != DirectiveNone {
		line = w.Directive.Tag + " " + line
	}
	return line
}
