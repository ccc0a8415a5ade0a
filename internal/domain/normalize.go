package domain

import (
	"regexp"
	"strings"
)

// parenthesisGroup matches an innermost "(...)" group and the whitespace around it,
// Unicode spaces included
var parenthesisGroup = regexp.MustCompile(`[\s\p{Z}\x{85}]*\([^()]*\)[\s\p{Z}\x{85}]*`)

var markupReplacer = strings.NewReplacer("|", "", "*", "")

// Normalize reduces a word to the form used for comparisons:
// lower-cased, without markup markers and without parenthesized hints
func Normalize(word string) string {
	word = strings.ToLower(word)
	word = markupReplacer.Replace(word)

	for {
		stripped := parenthesisGroup.ReplaceAllString(word, " ")
		if stripped == word {
			break
		}
		word = stripped
	}

	return strings.TrimSpace(word)
}
