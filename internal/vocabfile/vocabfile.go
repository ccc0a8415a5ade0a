// Package vocabfile reads and writes the line-oriented vocabulary format:
//
//	#input en
//	#output de
//	#name Tiere;animals
//	Hund;dog
//	#verb gehen;to go
package vocabfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wordtrainer/internal/domain"
)

const (
	inputDirective  = "#input"
	outputDirective = "#output"
	separator       = ";"
)

// ErrInvalidLine is wrapped by every FormatError
var ErrInvalidLine = errors.New("invalid line")

// FormatError reports a malformed line
type FormatError struct {
	Line int
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: invalid line %q", e.Line, e.Text)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidLine
}

// Load reads a vocabulary file
func Load(path string) (*domain.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	v, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse reads a whole vocabulary. Words keep file order.
func Parse(r io.Reader) (*domain.Vocabulary, error) {
	var (
		name           *domain.Word
		words          []domain.Word
		inputLanguage  string
		outputLanguage string
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitDirective(line)
		switch tag {
		case inputDirective, outputDirective:
			if rest == "" {
				return nil, &FormatError{Line: lineNo, Text: line}
			}
			if tag == inputDirective {
				inputLanguage = rest
			} else {
				outputLanguage = rest
			}
			continue
		}

		word, ok := parseWord(rest, domain.ParseDirective(tag))
		if !ok {
			return nil, &FormatError{Line: lineNo, Text: line}
		}
		if word.IsName() {
			w := word
			name = &w
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	return domain.NewVocabulary(name, words, inputLanguage, outputLanguage), nil
}

// splitDirective separates a leading #tag from the rest of the line
func splitDirective(line string) (string, string) {
	if !strings.HasPrefix(line, "#") {
		return "", line
	}
	tag, rest, found := strings.Cut(line, " ")
	if !found {
		return tag, ""
	}
	return tag, strings.TrimSpace(rest)
}

func parseWord(text string, directive domain.Directive) (domain.Word, bool) {
	parts := strings.Split(text, separator)
	if len(parts) != 2 {
		return domain.Word{}, false
	}
	return domain.Word{Output: parts[0], Input: parts[1], Directive: directive}, true
}

// Write renders v in the vocabulary format
func Write(w io.Writer, v *domain.Vocabulary) error {
	bw := bufio.NewWriter(w)

	if v.InputLanguage != "" {
		fmt.Fprintf(bw, "%s %s\n", inputDirective, v.InputLanguage)
	}
	if v.OutputLanguage != "" {
		fmt.Fprintf(bw, "%s %s\n", outputDirective, v.OutputLanguage)
	}
	for _, word := range v.Words() {
		fmt.Fprintln(bw, word.Line())
	}

	return bw.Flush()
}

// Append adds the words of v at the end of the file at path, creating it if needed
func Append(path string, v *domain.Vocabulary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	for _, word := range v.Words() {
		fmt.Fprintln(bw, word.Line())
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
