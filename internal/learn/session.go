// Package learn holds the quiz engine: it picks the next word to ask,
// checks answers and is rebuilt from the attempts stored for a session.
package learn

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"wordtrainer/internal/domain"
)

var (
	// ErrIntegrity is returned when a stored session does not match its vocabulary
	ErrIntegrity = errors.New("session integrity violation")

	// ErrUnknownWord is returned when an attempt refers to a word outside the vocabulary
	ErrUnknownWord = fmt.Errorf("%w: attempt for a word outside the vocabulary", ErrIntegrity)

	// ErrInvalidCurrentWord is returned when the current word is not outstanding
	ErrInvalidCurrentWord = fmt.Errorf("%w: current word is not outstanding", ErrIntegrity)
)

// Rand is the random source used to pick words
type Rand interface {
	Intn(n int) int
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source
func WithRand(r Rand) Option {
	return func(s *Session) {
		s.rand = r
	}
}

// WithClock sets the clock used to timestamp attempts
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the state of one quiz over a vocabulary.
// It is not safe for concurrent use.
type Session struct {
	vocabulary *domain.Vocabulary
	attempts   []domain.WordAttempt

	// outstanding words in vocabulary order, without duplicates
	outstanding []domain.Word
	errorCount  map[domain.Word]int
	current     *domain.Word

	rand Rand
	now  func() time.Time
}

// NewSession builds a session by replaying attempts over the vocabulary.
// When current is nil the word to ask is picked at random.
func NewSession(vocabulary *domain.Vocabulary, attempts []domain.WordAttempt, current *domain.Word, opts ...Option) (*Session, error) {
	s := &Session{
		vocabulary: vocabulary,
		attempts:   make([]domain.WordAttempt, 0, len(attempts)),
		errorCount: make(map[domain.Word]int),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, w := range vocabulary.Words() {
		if !s.isOutstanding(w) {
			s.outstanding = append(s.outstanding, w)
		}
	}

	for i, attempt := range attempts {
		if !vocabulary.Contains(attempt.Word) {
			return nil, fmt.Errorf("attempt %d (%q): %w", i, attempt.Word.Input, ErrUnknownWord)
		}
		if attempt.Success {
			// a success for an already learned word changes nothing
			s.remove(attempt.Word)
		} else {
			s.errorCount[attempt.Word]++
		}
		s.attempts = append(s.attempts, attempt)
	}

	if current != nil {
		if !s.isOutstanding(*current) {
			return nil, fmt.Errorf("current word %q: %w", current.Input, ErrInvalidCurrentWord)
		}
		w := *current
		s.current = &w
	} else {
		s.pickNext()
	}

	return s, nil
}

func (s *Session) isOutstanding(w domain.Word) bool {
	for _, o := range s.outstanding {
		if o == w {
			return true
		}
	}
	return false
}

func (s *Session) remove(w domain.Word) {
	for i, o := range s.outstanding {
		if o == w {
			s.outstanding = append(s.outstanding[:i], s.outstanding[i+1:]...)
			return
		}
	}
}

// pickNext chooses the next word among the outstanding ones,
// never the word just asked unless nothing else is left
func (s *Session) pickNext() {
	if len(s.outstanding) == 0 {
		s.current = nil
		return
	}

	candidates := s.outstanding
	if s.current != nil && !(len(s.outstanding) == 1 && s.outstanding[0] == *s.current) {
		candidates = make([]domain.Word, 0, len(s.outstanding))
		for _, w := range s.outstanding {
			if w != *s.current {
				candidates = append(candidates, w)
			}
		}
	}

	next := candidates[s.rand.Intn(len(candidates))]
	s.current = &next
}

// Guess submits an answer for word. The word may be the current word or any
// other outstanding one; otherwise nothing happens and false is returned.
// The answer is right if any word sharing the prompt accepts it.
func (s *Session) Guess(word domain.Word, typed string) (domain.WordAttempt, bool) {
	if s.current == nil || word != *s.current {
		if !s.isOutstanding(word) {
			return domain.WordAttempt{}, false
		}
	}

	success := false
	for _, similar := range s.vocabulary.SimilarWords(word) {
		if similar.Accepts(typed) {
			success = true
			break
		}
	}

	attempt := domain.WordAttempt{
		Word:      word,
		TypedWord: typed,
		Success:   success,
		Time:      s.now(),
	}
	s.attempts = append(s.attempts, attempt)

	if success {
		s.remove(word)
		s.current = nil
	} else {
		s.errorCount[word]++
	}
	s.pickNext()

	return attempt, true
}

// CurrentWord returns the word being asked, nil once finished
func (s *Session) CurrentWord() *domain.Word {
	if s.current == nil {
		return nil
	}
	w := *s.current
	return &w
}

// IsFinished reports whether every word was answered correctly
func (s *Session) IsFinished() bool {
	return s.current == nil
}

// Vocabulary returns the vocabulary being learned
func (s *Session) Vocabulary() *domain.Vocabulary {
	return s.vocabulary
}

// IsFlipped reports whether the vocabulary is asked in reverse
func (s *Session) IsFlipped() bool {
	return s.vocabulary.Flipped
}

// Attempts returns the attempts made so far, oldest first
func (s *Session) Attempts() []domain.WordAttempt {
	out := make([]domain.WordAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// Outstanding returns the words not yet answered correctly
func (s *Session) Outstanding() []domain.Word {
	out := make([]domain.Word, len(s.outstanding))
	copy(out, s.outstanding)
	return out
}

// ErrorCount returns the number of wrong answers given for w
func (s *Session) ErrorCount(w domain.Word) int {
	return s.errorCount[w]
}

func (s *Session) size() int {
	seen := make(map[domain.Word]struct{})
	for _, w := range s.vocabulary.Words() {
		seen[w] = struct{}{}
	}
	return len(seen)
}

// NewWordsLearned returns the number of words never answered wrongly
func (s *Session) NewWordsLearned() int {
	return s.size() - len(s.errorCount)
}

// Accuracy returns the share, in percent, of tested words answered without
// mistakes. Words never asked yet do not count. It is 100 when nothing was tested.
func (s *Session) Accuracy() float64 {
	errored := len(s.errorCount)

	untested := 0
	for _, w := range s.outstanding {
		if s.errorCount[w] == 0 {
			untested++
		}
	}

	return Accuracy(errored, s.size()-untested)
}

// Accuracy returns the share, in percent, of tested words that were never
// missed. It is 100 when nothing was tested.
func Accuracy(missed, tested int) float64 {
	if tested == 0 {
		return 100.0
	}
	return 100.0 - float64(missed)/float64(tested)*100.0
}

// WordsLeft returns the words answered wrongly at least once, most missed first.
// Ties keep vocabulary order.
func (s *Session) WordsLeft() []domain.Word {
	position := make(map[domain.Word]int)
	for i, w := range s.vocabulary.Words() {
		if _, ok := position[w]; !ok {
			position[w] = i
		}
	}

	words := make([]domain.Word, 0, len(s.errorCount))
	for w := range s.errorCount {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		ci, cj := s.errorCount[words[i]], s.errorCount[words[j]]
		if ci != cj {
			return ci > cj
		}
		return position[words[i]] < position[words[j]]
	})

	return words
}

// RemedialVocabulary returns the missed words as a vocabulary, most missed first
func (s *Session) RemedialVocabulary() *domain.Vocabulary {
	return domain.NewVocabulary(nil, s.WordsLeft(), s.vocabulary.InputLanguage, s.vocabulary.OutputLanguage)
}
