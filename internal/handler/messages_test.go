package handler

import (
	"testing"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestFormatGuess(t *testing.T) {
	tests := []struct {
		name     string
		result   service.GuessResult
		expected string
	}{
		{
			name:     "right answer",
			result:   service.GuessResult{Attempt: domain.WordAttempt{Success: true}},
			expected: "Great :)",
		},
		{
			name:     "right answer on complex word",
			result:   service.GuessResult{Attempt: domain.WordAttempt{Success: true}, Hint: "le chat (m)"},
			expected: "Great :) le chat (m)",
		},
		{
			name:     "wrong answer",
			result:   service.GuessResult{Attempt: domain.WordAttempt{Success: false}, Hint: "chat"},
			expected: "! chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatGuess(&tt.result))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	result := &service.GuessResult{
		Finished:        true,
		Accuracy:        50,
		NewWordsLearned: 1,
		WordsLeft:       []domain.Word{domain.NewWord("chat", "cat")},
	}

	assert.Equal(t,
		"🏁 Finished!\nnew words learned = 1\naccuracy = 50.0%\n\nMost missed:\ncat — chat",
		formatSummary(result))

	result.WordsLeft = nil
	assert.Equal(t, "🏁 Finished!\nnew words learned = 1\naccuracy = 50.0%", formatSummary(result))
}

func TestFormatSummary_CapsMissedWords(t *testing.T) {
	words := make([]domain.Word, 0, 15)
	for i := 0; i < 15; i++ {
		words = append(words, domain.NewWord("x", string(rune('a'+i))))
	}

	summary := formatSummary(&service.GuessResult{WordsLeft: words})

	assert.Contains(t, summary, "\nj — x")
	assert.NotContains(t, summary, "\nk — x")
}

func TestVocabularyEntry_ButtonText(t *testing.T) {
	name := domain.Word{Output: "animaux", Input: "animals", Directive: domain.NameDirective()}
	v := domain.NewVocabulary(&name, []domain.Word{name, domain.NewWord("chat", "cat")}, "en", "fr")
	accuracy := 87.5

	assert.Equal(t, "animals English→French (2 words)", vocabularyEntry{Vocabulary: v}.buttonText())
	assert.Equal(t, "animals English→French (2 words) · 88%", vocabularyEntry{Vocabulary: v, Accuracy: &accuracy}.buttonText())
}

func TestSortEntries(t *testing.T) {
	high, low := 90.0, 40.0
	a := vocabularyEntry{Vocabulary: &domain.Vocabulary{ID: 1}, Accuracy: &high}
	b := vocabularyEntry{Vocabulary: &domain.Vocabulary{ID: 2}}
	c := vocabularyEntry{Vocabulary: &domain.Vocabulary{ID: 3}, Accuracy: &low}

	entries := []vocabularyEntry{a, b, c}
	sortEntries(entries)

	ids := []int64{entries[0].Vocabulary.ID, entries[1].Vocabulary.ID, entries[2].Vocabulary.ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestFormatLanguages(t *testing.T) {
	assert.Equal(t, "You speak: French, German", formatLanguages([]string{"fr", "de"}))
	assert.Contains(t, formatLanguages(nil), "/speak")
}

func TestFormatDays(t *testing.T) {
	days := []domain.Day{{Date: time.Now(), AttemptCount: 4, SuccessCount: 3}}

	assert.Equal(t, "📅 Your activity:\n\nToday: 4 answers, 75% right", formatDays(days))
}

func TestFormatStreaks(t *testing.T) {
	assert.Equal(t, "Not enough answers yet", formatStreaks(nil))
	assert.Equal(t,
		"📈 Chance of a right answer after a streak:\n1 in a row: 50% (2 answers)",
		formatStreaks([]service.StreakStat{{Streak: 1, Probability: 0.5, Total: 2}}))
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "3/5 words learned", formatProgress(5, 2))
	assert.Equal(t, "> cat", formatPrompt(domain.NewWord("chat", "cat")))
}
