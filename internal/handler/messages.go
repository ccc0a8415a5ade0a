package handler

import (
	"fmt"
	"sort"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	"github.com/samber/lo"
)

// maxWordsLeft caps the missed words listed at the end of a session
const maxWordsLeft = 10

type vocabularyEntry struct {
	Vocabulary *domain.Vocabulary
	// Accuracy of the last finished session, nil when none
	Accuracy *float64
}

func (e vocabularyEntry) buttonText() string {
	text := formatVocabularyName(e.Vocabulary)
	if e.Accuracy != nil {
		text += fmt.Sprintf(" · %.0f%%", *e.Accuracy)
	}
	return text
}

// sortEntries puts vocabularies never finished first, then by increasing accuracy
func sortEntries(entries []vocabularyEntry) {
	score := func(e vocabularyEntry) float64 {
		if e.Accuracy == nil {
			return 0
		}
		return *e.Accuracy
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return score(entries[i]) < score(entries[j])
	})
}

func formatVocabularyName(v *domain.Vocabulary) string {
	return fmt.Sprintf("%s %s→%s (%d words)",
		v, domain.LanguageName(v.InputLanguage), domain.LanguageName(v.OutputLanguage), v.Len())
}

func formatProgress(total, outstanding int) string {
	return fmt.Sprintf("%d/%d words learned", total-outstanding, total)
}

func formatPrompt(w domain.Word) string {
	return "> " + w.Input
}

func formatGuess(r *service.GuessResult) string {
	if !r.Attempt.Success {
		return "! " + r.Hint
	}
	if r.Hint != "" {
		return "Great :) " + r.Hint
	}
	return "Great :)"
}

func formatSummary(r *service.GuessResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Finished!\nnew words learned = %d\naccuracy = %.1f%%", r.NewWordsLearned, r.Accuracy)

	if len(r.WordsLeft) > 0 {
		b.WriteString("\n\nMost missed:")
		for _, w := range lo.Slice(r.WordsLeft, 0, maxWordsLeft) {
			fmt.Fprintf(&b, "\n%s — %s", w.Input, w.Output)
		}
	}
	return b.String()
}

func formatDays(days []domain.Day) string {
	var b strings.Builder
	b.WriteString("📅 Your activity:\n")
	for _, day := range days {
		fmt.Fprintf(&b, "\n%s: %d answers, %.0f%% right", day.DisplayString(), day.AttemptCount, day.Accuracy())
	}
	return b.String()
}

func formatLanguages(codes []string) string {
	if len(codes) == 0 {
		return "You speak no language yet. Set them with /speak fr en"
	}
	names := lo.Map(codes, func(code string, _ int) string {
		return domain.LanguageName(code)
	})
	return "You speak: " + strings.Join(names, ", ")
}

func formatStreaks(stats []service.StreakStat) string {
	if len(stats) == 0 {
		return "Not enough answers yet"
	}
	var b strings.Builder
	b.WriteString("📈 Chance of a right answer after a streak:")
	for _, s := range stats {
		fmt.Fprintf(&b, "\n%d in a row: %.0f%% (%d answers)", s.Streak, s.Probability*100, s.Total)
	}
	return b.String()
}
