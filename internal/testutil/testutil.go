package testutil

import (
	"time"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates an authorized user speaking the given languages
func NewTestUser(userID int64, languages ...string) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: true,
		Languages:  languages,
		CreatedAt:  time.Now(),
	}
}

// NewTestVocabulary creates a stored vocabulary whose words get ids firstWordID, firstWordID+1, ...
func NewTestVocabulary(id, firstWordID int64, inputLanguage, outputLanguage string, words ...domain.Word) *domain.Vocabulary {
	v := domain.NewVocabulary(nil, words, inputLanguage, outputLanguage)
	v.ID = id
	for i, w := range words {
		if w.IsName() {
			name := w
			v.Name = &name
		}
		v.SetWordID(w, firstWordID+int64(i))
	}
	return v
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, attempts, successes int) domain.Day {
	return domain.Day{
		Date:         date,
		AttemptCount: attempts,
		SuccessCount: successes,
	}
}

// FirstRand always picks the first candidate word
type FirstRand struct{}

func (FirstRand) Intn(int) int { return 0 }
