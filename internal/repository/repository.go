package repository

import (
	"errors"
	"time"

	"wordtrainer/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	GetUser(userID int64) (*domain.User, error)
	SetLanguages(userID int64, languages []string) error
}

// VocabularyRepository defines vocabulary data operations
type VocabularyRepository interface {
	CreateVocabulary(v *domain.Vocabulary) (int64, error)
	GetVocabulary(id int64) (*domain.Vocabulary, error)
	ListVocabularies() ([]*domain.Vocabulary, error)
	DeleteVocabulary(id int64) error
	AddWord(vocabularyID int64, word domain.Word) (int64, error)
	UpdateWord(wordID int64, word domain.Word) error
	WordAttemptCounts(vocabularyID int64) ([]WordAttemptCount, error)
}

// SessionRepository defines learning session data operations
type SessionRepository interface {
	CreateSession(s NewSessionRecord) (int64, error)
	GetSession(id int64) (*SessionRecord, error)
	ListAttempts(sessionID int64) ([]AttemptRecord, error)
	AddAttempt(sessionID int64, attempt AttemptRecord, currentWordID *int64, finished bool) error
	LastSession(userID, vocabularyID int64, finished *bool) (*SessionRecord, error)
	LastFinishedSummaries(userID int64) ([]FinishedSummary, error)
	CleanAbandonedSessions(days int) (int64, error)
	UserAttemptHistory(userID int64) ([]AttemptRecord, error)
	GetActivityDays(userID int64, limit, offset int) ([]domain.Day, error)
	GetTotalActivityDays(userID int64) (int, error)
}

// SessionVocabulary links a session to one of its vocabularies
type SessionVocabulary struct {
	VocabularyID int64
	Flipped      bool
}

// NewSessionRecord holds what is stored when a session starts
type NewSessionRecord struct {
	UserID        int64
	Vocabularies  []SessionVocabulary
	CurrentWordID *int64
	Finished      bool
}

// SessionRecord is a stored session
type SessionRecord struct {
	ID            int64
	UserID        int64
	CurrentWordID *int64
	Finished      bool
	CreatedAt     time.Time
	Vocabularies  []SessionVocabulary
}

// AttemptRecord is a stored word attempt
type AttemptRecord struct {
	WordID    int64
	TypedWord string
	Success   bool
	Time      time.Time
}

// WordAttemptCount sums up the answers given for one word
type WordAttemptCount struct {
	WordID    int64
	Errors    int
	Successes int
}

// FinishedSummary counts the words of the last finished session of a user
// over a vocabulary and the ones answered wrongly at least once
type FinishedSummary struct {
	VocabularyID int64
	SessionID    int64
	Words        int
	Missed       int
}
