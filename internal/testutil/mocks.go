package testutil

import (
	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetLanguages(userID int64, languages []string) error {
	args := m.Called(userID, languages)
	return args.Error(0)
}

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) CreateVocabulary(v *domain.Vocabulary) (int64, error) {
	args := m.Called(v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) GetVocabulary(id int64) (*domain.Vocabulary, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) ListVocabularies() ([]*domain.Vocabulary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) DeleteVocabulary(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVocabularyRepository) AddWord(vocabularyID int64, word domain.Word) (int64, error) {
	args := m.Called(vocabularyID, word)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) UpdateWord(wordID int64, word domain.Word) error {
	args := m.Called(wordID, word)
	return args.Error(0)
}

func (m *MockVocabularyRepository) WordAttemptCounts(vocabularyID int64) ([]repository.WordAttemptCount, error) {
	args := m.Called(vocabularyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.WordAttemptCount), args.Error(1)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(s repository.NewSessionRecord) (int64, error) {
	args := m.Called(s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) GetSession(id int64) (*repository.SessionRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SessionRecord), args.Error(1)
}

func (m *MockSessionRepository) ListAttempts(sessionID int64) ([]repository.AttemptRecord, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttemptRecord), args.Error(1)
}

func (m *MockSessionRepository) AddAttempt(sessionID int64, attempt repository.AttemptRecord, currentWordID *int64, finished bool) error {
	args := m.Called(sessionID, attempt, currentWordID, finished)
	return args.Error(0)
}

func (m *MockSessionRepository) LastSession(userID, vocabularyID int64, finished *bool) (*repository.SessionRecord, error) {
	args := m.Called(userID, vocabularyID, finished)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SessionRecord), args.Error(1)
}

func (m *MockSessionRepository) CleanAbandonedSessions(days int) (int64, error) {
	args := m.Called(days)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) LastFinishedSummaries(userID int64) ([]repository.FinishedSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FinishedSummary), args.Error(1)
}

func (m *MockSessionRepository) UserAttemptHistory(userID int64) ([]repository.AttemptRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttemptRecord), args.Error(1)
}

func (m *MockSessionRepository) GetActivityDays(userID int64, limit, offset int) ([]domain.Day, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockSessionRepository) GetTotalActivityDays(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
