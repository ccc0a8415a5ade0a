package service

import (
	"errors"
	"fmt"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/learn"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned when a session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionFinished is returned when guessing in a finished session
	ErrSessionFinished = errors.New("session already finished")
)

// LearningSession is a stored session rebuilt in memory
type LearningSession struct {
	ID     int64
	UserID int64
	*learn.Session
}

// GuessResult describes the outcome of one answer
type GuessResult struct {
	Attempt domain.WordAttempt
	// Prompt is the word that was asked
	Prompt domain.Word
	// Hint is the full answer to show, empty when nothing needs showing
	Hint string
	Next *domain.Word

	Finished        bool
	Accuracy        float64
	NewWordsLearned int
	WordsLeft       []domain.Word
}

// SessionService runs learning sessions and keeps them in storage
type SessionService struct {
	sessionRepo  repository.SessionRepository
	vocRepo      repository.VocabularyRepository
	vocabularies *VocabularyService
	logger       *zap.Logger
	options      []learn.Option
	locks        *keyedMutex
}

// NewSessionService creates a new session service.
// Options are passed to every session; a random source given with
// learn.WithRand must be safe for concurrent use.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	vocRepo repository.VocabularyRepository,
	vocabularies *VocabularyService,
	logger *zap.Logger,
	options ...learn.Option,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		vocRepo:      vocRepo,
		vocabularies: vocabularies,
		logger:       logger,
		options:      options,
		locks:        newKeyedMutex(),
	}
}

// Start creates a new session over a vocabulary, oriented for the user
func (s *SessionService) Start(userID, vocabularyID int64) (*LearningSession, error) {
	v, err := s.vocabularies.GetForUser(userID, vocabularyID)
	if err != nil {
		return nil, err
	}

	session, err := learn.NewSession(v, nil, nil, s.options...)
	if err != nil {
		return nil, err
	}

	currentID, err := wordID(v, session.CurrentWord())
	if err != nil {
		return nil, err
	}

	id, err := s.sessionRepo.CreateSession(repository.NewSessionRecord{
		UserID:        userID,
		Vocabularies:  []repository.SessionVocabulary{{VocabularyID: v.ID, Flipped: v.Flipped}},
		CurrentWordID: currentID,
		Finished:      session.IsFinished(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session started",
		zap.Int64("user_id", userID),
		zap.Int64("session_id", id),
		zap.Int64("vocabulary_id", v.ID),
		zap.Bool("flipped", v.Flipped))

	return &LearningSession{ID: id, UserID: userID, Session: session}, nil
}

// Open resumes the user's last unfinished session over a vocabulary,
// or starts a new one
func (s *SessionService) Open(userID, vocabularyID int64) (*LearningSession, error) {
	unfinished := false
	session, err := s.LastSession(userID, vocabularyID, &unfinished)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	return s.Start(userID, vocabularyID)
}

// Resume rebuilds a stored session by replaying its attempts
func (s *SessionService) Resume(sessionID int64) (*LearningSession, error) {
	rec, err := s.sessionRepo.GetSession(sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.load(rec)
}

// LastSession returns the user's most recent session over a vocabulary,
// nil when there is none. A nil finished matches any session.
func (s *SessionService) LastSession(userID, vocabularyID int64, finished *bool) (*LearningSession, error) {
	rec, err := s.sessionRepo.LastSession(userID, vocabularyID, finished)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return s.load(rec)
}

// LastAccuracies returns, per vocabulary id, the accuracy of the user's most
// recent finished session. Vocabularies never finished are absent.
func (s *SessionService) LastAccuracies(userID int64) (map[int64]float64, error) {
	summaries, err := s.sessionRepo.LastFinishedSummaries(userID)
	if err != nil {
		return nil, err
	}

	accuracies := make(map[int64]float64, len(summaries))
	for _, f := range summaries {
		accuracies[f.VocabularyID] = learn.Accuracy(f.Missed, f.Words)
	}
	return accuracies, nil
}

func (s *SessionService) load(rec *repository.SessionRecord) (*LearningSession, error) {
	v := domain.NewVocabulary(nil, nil, "", "")
	flipped := false

	for _, sv := range rec.Vocabularies {
		stored, err := s.vocRepo.GetVocabulary(sv.VocabularyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary %d: %w", sv.VocabularyID, err)
		}
		if v.Name == nil {
			v.Name = stored.Name
		}
		if v.ID == 0 {
			v.ID = stored.ID
		}
		v.Add(stored)
		flipped = flipped || sv.Flipped
	}
	if flipped {
		v = v.Flip()
	}

	records, err := s.sessionRepo.ListAttempts(rec.ID)
	if err != nil {
		return nil, err
	}

	attempts := make([]domain.WordAttempt, 0, len(records))
	for _, r := range records {
		w, ok := v.Word(r.WordID)
		if !ok {
			return nil, fmt.Errorf("session %d, word %d: %w", rec.ID, r.WordID, learn.ErrUnknownWord)
		}
		attempts = append(attempts, domain.WordAttempt{
			Word:      w,
			TypedWord: r.TypedWord,
			Success:   r.Success,
			Time:      r.Time,
		})
	}

	var current *domain.Word
	if rec.CurrentWordID != nil {
		w, ok := v.Word(*rec.CurrentWordID)
		if !ok {
			return nil, fmt.Errorf("session %d, current word %d: %w", rec.ID, *rec.CurrentWordID, learn.ErrInvalidCurrentWord)
		}
		current = &w
	}

	session, err := learn.NewSession(v, attempts, current, s.options...)
	if err != nil {
		return nil, fmt.Errorf("session %d: %w", rec.ID, err)
	}

	return &LearningSession{ID: rec.ID, UserID: rec.UserID, Session: session}, nil
}

// Guess answers the current word of a session and stores the attempt
func (s *SessionService) Guess(sessionID int64, typed string) (*GuessResult, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.Resume(sessionID)
	if err != nil {
		return nil, err
	}

	prompt := session.CurrentWord()
	if prompt == nil {
		return nil, ErrSessionFinished
	}

	attempt, ok := session.Guess(*prompt, typed)
	if !ok {
		return nil, fmt.Errorf("session %d: %w", sessionID, learn.ErrInvalidCurrentWord)
	}

	v := session.Vocabulary()
	answeredID, err := wordID(v, &attempt.Word)
	if err != nil {
		return nil, err
	}
	next := session.CurrentWord()
	nextID, err := wordID(v, next)
	if err != nil {
		return nil, err
	}

	record := repository.AttemptRecord{
		WordID:    *answeredID,
		TypedWord: attempt.TypedWord,
		Success:   attempt.Success,
		Time:      attempt.Time,
	}
	if err := s.sessionRepo.AddAttempt(sessionID, record, nextID, session.IsFinished()); err != nil {
		return nil, fmt.Errorf("failed to store attempt: %w", err)
	}

	result := &GuessResult{
		Attempt:         attempt,
		Prompt:          *prompt,
		Next:            next,
		Finished:        session.IsFinished(),
		Accuracy:        session.Accuracy(),
		NewWordsLearned: session.NewWordsLearned(),
		WordsLeft:       session.WordsLeft(),
	}
	if !attempt.Success || prompt.IsComplex() {
		result.Hint = prompt.Output
	}

	if result.Finished {
		s.logger.Info("Session finished",
			zap.Int64("user_id", session.UserID),
			zap.Int64("session_id", sessionID),
			zap.Float64("accuracy", result.Accuracy))
	}

	return result, nil
}

func wordID(v *domain.Vocabulary, w *domain.Word) (*int64, error) {
	if w == nil {
		return nil, nil
	}
	id, ok := v.WordID(*w)
	if !ok {
		return nil, fmt.Errorf("word %q has no storage id: %w", w.Input, learn.ErrIntegrity)
	}
	return &id, nil
}

// keyedMutex serializes work on the same key
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	waiters int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*keyedLock)}
}

// Lock locks key and returns the matching unlock function
func (k *keyedMutex) Lock(key int64) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.waiters++
	k.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		k.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
