package service

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/vocabfile"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	// ErrVocabularyNotFound is returned when a vocabulary does not exist
	// or is not offered to the user
	ErrVocabularyNotFound = errors.New("vocabulary not found")

	// ErrDuplicateWord is returned when a word is already in the vocabulary
	ErrDuplicateWord = errors.New("word already in vocabulary")
)

// WordStat is the share of wrong answers given for a word, in percent
type WordStat struct {
	Word      domain.Word
	ErrorRate float64
}

// VocabularyStats lists the answered words of a vocabulary, most missed first
type VocabularyStats struct {
	Vocabulary *domain.Vocabulary
	Words      []WordStat
}

// VocabularyService handles vocabulary import and listing
type VocabularyService struct {
	vocRepo  repository.VocabularyRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocRepo repository.VocabularyRepository, userRepo repository.UserRepository, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		vocRepo:  vocRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Import parses a vocabulary and stores it
func (s *VocabularyService) Import(r io.Reader) (*domain.Vocabulary, error) {
	v, err := vocabfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return s.store(v)
}

// ImportFile loads a vocabulary file and stores it
func (s *VocabularyService) ImportFile(path string) (*domain.Vocabulary, error) {
	v, err := vocabfile.Load(path)
	if err != nil {
		return nil, err
	}
	return s.store(v)
}

func (s *VocabularyService) store(v *domain.Vocabulary) (*domain.Vocabulary, error) {
	if v.InputLanguage == "" || v.OutputLanguage == "" {
		return nil, fmt.Errorf("vocabulary %q must declare its input and output languages", v)
	}
	for _, code := range []string{v.InputLanguage, v.OutputLanguage} {
		if _, ok := domain.LanguageFromCode(code); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
		}
	}

	id, err := s.vocRepo.CreateVocabulary(v)
	if err != nil {
		return nil, fmt.Errorf("failed to store vocabulary: %w", err)
	}

	s.logger.Info("Vocabulary imported",
		zap.Int64("vocabulary_id", id),
		zap.String("name", v.String()),
		zap.Int("words", v.Len()))
	return v, nil
}

// ListForUser returns the vocabularies offered to a user, oriented so that the
// prompt is in a language the user speaks. Vocabularies where the user speaks
// both languages or none are left out. A user with no languages gets every
// vocabulary as stored.
func (s *VocabularyService) ListForUser(userID int64) ([]*domain.Vocabulary, error) {
	user, err := s.userRepo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	vocabularies, err := s.vocRepo.ListVocabularies()
	if err != nil {
		return nil, err
	}

	if len(user.Languages) == 0 {
		return vocabularies, nil
	}

	return lo.FilterMap(vocabularies, func(v *domain.Vocabulary, _ int) (*domain.Vocabulary, bool) {
		return orientFor(v, user)
	}), nil
}

// orientFor flips v when the user speaks its output language only
func orientFor(v *domain.Vocabulary, user *domain.User) (*domain.Vocabulary, bool) {
	knowInput := user.Speaks(v.InputLanguage)
	knowOutput := user.Speaks(v.OutputLanguage)

	if knowInput == knowOutput {
		return nil, false
	}
	if knowOutput {
		return v.Flip(), true
	}
	return v, true
}

// GetForUser returns one vocabulary oriented for the user
func (s *VocabularyService) GetForUser(userID, vocabularyID int64) (*domain.Vocabulary, error) {
	vocabularies, err := s.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	v, ok := lo.Find(vocabularies, func(v *domain.Vocabulary) bool {
		return v.ID == vocabularyID
	})
	if !ok {
		return nil, ErrVocabularyNotFound
	}
	return v, nil
}

// Stats returns the error rate of every answered word of a vocabulary
func (s *VocabularyService) Stats(vocabularyID int64) (*VocabularyStats, error) {
	v, err := s.get(vocabularyID)
	if err != nil {
		return nil, err
	}

	counts, err := s.vocRepo.WordAttemptCounts(vocabularyID)
	if err != nil {
		return nil, err
	}

	stats := &VocabularyStats{Vocabulary: v}
	for _, c := range counts {
		total := c.Errors + c.Successes
		if total == 0 {
			continue
		}
		w, ok := v.Word(c.WordID)
		if !ok {
			s.logger.Warn("Attempt count for unknown word",
				zap.Int64("vocabulary_id", vocabularyID),
				zap.Int64("word_id", c.WordID))
			continue
		}
		stats.Words = append(stats.Words, WordStat{
			Word:      w,
			ErrorRate: float64(c.Errors) / float64(total) * 100,
		})
	}

	sort.SliceStable(stats.Words, func(i, j int) bool {
		return stats.Words[i].ErrorRate > stats.Words[j].ErrorRate
	})
	return stats, nil
}

// Delete removes a vocabulary together with its sessions
func (s *VocabularyService) Delete(vocabularyID int64) error {
	err := s.vocRepo.DeleteVocabulary(vocabularyID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVocabularyNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("Vocabulary deleted", zap.Int64("vocabulary_id", vocabularyID))
	return nil
}

// AddWord appends a word to a stored vocabulary
func (s *VocabularyService) AddWord(vocabularyID int64, word domain.Word) (int64, error) {
	if word.Input == "" || word.Output == "" {
		return 0, fmt.Errorf("word input and output cannot be empty")
	}
	v, err := s.get(vocabularyID)
	if err != nil {
		return 0, err
	}
	if v.Contains(word) {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateWord, word.Input)
	}
	return s.vocRepo.AddWord(vocabularyID, word)
}

// UpdateWord replaces a stored word with a corrected one
func (s *VocabularyService) UpdateWord(vocabularyID int64, old, updated domain.Word) error {
	if updated.Input == "" || updated.Output == "" {
		return fmt.Errorf("word input and output cannot be empty")
	}

	v, err := s.get(vocabularyID)
	if err != nil {
		return err
	}

	wordID, ok := v.WordID(old)
	if !ok {
		return fmt.Errorf("word %q is not part of vocabulary %d", old.Input, vocabularyID)
	}
	if updated != old && v.Contains(updated) {
		return fmt.Errorf("%w: %q", ErrDuplicateWord, updated.Input)
	}
	return s.vocRepo.UpdateWord(wordID, updated)
}

func (s *VocabularyService) get(vocabularyID int64) (*domain.Vocabulary, error) {
	v, err := s.vocRepo.GetVocabulary(vocabularyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVocabularyNotFound
	}
	return v, err
}
