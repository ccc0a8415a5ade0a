package service

import (
	"errors"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrWrongPassword is returned when the bot password does not match
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnknownLanguage is returned for a language code the trainer does not know
	ErrUnknownLanguage = errors.New("unknown language")
)

// AuthService handles authentication and user preferences
type AuthService struct {
	userRepo     repository.UserRepository
	passwordHash []byte
}

// NewAuthService creates a new auth service checking passwords against a bcrypt hash
func NewAuthService(userRepo repository.UserRepository, passwordHash string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		passwordHash: []byte(passwordHash),
	}
}

// HashPassword hashes the bot password for NewAuthService
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPassword
		}
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}

// SetLanguages stores the languages a user speaks. Codes are checked and de-duplicated.
func (s *AuthService) SetLanguages(userID int64, codes []string) ([]string, error) {
	codes = lo.Uniq(codes)
	for _, code := range codes {
		if _, ok := domain.LanguageFromCode(code); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
		}
	}
	if err := s.userRepo.SetLanguages(userID, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Languages returns the languages a user speaks
func (s *AuthService) Languages(userID int64) ([]string, error) {
	user, err := s.userRepo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return user.Languages, nil
}
