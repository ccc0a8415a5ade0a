package postgres

import (
	"database/sql"

	"wordtrainer/internal/domain"

	"github.com/lib/pq"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetUser returns a user with the languages they speak.
// A user not stored yet is returned unauthorized and without languages.
func (r *UserRepo) GetUser(userID int64) (*domain.User, error) {
	u := domain.User{UserID: userID}
	query := `
		SELECT authorized, languages, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(&u.Authorized, pq.Array(&u.Languages), &u.CreatedAt)

	if err == sql.ErrNoRows {
		return &u, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// SetLanguages replaces the languages the user speaks
func (r *UserRepo) SetLanguages(userID int64, languages []string) error {
	query := `
		INSERT INTO users (user_id, languages)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET languages = EXCLUDED.languages
	`
	_, err := r.db.Exec(query, userID, pq.Array(languages))
	return err
}
