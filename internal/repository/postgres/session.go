package postgres

import (
	"database/sql"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// CreateSession stores a new session with its vocabularies
func (r *SessionRepo) CreateSession(s repository.NewSessionRecord) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	query := `
		INSERT INTO sessions (user_id, current_word_id, finished)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRow(query, s.UserID, nullID(s.CurrentWordID), s.Finished).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	for _, v := range s.Vocabularies {
		_, err := tx.Exec(`
			INSERT INTO session_vocabularies (session_id, vocabulary_id, flipped)
			VALUES ($1, $2, $3)
		`, id, v.VocabularyID, v.Flipped)
		if err != nil {
			return 0, fmt.Errorf("failed to link vocabulary %d: %w", v.VocabularyID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetSession returns a stored session with its vocabularies
func (r *SessionRepo) GetSession(id int64) (*repository.SessionRecord, error) {
	var (
		s       repository.SessionRecord
		current sql.NullInt64
	)
	query := `
		SELECT id, user_id, current_word_id, finished, created_at
		FROM sessions
		WHERE id = $1
	`
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.UserID, &current, &s.Finished, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if current.Valid {
		s.CurrentWordID = &current.Int64
	}

	vocabularies, err := r.sessionVocabularies(id)
	if err != nil {
		return nil, err
	}
	s.Vocabularies = vocabularies

	return &s, nil
}

func (r *SessionRepo) sessionVocabularies(sessionID int64) ([]repository.SessionVocabulary, error) {
	query := `
		SELECT vocabulary_id, flipped
		FROM session_vocabularies
		WHERE session_id = $1
		ORDER BY vocabulary_id
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vocabularies []repository.SessionVocabulary
	for rows.Next() {
		var v repository.SessionVocabulary
		if err := rows.Scan(&v.VocabularyID, &v.Flipped); err != nil {
			return nil, err
		}
		vocabularies = append(vocabularies, v)
	}

	return vocabularies, rows.Err()
}

// ListAttempts returns the attempts of a session in the order they were made
func (r *SessionRepo) ListAttempts(sessionID int64) ([]repository.AttemptRecord, error) {
	query := `
		SELECT word_id, typed_word, success, created_at
		FROM word_attempts
		WHERE session_id = $1
		ORDER BY id ASC
	`
	return r.queryAttempts(query, sessionID)
}

// UserAttemptHistory returns every attempt of a user, oldest first
func (r *SessionRepo) UserAttemptHistory(userID int64) ([]repository.AttemptRecord, error) {
	query := `
		SELECT a.word_id, a.typed_word, a.success, a.created_at
		FROM word_attempts a
		JOIN sessions s ON s.id = a.session_id
		WHERE s.user_id = $1
		ORDER BY a.created_at ASC, a.id ASC
	`
	return r.queryAttempts(query, userID)
}

func (r *SessionRepo) queryAttempts(query string, arg int64) ([]repository.AttemptRecord, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []repository.AttemptRecord
	for rows.Next() {
		var a repository.AttemptRecord
		if err := rows.Scan(&a.WordID, &a.TypedWord, &a.Success, &a.Time); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// AddAttempt stores an attempt and the session state that follows it
func (r *SessionRepo) AddAttempt(sessionID int64, attempt repository.AttemptRecord, currentWordID *int64, finished bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO word_attempts (session_id, word_id, typed_word, success, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, attempt.WordID, attempt.TypedWord, attempt.Success, attempt.Time)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE sessions
		SET current_word_id = $1, finished = $2
		WHERE id = $3
	`, nullID(currentWordID), finished, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if err := checkRowsAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

// LastSession returns the most recent session of a user over a vocabulary.
// When finished is set only sessions in that state are considered.
func (r *SessionRepo) LastSession(userID, vocabularyID int64, finished *bool) (*repository.SessionRecord, error) {
	query := `
		SELECT s.id
		FROM sessions s
		JOIN session_vocabularies sv ON sv.session_id = s.id
		WHERE s.user_id = $1
			AND sv.vocabulary_id = $2
			AND ($3::BOOLEAN IS NULL OR s.finished = $3)
		ORDER BY s.id DESC
		LIMIT 1
	`

	var state sql.NullBool
	if finished != nil {
		state = sql.NullBool{Bool: *finished, Valid: true}
	}

	var id int64
	err := r.db.QueryRow(query, userID, vocabularyID, state).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.GetSession(id)
}

// LastFinishedSummaries returns, per vocabulary, the word counts of the user's
// most recent finished session. Words are counted by content so that a word
// stored twice counts once.
func (r *SessionRepo) LastFinishedSummaries(userID int64) ([]repository.FinishedSummary, error) {
	query := `
		WITH last AS (
			SELECT DISTINCT ON (sv.vocabulary_id) sv.vocabulary_id, s.id AS session_id
			FROM sessions s
			JOIN session_vocabularies sv ON sv.session_id = s.id
			WHERE s.user_id = $1 AND s.finished
			ORDER BY sv.vocabulary_id, s.id DESC
		)
		SELECT l.vocabulary_id, l.session_id,
			(SELECT COUNT(DISTINCT (w.word_input, w.word_output, COALESCE(w.directive, '')))
				FROM session_vocabularies sv
				JOIN words w ON w.vocabulary_id = sv.vocabulary_id
				WHERE sv.session_id = l.session_id) AS words,
			(SELECT COUNT(DISTINCT (w.word_input, w.word_output, COALESCE(w.directive, '')))
				FROM word_attempts a
				JOIN words w ON w.id = a.word_id
				WHERE a.session_id = l.session_id AND NOT a.success) AS missed
		FROM last l
		ORDER BY l.vocabulary_id
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []repository.FinishedSummary
	for rows.Next() {
		var f repository.FinishedSummary
		if err := rows.Scan(&f.VocabularyID, &f.SessionID, &f.Words, &f.Missed); err != nil {
			return nil, err
		}
		summaries = append(summaries, f)
	}

	return summaries, rows.Err()
}

// CleanAbandonedSessions deletes unfinished sessions older than specified days
func (r *SessionRepo) CleanAbandonedSessions(days int) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE finished = FALSE
			AND created_at < NOW() - INTERVAL '1 day' * $1
	`
	result, err := r.db.Exec(query, days)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetActivityDays returns days with answers, most recent first
func (r *SessionRepo) GetActivityDays(userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT DATE(a.created_at) AS day,
			COUNT(*) AS attempts,
			COUNT(*) FILTER (WHERE a.success) AS successes
		FROM word_attempts a
		JOIN sessions s ON s.id = a.session_id
		WHERE s.user_id = $1
		GROUP BY DATE(a.created_at)
		ORDER BY day DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.AttemptCount, &d.SuccessCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalActivityDays returns total number of days with answers
func (r *SessionRepo) GetTotalActivityDays(userID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT DATE(a.created_at))
		FROM word_attempts a
		JOIN sessions s ON s.id = a.session_id
		WHERE s.user_id = $1
	`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
