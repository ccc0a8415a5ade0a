package postgres

import (
	"database/sql"
	"fmt"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
)

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// CreateVocabulary stores a vocabulary and its words in one transaction.
// The vocabulary receives its id and the ids of its words.
func (r *VocabularyRepo) CreateVocabulary(v *domain.Vocabulary) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	query := `
		INSERT INTO vocabularies (input_language, output_language)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := tx.QueryRow(query, v.InputLanguage, v.OutputLanguage).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert vocabulary: %w", err)
	}

	wordIDs := make(map[domain.Word]int64)
	for _, w := range v.Words() {
		if _, done := wordIDs[w]; done {
			continue
		}
		wordID, err := insertWord(tx, id, w)
		if err != nil {
			return 0, err
		}
		wordIDs[w] = wordID
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	v.ID = id
	for w, wordID := range wordIDs {
		v.SetWordID(w, wordID)
	}
	return id, nil
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func insertWord(q queryRower, vocabularyID int64, w domain.Word) (int64, error) {
	var id int64
	query := `
		INSERT INTO words (vocabulary_id, word_input, word_output, directive)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := q.QueryRow(query, vocabularyID, w.Input, w.Output, directiveValue(w.Directive)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert word %q: %w", w.Input, err)
	}
	return id, nil
}

func directiveValue(d domain.Directive) sql.NullString {
	tag := d.String()
	return sql.NullString{String: tag, Valid: tag != ""}
}

// GetVocabulary returns a vocabulary with its words and word ids
func (r *VocabularyRepo) GetVocabulary(id int64) (*domain.Vocabulary, error) {
	var inputLanguage, outputLanguage string
	query := `SELECT input_language, output_language FROM vocabularies WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&inputLanguage, &outputLanguage)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	v := domain.NewVocabulary(nil, nil, inputLanguage, outputLanguage)
	v.ID = id
	if err := r.loadWords(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVocabularies returns every stored vocabulary, oldest first
func (r *VocabularyRepo) ListVocabularies() ([]*domain.Vocabulary, error) {
	query := `
		SELECT id, input_language, output_language
		FROM vocabularies
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}

	var vocabularies []*domain.Vocabulary
	for rows.Next() {
		var (
			id                            int64
			inputLanguage, outputLanguage string
		)
		if err := rows.Scan(&id, &inputLanguage, &outputLanguage); err != nil {
			rows.Close()
			return nil, err
		}
		v := domain.NewVocabulary(nil, nil, inputLanguage, outputLanguage)
		v.ID = id
		vocabularies = append(vocabularies, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, v := range vocabularies {
		if err := r.loadWords(v); err != nil {
			return nil, err
		}
	}

	return vocabularies, nil
}

func (r *VocabularyRepo) loadWords(v *domain.Vocabulary) error {
	query := `
		SELECT id, word_input, word_output, directive
		FROM words
		WHERE vocabulary_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, v.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        int64
			w         domain.Word
			directive sql.NullString
		)
		if err := rows.Scan(&id, &w.Input, &w.Output, &directive); err != nil {
			return err
		}
		w.Directive = domain.ParseDirective(directive.String)
		if w.IsName() {
			name := w
			v.Name = &name
		}
		v.AddWord(w)
		v.SetWordID(w, id)
	}

	return rows.Err()
}

// DeleteVocabulary removes a vocabulary, its words, their attempts
// and the sessions that used it
func (r *VocabularyRepo) DeleteVocabulary(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM sessions
		WHERE id IN (SELECT session_id FROM session_vocabularies WHERE vocabulary_id = $1)
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM vocabularies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vocabulary: %w", err)
	}
	if err := checkRowsAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

// AddWord appends a word to a stored vocabulary
func (r *VocabularyRepo) AddWord(vocabularyID int64, word domain.Word) (int64, error) {
	return insertWord(r.db, vocabularyID, word)
}

// UpdateWord replaces the content of a stored word
func (r *VocabularyRepo) UpdateWord(wordID int64, word domain.Word) error {
	query := `
		UPDATE words
		SET word_input = $1, word_output = $2, directive = $3
		WHERE id = $4
	`
	result, err := r.db.Exec(query, word.Input, word.Output, directiveValue(word.Directive), wordID)
	if err != nil {
		return err
	}
	return checkRowsAffected(result)
}

// WordAttemptCounts returns, per word of the vocabulary, the number of
// wrong and right answers across all sessions
func (r *VocabularyRepo) WordAttemptCounts(vocabularyID int64) ([]repository.WordAttemptCount, error) {
	query := `
		SELECT a.word_id,
			COUNT(*) FILTER (WHERE NOT a.success) AS errors,
			COUNT(*) FILTER (WHERE a.success) AS successes
		FROM word_attempts a
		JOIN words w ON w.id = a.word_id
		WHERE w.vocabulary_id = $1
		GROUP BY a.word_id
		ORDER BY a.word_id
	`

	rows, err := r.db.Query(query, vocabularyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []repository.WordAttemptCount
	for rows.Next() {
		var c repository.WordAttemptCount
		if err := rows.Scan(&c.WordID, &c.Errors, &c.Successes); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

func checkRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
