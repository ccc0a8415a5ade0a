package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"wordtrainer/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionColumns = []string{"id", "user_id", "current_word_id", "finished", "created_at"}

func TestSessionRepo_CreateSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)
	current := int64(11)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(int64(123), int64(11), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO session_vocabularies").
		WithArgs(int64(7), int64(5), true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := repo.CreateSession(repository.NewSessionRecord{
		UserID:        123,
		Vocabularies:  []repository.SessionVocabulary{{VocabularyID: 5, Flipped: true}},
		CurrentWordID: &current,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_CreateSession_LinkError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(int64(123), nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO session_vocabularies").
		WillReturnError(fmt.Errorf("fk violation"))
	mock.ExpectRollback()

	_, err = repo.CreateSession(repository.NewSessionRecord{
		UserID:       123,
		Vocabularies: []repository.SessionVocabulary{{VocabularyID: 99}},
		Finished:     true,
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetSession(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		currentWordID   any
		expectedCurrent *int64
	}{
		{name: "active session", currentWordID: int64(11), expectedCurrent: func() *int64 { id := int64(11); return &id }()},
		{name: "finished session", currentWordID: nil, expectedCurrent: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewSessionRepo(db)

			mock.ExpectQuery("SELECT id, user_id, current_word_id, finished, created_at FROM sessions").
				WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow(7, 123, tt.currentWordID, tt.expectedCurrent == nil, created))
			mock.ExpectQuery("SELECT vocabulary_id, flipped FROM session_vocabularies").
				WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows([]string{"vocabulary_id", "flipped"}).AddRow(5, true).AddRow(6, false))

			s, err := repo.GetSession(7)

			require.NoError(t, err)
			assert.Equal(t, int64(7), s.ID)
			assert.Equal(t, int64(123), s.UserID)
			assert.Equal(t, tt.expectedCurrent, s.CurrentWordID)
			assert.Equal(t, tt.expectedCurrent == nil, s.Finished)
			assert.Equal(t, created, s.CreatedAt)
			assert.Equal(t, []repository.SessionVocabulary{
				{VocabularyID: 5, Flipped: true},
				{VocabularyID: 6, Flipped: false},
			}, s.Vocabularies)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepo_GetSession_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("SELECT id, user_id, current_word_id, finished, created_at FROM sessions").
		WithArgs(int64(8)).
		WillReturnError(sql.ErrNoRows)

	s, err := repo.GetSession(8)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_ListAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)
	now := time.Now()

	mock.ExpectQuery("SELECT word_id, typed_word, success, created_at FROM word_attempts WHERE session_id = \\$1 ORDER BY id ASC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"word_id", "typed_word", "success", "created_at"}).
			AddRow(11, "hnd", false, now).
			AddRow(11, "hund", true, now))

	attempts, err := repo.ListAttempts(7)

	require.NoError(t, err)
	assert.Equal(t, []repository.AttemptRecord{
		{WordID: 11, TypedWord: "hnd", Success: false, Time: now},
		{WordID: 11, TypedWord: "hund", Success: true, Time: now},
	}, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_ListAttempts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("SELECT word_id, typed_word, success, created_at FROM word_attempts").
		WithArgs(int64(7)).
		WillReturnError(fmt.Errorf("query error"))

	attempts, err := repo.ListAttempts(7)

	assert.Error(t, err)
	assert.Nil(t, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_UserAttemptHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)
	now := time.Now()

	mock.ExpectQuery("SELECT a.word_id, a.typed_word, a.success, a.created_at FROM word_attempts a JOIN sessions s").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"word_id", "typed_word", "success", "created_at"}).
			AddRow(11, "hund", true, now))

	attempts, err := repo.UserAttemptHistory(123)

	require.NoError(t, err)
	assert.Len(t, attempts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_AddAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)
	now := time.Now()
	next := int64(12)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO word_attempts").
		WithArgs(int64(7), int64(11), "hund", true, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE sessions SET current_word_id = \\$1, finished = \\$2 WHERE id = \\$3").
		WithArgs(int64(12), false, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.AddAttempt(7, repository.AttemptRecord{WordID: 11, TypedWord: "hund", Success: true, Time: now}, &next, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_AddAttempt_Finished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO word_attempts").
		WithArgs(int64(7), int64(11), "hund", true, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE sessions").
		WithArgs(nil, true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.AddAttempt(7, repository.AttemptRecord{WordID: 11, TypedWord: "hund", Success: true, Time: now}, nil, true)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_LastSession(t *testing.T) {
	finished := true

	tests := []struct {
		name     string
		finished *bool
		stateArg any
		found    bool
	}{
		{name: "any state", finished: nil, stateArg: nil, found: true},
		{name: "finished only", finished: &finished, stateArg: true, found: true},
		{name: "none", finished: nil, stateArg: nil, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewSessionRepo(db)

			expectation := mock.ExpectQuery("SELECT s.id FROM sessions s").
				WithArgs(int64(123), int64(5), tt.stateArg)
			if !tt.found {
				expectation.WillReturnError(sql.ErrNoRows)
			} else {
				expectation.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
				mock.ExpectQuery("SELECT id, user_id, current_word_id, finished, created_at FROM sessions").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow(7, 123, nil, true, time.Now()))
				mock.ExpectQuery("SELECT vocabulary_id, flipped FROM session_vocabularies").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"vocabulary_id", "flipped"}).AddRow(5, false))
			}

			s, err := repo.LastSession(123, 5, tt.finished)

			require.NoError(t, err)
			if tt.found {
				require.NotNil(t, s)
				assert.Equal(t, int64(7), s.ID)
			} else {
				assert.Nil(t, s)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepo_LastFinishedSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("WITH last AS").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"vocabulary_id", "session_id", "words", "missed"}).
			AddRow(1, 7, 4, 1).
			AddRow(3, 9, 2, 0))

	summaries, err := repo.LastFinishedSummaries(123)

	require.NoError(t, err)
	assert.Equal(t, []repository.FinishedSummary{
		{VocabularyID: 1, SessionID: 7, Words: 4, Missed: 1},
		{VocabularyID: 3, SessionID: 9, Words: 2, Missed: 0},
	}, summaries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_LastFinishedSummaries_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("WITH last AS").
		WithArgs(int64(123)).
		WillReturnError(sql.ErrConnDone)

	_, err = repo.LastFinishedSummaries(123)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_CleanAbandonedSessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectExec("DELETE FROM sessions WHERE finished = FALSE").
		WithArgs(60).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.CleanAbandonedSessions(60)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetActivityDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	userID := int64(123)
	limit := 7
	offset := 0

	rows := sqlmock.NewRows([]string{"day", "attempts", "successes"}).
		AddRow(time.Now(), 5, 4).
		AddRow(time.Now().AddDate(0, 0, -1), 3, 1)

	mock.ExpectQuery("SELECT DATE\\(a.created_at\\)").
		WithArgs(userID, limit, offset).
		WillReturnRows(rows)

	days, err := repo.GetActivityDays(userID, limit, offset)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, 5, days[0].AttemptCount)
	assert.Equal(t, 4, days[0].SuccessCount)
	assert.Equal(t, 3, days[1].AttemptCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetActivityDays_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	// Create rows with wrong column type to cause scan error
	rows := sqlmock.NewRows([]string{"day", "attempts", "successes"}).
		AddRow("invalid", 5, 1)

	mock.ExpectQuery("SELECT DATE\\(a.created_at\\)").
		WithArgs(int64(123), 7, 0).
		WillReturnRows(rows)

	days, err := repo.GetActivityDays(123, 7, 0)

	assert.Error(t, err)
	assert.Nil(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetTotalActivityDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT DATE\\(a.created_at\\)\\)").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

	count, err := repo.GetTotalActivityDays(123)

	assert.NoError(t, err)
	assert.Equal(t, 14, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
