package main

import (
	"database/sql"

	"wordtrainer/internal/config"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
)

// openDatabase connects with the DB_* settings, failing fast
func openDatabase(logger *zap.Logger) (*sql.DB, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	return postgres.Connect(cfg.DSN(), 1, logger)
}

func newVocabularyService(db *sql.DB, logger *zap.Logger) *service.VocabularyService {
	return service.NewVocabularyService(postgres.NewVocabularyRepo(db), postgres.NewUserRepo(db), logger)
}
