package service

import (
	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const daysPageSize = 7

// StreakStat is the chance of answering a word right after
// Streak right answers in a row on it
type StreakStat struct {
	Streak      int
	Probability float64
	// Total is the number of answers that followed such a streak
	Total int
}

// StatsService handles statistics and cleanup
type StatsService struct {
	sessionRepo   repository.SessionRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(sessionRepo repository.SessionRepository, retentionDays int, logger *zap.Logger) *StatsService {
	return &StatsService{
		sessionRepo:   sessionRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes unfinished sessions older than the retention period
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of abandoned sessions", zap.Int("retention_days", s.retentionDays))

	removed, err := s.sessionRepo.CleanAbandonedSessions(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup abandoned sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("sessions_removed", removed))
	return nil
}

// GetDaysList returns paginated list of days the user answered words
func (s *StatsService) GetDaysList(userID int64, page int) ([]domain.Day, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * daysPageSize
	days, err := s.sessionRepo.GetActivityDays(userID, daysPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.sessionRepo.GetTotalActivityDays(userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + daysPageSize - 1) / daysPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// StreakReliability measures, for streaks of 1 to maxStreak right answers on
// the same word, how often the next answer on that word was right too.
// Streak lengths never followed by an answer are left out.
func (s *StatsService) StreakReliability(userID int64, maxStreak int) ([]StreakStat, error) {
	history, err := s.sessionRepo.UserAttemptHistory(userID)
	if err != nil {
		return nil, err
	}

	byWord := lo.GroupBy(history, func(a repository.AttemptRecord) int64 {
		return a.WordID
	})

	var stats []StreakStat
	for streak := 1; streak <= maxStreak; streak++ {
		ok, nok := 0, 0
		for _, attempts := range byWord {
			for j := streak; j < len(attempts); j++ {
				if !lo.EveryBy(attempts[j-streak:j], func(a repository.AttemptRecord) bool { return a.Success }) {
					continue
				}
				if attempts[j].Success {
					ok++
				} else {
					nok++
				}
			}
		}

		if ok+nok == 0 {
			continue
		}
		stats = append(stats, StreakStat{
			Streak:      streak,
			Probability: float64(ok) / float64(ok+nok),
			Total:       ok + nok,
		})
	}

	s.logger.Debug("Streak reliability computed",
		zap.Int64("user_id", userID),
		zap.Int("words", len(byWord)))
	return stats, nil
}
