package main

import (
	"fmt"

	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	statsUserKey       = "stats.user"
	statsDepthKey      = "stats.depth"
	statsVocabularyKey = "stats.vocabulary"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer streak reliability of a user or error rates of a vocabulary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := viper.GetInt64(statsUserKey)
		vocabularyID := viper.GetInt64(statsVocabularyKey)
		if (userID == 0) == (vocabularyID == 0) {
			return fmt.Errorf("pass either --user or --vocabulary")
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openDatabase(logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if vocabularyID != 0 {
			stats, err := newVocabularyService(db, logger).Stats(vocabularyID)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%d words)\n", stats.Vocabulary, stats.Vocabulary.Len())
			for _, w := range stats.Words {
				cmd.Printf("%-20s %-20s %5.1f%%\n", w.Word.Input, w.Word.Output, w.ErrorRate)
			}
			return nil
		}

		// retention is only used by cleanup
		statsService := service.NewStatsService(postgres.NewSessionRepo(db), 0, logger)
		stats, err := statsService.StreakReliability(userID, viper.GetInt(statsDepthKey))
		if err != nil {
			return err
		}
		for _, s := range stats {
			cmd.Printf("prob(OK|attempts=%d OK)=%.2f total=%d\n", s.Streak, s.Probability, s.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int64("user", 0, "telegram user id")
	statsCmd.Flags().Int("depth", 9, "longest streak to measure")
	statsCmd.Flags().Int64("vocabulary", 0, "vocabulary id")
	bindFlagToViper(statsUserKey, statsCmd.Flags().Lookup("user"))
	bindFlagToViper(statsDepthKey, statsCmd.Flags().Lookup("depth"))
	bindFlagToViper(statsVocabularyKey, statsCmd.Flags().Lookup("vocabulary"))
}
