package main

import (
	"fmt"
	"strconv"
	"strings"

	"wordtrainer/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const wordVocabularyKey = "word.vocabulary"

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Edit the words of a stored vocabulary",
}

var wordAddCmd = &cobra.Command{
	Use:   "add \"OUTPUT;INPUT\"",
	Short: "Append a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		word, err := parseWordArg(args[0])
		if err != nil {
			return err
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

		id, err := newVocabularyService(db, logger).AddWord(viper.GetInt64(wordVocabularyKey), word)
		if err != nil {
			return err
		}
		cmd.Printf("word %d added\n", id)
		return nil
	},
}

var wordFixCmd = &cobra.Command{
	Use:   "fix \"OLD OUTPUT;OLD INPUT\" \"NEW OUTPUT;NEW INPUT\"",
	Short: "Correct a word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := parseWordArg(args[0])
		if err != nil {
			return err
		}
		updated, err := parseWordArg(args[1])
		if err != nil {
			return err
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

		if err := newVocabularyService(db, logger).UpdateWord(viper.GetInt64(wordVocabularyKey), old, updated); err != nil {
			return err
		}
		cmd.Println("word updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordCmd)
	wordCmd.AddCommand(wordAddCmd, wordFixCmd)

	wordCmd.PersistentFlags().Int64("vocabulary", 0, "vocabulary id")
	cobra.CheckErr(wordCmd.MarkPersistentFlagRequired("vocabulary"))
	bindFlagToViper(wordVocabularyKey, wordCmd.PersistentFlags().Lookup("vocabulary"))
}

// parseWordArg reads a word written as in vocabulary files
func parseWordArg(arg string) (domain.Word, error) {
	output, input, found := strings.Cut(arg, ";")
	if !found || strings.Contains(input, ";") {
		return domain.Word{}, fmt.Errorf("word %q must be written OUTPUT;INPUT", arg)
	}
	return domain.NewWord(output, input), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
