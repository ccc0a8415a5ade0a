package main

import (
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE...",
	Short: "Import vocabulary files into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		vocabularies := newVocabularyService(db, logger)
		for _, path := range args {
			v, err := vocabularies.ImportFile(path)
			if err != nil {
				return err
			}
			cmd.Printf("%d\t%s (%d words)\n", v.ID, v, v.Len())
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a vocabulary with its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
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

		if err := newVocabularyService(db, logger).Delete(id); err != nil {
			return err
		}
		cmd.Printf("vocabulary %d deleted\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(deleteCmd)
}
