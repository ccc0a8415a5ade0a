package main

import (
	"wordtrainer/internal/repository/postgres"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const migrationsKey = "migrations"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
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

		if err := postgres.Migrate(db, viper.GetString(migrationsKey), logger); err != nil {
			return err
		}
		cmd.Println("database is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("source", "file://migrations", "migrations source URL")
	bindFlagToViper(migrationsKey, migrateCmd.Flags().Lookup("source"))
	cobra.CheckErr(viper.BindEnv(migrationsKey, "MIGRATIONS_PATH"))
}
