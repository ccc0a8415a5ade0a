// Command drill quizzes vocabulary files in the terminal and manages
// the vocabulary database shared with the bot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const verboseKey = "verbose"

var rootCmd = &cobra.Command{
	Use:           "drill",
	Short:         "Learn vocabulary files in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	bindFlagToViper(verboseKey, rootCmd.PersistentFlags().Lookup("verbose"))
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newLogger logs to stderr, quietly unless --verbose is set
func newLogger() (*zap.Logger, error) {
	if viper.GetBool(verboseKey) {
		return zap.NewDevelopment()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
