package main

import (
	"errors"
	"fmt"
	"os"

	"wordtrainer/internal/vocabfile"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list FILE...",
	Short: "Show the name and size of vocabulary files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			cmd.Printf("%-30s %s\n", path, describeFile(path))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// describeFile returns "<name> (<n> words)" or why the file cannot be read
func describeFile(path string) string {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return "is a directory"
	}

	v, err := vocabfile.Load(path)
	if errors.Is(err, vocabfile.ErrInvalidLine) {
		return fmt.Sprintf("invalid file (%v)", err)
	}
	if err != nil {
		return fmt.Sprintf("unreadable (%v)", err)
	}
	return fmt.Sprintf("%s (%d words)", v, v.Len())
}
