package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/learn"
	"wordtrainer/internal/vocabfile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const learnSeedKey = "learn.seed"

var errInterrupted = errors.New("interrupted")

var learnCmd = &cobra.Command{
	Use:   "learn FILE...",
	Short: "Quiz the words of one or more vocabulary files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		v, err := loadFiles(args)
		if err != nil {
			return err
		}
		logger.Debug("Vocabulary loaded", zap.Strings("files", args), zap.Int("words", v.Len()))

		seed := viper.GetInt64(learnSeedKey)
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		session, err := learn.NewSession(v, nil, nil, learn.WithRand(rand.New(rand.NewSource(seed))))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		in := readLines(ctx, cmd.InOrStdin())
		out := cmd.OutOrStdout()

		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)

		err = quiz(session, in, out, interrupts)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprint(out, "\n\nBye\n")
			return nil
		case errors.Is(err, errInterrupted):
			fmt.Fprint(out, "\n\n")
			saveWords(session, in, out)
			fmt.Fprint(out, "\n\nBye\n")
			return nil
		case err != nil:
			return err
		}

		files := append([]string(nil), args...)
		sort.Strings(files)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "new words learned =", session.NewWordsLearned())
		fmt.Fprintln(out, "accuracy =", session.Accuracy())
		fmt.Fprintln(out, "filename =", strings.Join(files, " "))
		fmt.Fprintln(out)

		saveWords(session, in, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().Int64("seed", 0, "random seed, 0 for a time based one")
	bindFlagToViper(learnSeedKey, learnCmd.Flags().Lookup("seed"))
}

// loadFiles merges vocabulary files in order
func loadFiles(paths []string) (*domain.Vocabulary, error) {
	all := domain.NewVocabulary(nil, nil, "", "")
	for _, path := range paths {
		v, err := vocabfile.Load(path)
		if err != nil {
			return nil, err
		}
		if all.Name == nil {
			all.Name = v.Name
		}
		all.Add(v)
	}
	return all, nil
}

// readLines feeds the lines of r to the returned channel, closed at end of
// input or once ctx is done
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// quiz asks words until the session is finished. It returns io.EOF when
// input ends and errInterrupted on Ctrl-C.
func quiz(session *learn.Session, in <-chan string, out io.Writer, interrupts <-chan os.Signal) error {
	for !session.IsFinished() {
		current := session.CurrentWord()
		fmt.Fprintf(out, "> %s\n? ", current.Input)

		var typed string
		select {
		case line, ok := <-in:
			if !ok {
				return io.EOF
			}
			typed = line
		case <-interrupts:
			return errInterrupted
		}

		attempt, _ := session.Guess(*current, typed)
		switch {
		case !attempt.Success:
			fmt.Fprintf(out, "! %s\n", current.Output)
		case current.IsComplex():
			fmt.Fprintf(out, "Great :) %s\n", current.Output)
		default:
			fmt.Fprintln(out, "Great :)")
		}
		fmt.Fprintln(out)
	}
	return nil
}

// saveWords lists the missed words and offers to append them to a file
func saveWords(session *learn.Session, in <-chan string, out io.Writer) {
	words := session.WordsLeft()
	if len(words) == 0 {
		return
	}

	for _, w := range words {
		fmt.Fprintf(out, "%-20s %-20s\n", w.Input, w.Output)
	}

	for {
		fmt.Fprintln(out, "Save wrong words?")
		fmt.Fprint(out, "filename: ")
		line, ok := <-in
		if !ok {
			return
		}
		name := strings.TrimSpace(line)
		if name == "" {
			return
		}
		if err := vocabfile.Append(name, session.RemedialVocabulary()); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return
	}
}
