package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/internal/logging"
	"github.com/phanxgames/arbor/internal/wordgen"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arbor",
		Short: "arbor grows L-system trees from sentiment words",
		Long: `arbor parses a bracketed L-system word and grows it into an animated tree,
one instruction at a time, with fruit coloured by sentiment.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("word", "", "L-system word to grow")
	root.PersistentFlags().String("word-file", "", "File containing the word")
	root.PersistentFlags().String("history", "", "Sentiment history YAML to build the word from")

	root.AddCommand(
		newGrowCmd(),
		newRenderCmd(),
		newInspectCmd(),
		newWordCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies every persistent flag the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	// A word source given on the command line replaces the config's.
	if flags.Changed("word") || flags.Changed("word-file") || flags.Changed("history") {
		cfg.Word, _ = flags.GetString("word")
		cfg.WordFile, _ = flags.GetString("word-file")
		cfg.HistoryFile, _ = flags.GetString("history")
		cfg.Forest = nil
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Lookup("duration") != nil && flags.Changed("duration") {
		cfg.Duration, _ = flags.GetDuration("duration")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Lookup("no-ground") != nil && flags.Changed("no-ground") {
		noGround, _ := flags.GetBool("no-ground")
		cfg.Ground = !noGround
	}
	return cfg, cfg.Validate()
}

// resolveWord picks the word from the config: the word itself, a word file,
// or a history to generate it from, in that order.
func resolveWord(cfg config.Config) (string, error) {
	if cfg.Word != "" || cfg.WordFile != "" {
		return cfg.ResolveWord()
	}
	if cfg.HistoryFile != "" {
		return wordgen.Word(cfg.HistoryFile)
	}
	return "", fmt.Errorf("no word given: use --word, --word-file or --history")
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
