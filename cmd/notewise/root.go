package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jask/notewise/internal/config"
)

var (
	verbose bool
	cfgFile string

	cfg     config.Config
	logFile io.Closer
)

// rootCmd runs the terminal app when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notewise",
	Short: "AI note taking in your terminal",
	Long: `NoteWise turns text, documents, recordings and images into
structured notes with summaries, key points and action items.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return setupLogging(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// setupLogging sends slog output to the log file; the TUI owns stdout.
func setupLogging(lc config.LogConfig) error {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(strings.TrimSpace(lc.Level))); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	if lc.Path != "" {
		if err := os.MkdirAll(filepath.Dir(lc.Path), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(lc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		w = f
		logFile = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $NOTEWISE_CONFIG or ~/.config/notewise/config.toml)")
}
