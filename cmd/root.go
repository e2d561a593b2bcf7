package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/mastery"
	"github.com/abhisek/smartquiz/internal/qcache"
	"github.com/abhisek/smartquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "smartquiz",
	Short: "Adaptive quiz engine for the terminal",
	Long:  "SmartQuiz — timed multiple-choice quizzes on any topic, with AI-generated questions, adaptive difficulty, and a persistent question cache.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Data directory (overrides SMARTQUIZ_DATA)")
	rootCmd.PersistentFlags().String("db", "", "Path to the event database (overrides SMARTQUIZ_DB)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory: --data flag first, then the
// environment/XDG default.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if d, _ := cmd.Flags().GetString("data"); d != "" {
		return d, nil
	}
	return store.DefaultDataDir()
}

// cachePath returns the question cache file path under the data dir.
func cachePath(cmd *cobra.Command) (string, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, qcache.FileName), nil
}

// profilePath returns the learner profile file path under the data dir.
func profilePath(cmd *cobra.Command) (string, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, mastery.FileName), nil
}

// resolveDBPath returns the event database path: --db flag first, then
// SMARTQUIZ_DB, then the default under the data dir.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
