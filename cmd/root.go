package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Turn any text into a multiple-choice quiz",
	Long:  "QuizForge generates a five-question multiple-choice quiz from a topic or paragraph and scores your answers, in the browser or the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		return logging.Setup(level, format)
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit database (overrides QUIZFORGE_DB env var)")
	rootCmd.PersistentFlags().String("log-level", envOr("QUIZFORGE_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", envOr("QUIZFORGE_LOG_FORMAT", "text"), "Log format (text or json)")

	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openAudit opens the audit store. With --no-audit it returns a no-op repo
// and a nil store.
func openAudit(cmd *cobra.Command) (*store.Store, store.EventRepo, error) {
	if off, _ := cmd.Flags().GetBool("no-audit"); off {
		return nil, store.NopEventRepo{}, nil
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return st, st.EventRepo(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
