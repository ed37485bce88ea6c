package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/app"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, repo, err := openAudit(cmd)
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		if st != nil {
			defer st.Close()
		}

		// Log lines would tear the full-screen UI, so they go to a file.
		logPath, _ := cmd.Flags().GetString("log-file")
		if logPath == "" {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return err
			}
			logPath = filepath.Join(filepath.Dir(dbPath), "play.log")
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		logging.SetOutput(logFile)
		defer logging.SetOutput(os.Stderr)

		llmCfg := llm.ConfigFromEnv()
		if err := llmCfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Generation will fail; press Ctrl+S for the sample quiz.")
		}
		provider, err := llm.NewProvider(ctx, llmCfg, repo)
		if err != nil {
			return fmt.Errorf("create llm provider: %w", err)
		}

		skip, _ := cmd.Flags().GetBool("no-splash")
		return app.Run(ctx, app.Options{
			Source:     quiz.New(provider, quiz.DefaultConfig()),
			SkipSplash: skip,
		})
	},
}

func init() {
	playCmd.Flags().Bool("no-audit", false, "Do not record LLM requests in the audit database")
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	playCmd.Flags().String("log-file", "", "Write logs to this file (default: next to the audit database)")
}
