package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz in the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (overrides QUIZFORGE_ADDR and PORT)")
	cmd.Flags().String("session-key", "", "Cookie signing key, at least 32 bytes (overrides QUIZFORGE_SESSION_KEY)")
	cmd.Flags().Bool("no-audit", false, "Do not record LLM requests in the audit database")
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := web.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if key, _ := cmd.Flags().GetString("session-key"); key != "" {
		cfg.SessionKey = []byte(key)
	}

	st, repo, err := openAudit(cmd)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	if st != nil {
		defer st.Close()
	}

	log := logging.Logger()
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		// The sample quiz still works without a provider.
		log.WithError(err).Warn("LLM provider not configured, generation will fail until it is")
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		return fmt.Errorf("create llm provider: %w", err)
	}

	srv, err := web.NewServer(cfg, quiz.New(provider, quiz.DefaultConfig()))
	if err != nil {
		return err
	}

	log.WithField("provider", llmCfg.Provider).WithField("model", provider.ModelID()).Info("starting quizforge")
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
