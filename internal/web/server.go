// Package web serves the quiz to browsers. Quiz state stays on the server;
// the browser only holds a signed cookie with its session id, and the LLM
// credential never leaves the process.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
)

// Server is the browser-facing HTTP server.
type Server struct {
	cfg      Config
	source   quiz.Source
	registry *Registry
	cookies  *sessions.CookieStore
	pages    map[string]*template.Template

	// jobs tracks generation goroutines.
	jobs sync.WaitGroup
}

// NewServer builds a Server that takes questions from source.
func NewServer(cfg Config, source quiz.Source) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("web config: %w", err)
	}

	key := cfg.SessionKey
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("generate session key")
		}
		logging.Logger().Warn("no session key configured, using a random one")
	}

	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	pages, err := loadPages()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		source:   source,
		registry: NewRegistry(cfg.SessionTTL),
		cookies:  cookies,
		pages:    pages,
	}, nil
}

// Registry exposes the session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Routes returns the HTTP handler with all routes and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/sample", s.handleSampleJSON)

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Post("/name", s.handleName)
		r.Post("/generate", s.handleGenerate)
		r.Post("/sample", s.handleSample)
		r.Post("/answer", s.handleAnswer)
		r.Post("/new", s.handleNewQuiz)
		r.Post("/reset", s.handleReset)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Outstanding generations are not waited for.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.registry.RunSweeper(ctx, s.cfg.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().WithField("addr", s.cfg.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Wait blocks until every started generation has finished.
func (s *Server) Wait() {
	s.jobs.Wait()
}
