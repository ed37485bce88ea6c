package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/quizforge/quizforge/internal/logging"
)

const sessionIDKey = "sid"

type ctxKey int

const (
	cookieSessionKey ctxKey = iota
	quizSessionKey
)

// requestLogger logs one line per request through logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.WithContext(r.Context()).WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("http request")
	})
}

// withSession resolves the browser's quiz session, issuing a new one when
// the cookie is missing, invalid or refers to a swept session.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A cookie signed with another key still yields a usable empty session.
		sess, _ := s.cookies.Get(r, s.cfg.CookieName)

		id, _ := sess.Values[sessionIDKey].(string)
		if _, ok := s.registry.Get(id); !ok {
			id = s.registry.Create()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				logging.WithContext(r.Context()).WithError(err).Error("save session cookie")
				http.Error(w, "session error", http.StatusInternalServerError)
				return
			}
			logging.WithContext(r.Context()).WithField("session_id", id).Debug("new quiz session")
		}

		ctx := context.WithValue(r.Context(), cookieSessionKey, sess)
		ctx = context.WithValue(ctx, quizSessionKey, id)
		ctx = logging.WithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func cookieSession(ctx context.Context) *sessions.Session {
	sess, _ := ctx.Value(cookieSessionKey).(*sessions.Session)
	return sess
}

func quizSessionID(ctx context.Context) string {
	id, _ := ctx.Value(quizSessionKey).(string)
	return id
}
