package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
)

// errStaleAnswer rejects an answer form posted for a question that has
// already been answered, e.g. after a double click or the back button.
var errStaleAnswer = errors.New("That question was already answered")

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state, _ := s.registry.Get(quizSessionID(r.Context()))

	var flashes []string
	if sess := cookieSession(r.Context()); sess != nil {
		for _, f := range sess.Flashes() {
			if msg, ok := f.(string); ok {
				flashes = append(flashes, msg)
			}
		}
		if len(flashes) > 0 {
			if err := sess.Save(r, w); err != nil {
				logging.WithContext(r.Context()).WithError(err).Warn("save session cookie")
			}
		}
	}

	s.render(w, r, newPageData(state, flashes, s.cfg.RefreshSeconds))
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	s.applyAndRedirect(w, r, session.SubmitName{Name: r.FormValue("name")})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	s.applyAndRedirect(w, r, session.LoadSample{Questions: s.source.Sample()})
}

func (s *Server) handleNewQuiz(w http.ResponseWriter, r *http.Request) {
	s.applyAndRedirect(w, r, session.NewQuiz{})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.applyAndRedirect(w, r, session.Reset{})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	option := r.FormValue("option")
	index, indexErr := strconv.Atoi(r.FormValue("index"))

	_, err := s.registry.Update(quizSessionID(r.Context()), func(st session.State) (session.State, error) {
		if indexErr == nil && st.Phase == session.PhaseInProgress && index != st.CurrentIndex {
			return st, errStaleAnswer
		}
		return session.Apply(st, session.SubmitAnswer{Option: option})
	})
	if err != nil {
		s.flash(w, r, err)
	}
	redirectHome(w, r)
}

// handleGenerate marks generation as outstanding and runs the source call
// in the background. The call outlives the request and is never cancelled;
// the generating page polls until the state moves on.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := quizSessionID(r.Context())
	text := r.FormValue("topic")

	st, err := s.registry.Apply(id, session.StartGeneration{Text: text})
	if err != nil {
		s.flash(w, r, err)
		redirectHome(w, r)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		s.generate(ctx, id, st.Generation, text)
	}()

	redirectHome(w, r)
}

// generate runs one request and hands the result back tagged with the
// generation it was started under.
func (s *Server) generate(ctx context.Context, id string, generation int, text string) {
	log := logging.WithContext(ctx).WithField("generation", generation)

	questions, err := s.source.Generate(ctx, text)

	var ev session.Event = session.GenerationSucceeded{Generation: generation, Questions: questions}
	if err != nil {
		log.WithError(err).Warn("quiz generation failed")
		ev = session.GenerationFailed{Generation: generation, Err: err}
	} else {
		log.WithField("questions", len(questions)).Info("quiz generated")
	}

	// The session may have been reset, swept or moved on to a newer
	// request meanwhile.
	if _, err := s.registry.Apply(id, ev); err != nil {
		log.WithError(err).Info("discarding generation result")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.Len(),
	})
}

func (s *Server) handleSampleJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]quiz.Question{"questions": s.source.Sample()})
}

func (s *Server) applyAndRedirect(w http.ResponseWriter, r *http.Request, ev session.Event) {
	if _, err := s.registry.Apply(quizSessionID(r.Context()), ev); err != nil {
		s.flash(w, r, err)
	}
	redirectHome(w, r)
}

// flash queues err for display on the next page. Nothing is written to
// the state.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.WithContext(r.Context())
	log.WithError(err).Debug("action rejected")

	sess := cookieSession(r.Context())
	if sess == nil {
		return
	}
	sess.AddFlash(userMessage(err))
	if serr := sess.Save(r, w); serr != nil {
		log.WithError(serr).Warn("save session cookie")
	}
}

// userMessage turns an action error into alert text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidTransition):
		return "That action is not available right now"
	case errors.Is(err, ErrUnknownSession):
		return "Your session expired, please start again"
	default:
		return err.Error()
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
