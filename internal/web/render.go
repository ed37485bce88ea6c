package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/quizforge/quizforge/internal/logging"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"name", "topic", "generating", "question", "result"}

var funcs = template.FuncMap{
	"percent": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
}

// loadPages parses the layout together with each page template.
func loadPages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

type pageData struct {
	Page     string
	Flashes  []string
	State    session.State
	Question *quiz.Question
	Number   int
	Summary  session.Summary
	Refresh  int
}

func newPageData(state session.State, flashes []string, refresh int) pageData {
	d := pageData{Flashes: flashes, State: state}
	switch state.Phase {
	case session.PhaseNotStarted:
		d.Page = "name"
	case session.PhaseAwaitingInput:
		d.Page = "topic"
	case session.PhaseGenerating:
		d.Page = "generating"
		d.Refresh = refresh
	case session.PhaseInProgress:
		d.Page = "question"
		d.Question = state.Current()
		d.Number = state.CurrentIndex + 1
	case session.PhaseFinished:
		d.Page = "result"
		d.Summary = session.BuildSummary(state)
	default:
		d.Page = "name"
	}
	return d
}

// render buffers the page so a template error never leaves a half-written
// response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	t, ok := s.pages[data.Page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.WithContext(r.Context()).WithError(err).WithField("page", data.Page).Error("render page")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
