package session

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Apply returns the state that results from ev. On error the input state
// is returned unchanged.
func Apply(s State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case SubmitName:
		return submitName(s, ev)
	case StartGeneration:
		return startGeneration(s, ev)
	case GenerationSucceeded:
		return generationSucceeded(s, ev)
	case GenerationFailed:
		return generationFailed(s, ev)
	case LoadSample:
		return loadSample(s, ev)
	case SubmitAnswer:
		return submitAnswer(s, ev)
	case NewQuiz:
		return newQuiz(s)
	case Reset:
		return State{Generation: s.Generation}, nil
	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func submitName(s State, ev SubmitName) (State, error) {
	if s.Phase != PhaseNotStarted {
		return s, invalid(s, "submit name")
	}
	name := strings.TrimSpace(ev.Name)
	if name == "" {
		return s, ErrEmptyName
	}
	return State{Phase: PhaseAwaitingInput, Name: name, Generation: s.Generation}, nil
}

func startGeneration(s State, ev StartGeneration) (State, error) {
	switch s.Phase {
	case PhaseGenerating:
		return s, ErrGenerationInFlight
	case PhaseAwaitingInput:
	default:
		return s, invalid(s, "generate")
	}
	if strings.TrimSpace(ev.Text) == "" {
		return s, quiz.ErrEmptyTopic
	}
	s.Phase = PhaseGenerating
	s.Generation++
	s.InputText = ev.Text
	s.LastError = ""
	return s, nil
}

func generationSucceeded(s State, ev GenerationSucceeded) (State, error) {
	if err := checkResult(s, ev.Generation, "finish generation"); err != nil {
		return s, err
	}
	if len(ev.Questions) == 0 {
		return generationFailed(s, GenerationFailed{Generation: ev.Generation, Err: ErrNoQuestions})
	}
	return startQuiz(s, ev.Questions), nil
}

func generationFailed(s State, ev GenerationFailed) (State, error) {
	if err := checkResult(s, ev.Generation, "fail generation"); err != nil {
		return s, err
	}
	s.Phase = PhaseAwaitingInput
	s.Questions = nil
	s.LastError = "generation failed"
	if ev.Err != nil {
		s.LastError = ev.Err.Error()
	}
	return s, nil
}

// checkResult accepts a generation result only for the request that is
// outstanding.
func checkResult(s State, generation int, action string) error {
	if s.Phase != PhaseGenerating {
		return invalid(s, action)
	}
	if generation != s.Generation {
		return fmt.Errorf("%w: got %d, want %d", ErrStaleGeneration, generation, s.Generation)
	}
	return nil
}

func loadSample(s State, ev LoadSample) (State, error) {
	switch s.Phase {
	case PhaseGenerating:
		return s, ErrGenerationInFlight
	case PhaseAwaitingInput:
	default:
		return s, invalid(s, "load sample")
	}
	if len(ev.Questions) == 0 {
		return s, ErrNoQuestions
	}
	return startQuiz(s, ev.Questions), nil
}

// startQuiz enters InProgress at the first question with a zero score.
func startQuiz(s State, questions []quiz.Question) State {
	s.Phase = PhaseInProgress
	s.Questions = slices.Clone(questions)
	s.CurrentIndex = 0
	s.Score = 0
	s.Finished = false
	s.Answers = nil
	s.LastError = ""
	return s
}

func submitAnswer(s State, ev SubmitAnswer) (State, error) {
	if s.Phase != PhaseInProgress {
		return s, invalid(s, "answer")
	}
	q := s.Current()
	if q == nil {
		return s, invalid(s, "answer")
	}

	correct := q.IsCorrect(ev.Option)
	if correct {
		s.Score++
	}
	// Clip so the append never writes into the caller's backing array.
	s.Answers = append(slices.Clip(s.Answers), Answer{
		Index:   s.CurrentIndex,
		Chosen:  ev.Option,
		Correct: correct,
	})

	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
	} else {
		s.Finished = true
		s.Phase = PhaseFinished
	}
	return s, nil
}

func newQuiz(s State) (State, error) {
	if s.Phase != PhaseFinished && s.Phase != PhaseInProgress {
		return s, invalid(s, "start a new quiz")
	}
	return State{Phase: PhaseAwaitingInput, Name: s.Name, Generation: s.Generation}, nil
}

func invalid(s State, action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, s.Phase)
}
