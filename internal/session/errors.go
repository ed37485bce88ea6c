package session

import "errors"

var (
	// ErrEmptyName is returned when a blank name is submitted.
	ErrEmptyName = errors.New("Enter your name")

	// ErrGenerationInFlight is returned when generation or the sample is
	// requested while a generation is outstanding.
	ErrGenerationInFlight = errors.New("a quiz is already being generated")

	// ErrStaleGeneration is returned for the result of a generation that
	// was superseded, e.g. by a reset and a new request.
	ErrStaleGeneration = errors.New("result belongs to an earlier generation")

	// ErrNoQuestions is returned when a quiz would start without questions.
	ErrNoQuestions = errors.New("no questions to play")

	// ErrInvalidTransition is returned when an event does not apply to the
	// current phase.
	ErrInvalidTransition = errors.New("invalid transition")
)
