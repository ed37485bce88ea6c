package quiz

import (
	"errors"
	"fmt"
)

// ErrEmptyTopic is returned when generation is requested without any text.
var ErrEmptyTopic = errors.New("Paste a topic / paragraph first")

// FormatError indicates the model reply could not be turned into a usable
// question sequence.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid quiz format: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid quiz format: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }
