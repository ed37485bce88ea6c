package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract returns reply from its first '[' onwards. Models often wrap the
// array in prose or code fences, so whatever precedes it is dropped. A
// reply without '[' is returned unchanged.
func Extract(reply string) string {
	if i := strings.IndexByte(reply, '['); i >= 0 {
		return reply[i:]
	}
	return reply
}

// Parse decodes the first JSON value found by Extract. It fails with a
// *FormatError unless that value is a non-empty array of objects. Text
// after the array is ignored.
func Parse(reply string) ([]Question, error) {
	_, questions, err := parse(reply)
	return questions, err
}

// parse is Parse that also returns the raw array for schema validation.
func parse(reply string) (json.RawMessage, []Question, error) {
	dec := json.NewDecoder(strings.NewReader(Extract(reply)))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, &FormatError{Reason: "reply does not contain valid JSON", Err: err}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, &FormatError{Reason: "reply is not a JSON array", Err: err}
	}
	if len(items) == 0 {
		return nil, nil, &FormatError{Reason: "reply contains no questions"}
	}

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		var q Question
		if err := json.Unmarshal(item, &q); err != nil {
			return nil, nil, &FormatError{Reason: fmt.Sprintf("question %d is malformed", i+1), Err: err}
		}
		questions = append(questions, q)
	}
	return raw, questions, nil
}
