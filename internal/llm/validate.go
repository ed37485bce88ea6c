package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds schemas by Name. A name must always refer to the same
// definition.
var compiled = schemaSet{byName: map[string]*jsonschema.Schema{}}

type schemaSet struct {
	mu     sync.RWMutex
	byName map[string]*jsonschema.Schema
}

func (s *schemaSet) get(schema *Schema) (*jsonschema.Schema, error) {
	s.mu.RLock()
	c, ok := s.byName[schema.Name]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	// AddResource wants decoded JSON, not a Go map with typed values.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "mem://schemas/" + schema.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, err
	}
	c, err = compiler.Compile(url)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byName[schema.Name] = c
	s.mu.Unlock()
	return c, nil
}

// ValidateJSON checks raw against schema. Providers run the same check on
// structured output; callers that pull JSON out of free text use it directly.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, raw)
}

// validateResponse reports an *ErrInvalidResponse when raw does not decode
// or does not satisfy schema. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	c, err := compiled.get(schema)
	if err != nil {
		return invalid(fmt.Errorf("compile schema %q: %w", schema.Name, err))
	}
	if err := c.Validate(doc); err != nil {
		return invalid(fmt.Errorf("schema validation failed: %w", err))
	}
	return nil
}
