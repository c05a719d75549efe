package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*jsonschema.Schema{}
)

// finish rejects truncated replies and checks formatted replies against
// their schema.
func finish(p Prompt, c *Completion) (*Completion, error) {
	if c.Finish == "max_tokens" {
		return nil, &TruncatedError{Raw: c.JSON}
	}
	if err := conform(p.Format, c.JSON); err != nil {
		return nil, err
	}
	return c, nil
}

// conform validates raw against f's schema. A nil format accepts anything.
func conform(f *Format, raw json.RawMessage) error {
	if f == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &BadOutputError{Raw: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	sch, err := schemaFor(f)
	if err != nil {
		return &BadOutputError{Raw: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &BadOutputError{Raw: raw, Err: err}
	}
	return nil
}

// schemaFor compiles f.Schema once per format name.
func schemaFor(f *Format) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[f.Name]; ok {
		return s, nil
	}

	// Round-trip through JSON so the compiler sees plain decoded values.
	def, err := json.Marshal(f.Schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", f.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", f.Name, err)
	}

	url := "mem://formats/" + f.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", f.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", f.Name, err)
	}
	compiled[f.Name] = s
	return s, nil
}
