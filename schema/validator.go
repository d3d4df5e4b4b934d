// Package schema checks deck configuration against the JSON Schema
// generated from config.Config.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed deck.embedded.schema.json
var embedded []byte

const resourceName = "deck.schema.json"

// Schema returns the raw embedded schema document.
func Schema() []byte {
	return embedded
}

// Violation is one failed schema keyword, located by JSON pointer.
type Violation struct {
	Path    string
	Message string
}

// Violations is the error returned for a document that does not match.
type Violations []Violation

func (v Violations) Error() string {
	lines := make([]string, 0, len(v))
	for _, violation := range v {
		lines = append(lines, fmt.Sprintf("- %s: %s", violation.Path, violation.Message))
	}
	return "schema validation failed:\n" + strings.Join(lines, "\n")
}

// Validator validates documents against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	shared     *Validator
	sharedErr  error
	sharedOnce sync.Once
)

// Default returns a process-wide validator compiled on first use.
func Default() (*Validator, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = NewValidator()
	})
	return shared, sharedErr
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(embedded)); err != nil {
		return nil, fmt.Errorf("load embedded schema: %w", err)
	}
	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks any JSON-marshalable value. Schema mismatches are returned
// as Violations sorted by path.
func (v *Validator) Validate(doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	err = v.schema.Validate(generic)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var out Violations
	flatten(verr, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// flatten keeps the leaf causes, which name the offending field.
func flatten(err *jsonschema.ValidationError, out *Violations) {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		*out = append(*out, Violation{Path: path, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		flatten(cause, out)
	}
}
