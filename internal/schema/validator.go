package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// RosterSchema describes the persisted roster document: an array of student
// records, each with a name, a student_id and a course -> numeric grade map.
const RosterSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "student_id", "courses"],
    "properties": {
      "name": {"type": "string"},
      "student_id": {"type": "string"},
      "courses": {
        "type": "object",
        "additionalProperties": {"type": "number"}
      }
    }
  }
}`

// maxReported caps how many schema violations end up in an error message.
const maxReported = 3

// ValidationError lists the schema violations found in a document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed:\n- " + dumpErrors(e.Errors)
}

// Validator checks JSON documents against JSON schemas.
// It caches compiled schemas for performance.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks doc against the provided schema.
// The schema can be a JSON string, raw bytes, or any value that marshals to a schema.
func (v *Validator) Validate(schemaData any, doc []byte) error {
	schema, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return &ValidationError{Errors: errs}
}

// ValidateRoster checks doc against RosterSchema.
func (v *Validator) ValidateRoster(doc []byte) error {
	return v.Validate(RosterSchema, doc)
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	var raw []byte
	switch s := schemaData.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	key := string(raw)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, schema)
	return schema, nil
}

func dumpErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	truncated := ""
	if len(errs) > maxReported {
		truncated = fmt.Sprintf("\n... and %d more", len(errs)-maxReported)
		errs = errs[:maxReported]
	}
	return strings.Join(errs, "\n- ") + truncated
}
