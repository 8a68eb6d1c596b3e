package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// The schema depends only on the session type's binding tables, so each
// of the three compiles exactly once for the process lifetime.
var flatSchemas = map[domain.SessionType]func() (*jsonschema.Schema, error){
	domain.SessionMatch:        sync.OnceValues(func() (*jsonschema.Schema, error) { return compileFlatSchema(domain.SessionMatch) }),
	domain.SessionBallWork:     sync.OnceValues(func() (*jsonschema.Schema, error) { return compileFlatSchema(domain.SessionBallWork) }),
	domain.SessionSpeedAgility: sync.OnceValues(func() (*jsonschema.Schema, error) { return compileFlatSchema(domain.SessionSpeedAgility) }),
}

// CheckFlat validates a flattened extraction object against a lenient
// schema for the session type: every known key may be a number, string or
// null, and unknown keys are allowed. The caller treats a failure as a
// warning, not an error, since missing or oddly typed fields still
// normalize to nulls.
func CheckFlat(sessionType domain.SessionType, obj map[string]any) error {
	compile, ok := flatSchemas[sessionType]
	if !ok {
		return fmt.Errorf("no schema for session type %q", sessionType)
	}
	schema, err := compile()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(anyMap(obj)); err != nil {
		return fmt.Errorf("extraction does not match schema: %w", err)
	}
	return nil
}

func compileFlatSchema(sessionType domain.SessionType) (*jsonschema.Schema, error) {
	props := make(map[string]any)
	for _, key := range FlatKeys(sessionType) {
		props[key] = map[string]any{
			"type": []string{"number", "string", "null"},
		}
	}
	schemaMap := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("extraction.json")
}

// anyMap round-trips through plain any values so nested sections that
// survived flattening still validate as generic JSON.
func anyMap(obj map[string]any) any {
	b, err := json.Marshal(obj)
	if err != nil {
		return obj
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return obj
	}
	return v
}
