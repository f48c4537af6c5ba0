package profile

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const intakeSchemaURL = "schema://runner-intake.json"

// IntakeSchema is the JSON schema of the structured profile emitted by the
// intake conversation. Unknown keys (pace, nutrition, schedule preferences)
// are accepted and ignored.
var IntakeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type": "string",
		},
		"goal_type": map[string]any{
			"type": "string",
			"enum": []any{"finish", "time_target"},
		},
		"target_time": map[string]any{
			"type": "string",
		},
		"running_experience": map[string]any{
			"type": "string",
			"enum": []any{"beginner", "intermediate", "advanced"},
		},
		"current_weekly_mileage": map[string]any{
			"type": "number",
		},
		"training_days_per_week": map[string]any{
			"type": "integer",
		},
		"gym_access": map[string]any{
			"type": "boolean",
		},
	},
	"additionalProperties": true,
}

// ValidationError reports intake JSON that does not match IntakeSchema.
type ValidationError struct {
	Content json.RawMessage
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid intake profile: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func intakeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(intakeSchemaURL, IntakeSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(intakeSchemaURL)
	})
	return compiledSchema, compileErr
}

// Decode validates raw intake JSON and returns the normalized profile.
func Decode(raw []byte) (Profile, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Profile{}, &ValidationError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := intakeSchema()
	if err != nil {
		return Profile{}, fmt.Errorf("compile intake schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Profile{}, &ValidationError{Content: raw, Err: err}
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, &ValidationError{Content: raw, Err: err}
	}
	return p.Normalize(), nil
}
