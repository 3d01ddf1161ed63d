package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema creates a JSON schema (Draft 2020-12) describing the config struct v.
func Schema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}

// ValidationResult holds the outcome of ValidateSchema.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError is one schema violation. Field is a JSON pointer into the
// config ("" for the root).
type ValidationError struct {
	Field   string
	Message string
}

// ValidateSchema checks raw JSON or YAML config data against a JSON schema.
// The format is detected as in Decode; use ValidateSchemaAs for TOML. The
// error is non-nil only when the schema or the data cannot be read;
// violations are reported in the result.
func ValidateSchema(schema, data []byte) (*ValidationResult, error) {
	return ValidateSchemaAs(schema, data, DetectFormat(data))
}

// ValidateSchemaAs is ValidateSchema for data in the given format.
func ValidateSchemaAs(schema, data []byte, format Format) (*ValidationResult, error) {
	const resource = "config.schema.json"

	compiler := schemavalidator.NewCompiler()
	if err := compiler.AddResource(resource, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	jsonBytes, err := ToJSON(data, format)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	var obj any
	if err := json.Unmarshal(jsonBytes, &obj); err != nil {
		return nil, &ConfigError{Err: err}
	}

	result := &ValidationResult{Valid: true}
	if err := sch.Validate(obj); err != nil {
		result.Valid = false
		var ve *schemavalidator.ValidationError
		if !errors.As(err, &ve) {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
			return result, nil
		}
		collectLeaves(ve, &result.Errors)
	}
	return result, nil
}

func collectLeaves(ve *schemavalidator.ValidationError, out *[]ValidationError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, ValidationError{Field: ve.InstanceLocation, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}
