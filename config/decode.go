// Package config decodes and validates the opaque configuration a host hands
// to a guest through get_config.
//
// JSON, YAML and TOML are accepted. Every format is normalized to JSON before
// it reaches the target, so one set of `json` tags describes the config
// whatever the host sent, and `validate` tags are checked afterwards.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format is a configuration encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a name such as "yml" to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown config format %q", name)
	}
}

// DetectFormat guesses the encoding of data: JSON when it starts with '{' or
// '[', YAML otherwise. TOML is never guessed.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// validate is a package-level singleton; validators cache struct metadata.
var validate = validator.New()

// Decode decodes data in its detected format into v and validates it.
// Empty data leaves v untouched but still validates it.
func Decode(data []byte, v any) error {
	return DecodeAs(data, DetectFormat(data), v)
}

// DecodeAs decodes data in the given format into v and validates it.
func DecodeAs(data []byte, format Format, v any) error {
	if len(bytes.TrimSpace(data)) > 0 {
		jsonBytes, err := ToJSON(data, format)
		if err != nil {
			return &ConfigError{Err: err}
		}
		if err := json.Unmarshal(jsonBytes, v); err != nil {
			return &ConfigError{Err: fmt.Errorf("failed to unmarshal config into %T: %w", v, err)}
		}
	}
	return Validate(v)
}

// ToJSON re-encodes data in the given format as JSON.
func ToJSON(data []byte, format Format) ([]byte, error) {
	var tree any
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, errors.New("invalid JSON")
		}
		return data, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		tree = m
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}

	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s config to JSON: %w", format, err)
	}
	return out, nil
}

// Validate runs the `validate` struct tags of v. Non-struct targets such as
// maps always pass.
func Validate(v any) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ConfigError{Field: fieldErrs[0].Namespace(), Err: err}
		}
		return &ConfigError{Err: err}
	}
	return nil
}
