package config

import "fmt"

// ConfigError reports configuration that could not be decoded or did not
// pass validation.
//
//nolint:revive // config.ConfigError reads better at call sites than config.Error
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
