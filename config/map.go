package config

import "fmt"

// Map is an untyped config, for guests that decode into a map rather than a
// struct. JSON numbers arrive as float64.
type Map map[string]any

// String returns the string at key.
func (m Map) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Int returns the number at key truncated to an int.
func (m Map) Int(key string) (int, bool) {
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Bool returns the bool at key.
func (m Map) Bool(key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// Strings returns the list of strings at key. A list holding anything other
// than strings is reported as absent.
func (m Map) Strings(key string) ([]string, bool) {
	arr, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// StringOr returns the string at key or def.
func (m Map) StringOr(key, def string) string {
	if s, ok := m.String(key); ok {
		return s
	}
	return def
}

// RequireString returns the string at key or a *ConfigError naming it.
func (m Map) RequireString(key string) (string, error) {
	s, ok := m.String(key)
	if !ok {
		return "", &ConfigError{
			Field: key,
			Err:   fmt.Errorf("required string field '%s' is missing or not a string", key),
		}
	}
	return s, nil
}
