package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guest "github.com/reglet-dev/http-wasm-guest"
	"github.com/reglet-dev/http-wasm-guest/hostfuncs"
)

type headerConfig struct {
	Header  string   `json:"header" validate:"required"`
	Value   string   `json:"value,omitempty"`
	Methods []string `json:"methods,omitempty" validate:"dive,oneof=GET POST PUT DELETE"`
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", `{"header":"X-Plugin","value":"on","methods":["GET"]}`, FormatJSON},
		{"yaml", "header: X-Plugin\nvalue: \"on\"\nmethods:\n  - GET\n", FormatYAML},
		{"toml", "header = \"X-Plugin\"\nvalue = \"on\"\nmethods = [\"GET\"]\n", FormatTOML},
	}
	want := headerConfig{Header: "X-Plugin", Value: "on", Methods: []string{"GET"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got headerConfig
			require.NoError(t, DecodeAs([]byte(tt.data), tt.format, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  {\"a\":1}")))
	assert.Equal(t, FormatJSON, DetectFormat([]byte("[1]")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("a: 1")))
	assert.Equal(t, FormatYAML, DetectFormat(nil))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("ini")
	assert.Error(t, err)
}

func TestDecode_ValidationFailure(t *testing.T) {
	var cfg headerConfig
	err := Decode([]byte(`{"value":"on"}`), &cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "headerConfig.Header", cfgErr.Field)

	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "required", fieldErrs[0].Tag())
}

func TestDecode_DiveValidation(t *testing.T) {
	var cfg headerConfig
	err := Decode([]byte("header: X\nmethods: [GET, TRACE]\n"), &cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "headerConfig.Methods[1]", cfgErr.Field)
}

func TestDecode_Malformed(t *testing.T) {
	var cfg headerConfig
	err := DecodeAs([]byte(`{"header":`), FormatJSON, &cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_EmptyStillValidates(t *testing.T) {
	var cfg headerConfig
	assert.Error(t, Decode(nil, &cfg))

	var m Map
	assert.NoError(t, Decode(nil, &m))
	assert.Nil(t, m)
}

func TestLoadFrom(t *testing.T) {
	ex := hostfuncs.NewExchange(hostfuncs.WithConfig([]byte(`{"header":"X-From-Host"}`)))
	rt := guest.New(ex, guest.WithScratchCapacity(64))

	var cfg headerConfig
	require.NoError(t, LoadFrom(rt, &cfg))
	assert.Equal(t, "X-From-Host", cfg.Header)
}

func TestLoadFrom_LargeConfig(t *testing.T) {
	value := strings.Repeat("v", 4000)
	ex := hostfuncs.NewExchange(hostfuncs.WithConfig([]byte(`{"header":"X-Big","value":"` + value + `"}`)))
	rt := guest.New(ex)

	var cfg headerConfig
	require.NoError(t, LoadFrom(rt, &cfg))
	assert.Equal(t, value, cfg.Value)
}

func TestMap(t *testing.T) {
	var m Map
	require.NoError(t, Decode([]byte(`{"name":"hdr","count":3,"on":true,"list":["a","b"],"mixed":["a",1]}`), &m))

	s, ok := m.String("name")
	assert.True(t, ok)
	assert.Equal(t, "hdr", s)

	n, ok := m.Int("count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	b, ok := m.Bool("on")
	assert.True(t, ok)
	assert.True(t, b)

	list, ok := m.Strings("list")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, list)

	_, ok = m.Strings("mixed")
	assert.False(t, ok)

	assert.Equal(t, "fallback", m.StringOr("missing", "fallback"))

	_, err := m.RequireString("count")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "count", cfgErr.Field)
}
