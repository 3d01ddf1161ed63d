package config

import guest "github.com/reglet-dev/http-wasm-guest"

// Load reads the guest configuration from the host and decodes it into v.
func Load(v any) error {
	return LoadFrom(guest.Default(), v)
}

// LoadFrom is Load against a specific runtime.
func LoadFrom(rt *guest.Runtime, v any) error {
	return Decode(rt.Config(), v)
}
