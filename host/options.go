package host

import (
	"github.com/tetratelabs/wazero"

	wz "github.com/reglet-dev/http-wasm-guest/infrastructure/wazero"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithRuntimeConfig sets the wazero runtime configuration, for example to
// select the interpreter or bound memory.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(e *Executor) {
		e.runtimeConfig = cfg
	}
}

// WithModuleConfig sets the configuration every guest is instantiated with,
// for example to wire stdout or environment variables.
func WithModuleConfig(cfg wazero.ModuleConfig) Option {
	return func(e *Executor) {
		e.moduleConfig = cfg
	}
}

// WithAdapterOptions passes options to the http_handler host module.
func WithAdapterOptions(opts ...wz.AdapterOption) Option {
	return func(e *Executor) {
		e.adapterOpts = append(e.adapterOpts, opts...)
	}
}
