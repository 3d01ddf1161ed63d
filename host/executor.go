package host

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
	wz "github.com/reglet-dev/http-wasm-guest/infrastructure/wazero"
)

// ErrMissingExport is returned when a module does not export a function
// every http-wasm guest must provide.
var ErrMissingExport = errors.New("guest is missing a required export")

// Executor manages the wazero runtime that guests are loaded into.
type Executor struct {
	runtime       wazero.Runtime
	runtimeConfig wazero.RuntimeConfig
	moduleConfig  wazero.ModuleConfig
	adapterOpts   []wz.AdapterOption
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.runtimeConfig == nil {
		e.runtimeConfig = wazero.NewRuntimeConfig()
	}
	if e.moduleConfig == nil {
		e.moduleConfig = wazero.NewModuleConfig()
	}

	rt := wazero.NewRuntimeWithConfig(ctx, e.runtimeConfig)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if _, err := wz.Instantiate(ctx, rt, e.adapterOpts...); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor and every guest it loaded.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Exports describes what a compiled module offers and needs.
type Exports struct {
	// Functions are the exported function names, sorted.
	Functions []string
	// Imports are the imported functions as "module.name", sorted.
	Imports []string
}

// Inspect compiles wasmBytes and lists its exports and imports without
// instantiating it.
func (e *Executor) Inspect(ctx context.Context, wasmBytes []byte) (*Exports, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}
	defer compiled.Close(ctx)

	out := &Exports{}
	for name := range compiled.ExportedFunctions() {
		out.Functions = append(out.Functions, name)
	}
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		out.Imports = append(out.Imports, module+"."+name)
	}
	sort.Strings(out.Functions)
	sort.Strings(out.Imports)
	return out, nil
}

// LoadGuest compiles and instantiates a guest. The module must export
// handle_request and handle_response; a reactor's _initialize export is run
// once after instantiation with h serving its host calls. Guests read their
// configuration during _initialize, so h fixes the config for the lifetime
// of the guest. A nil h traps any host call made while initializing.
func (e *Executor) LoadGuest(ctx context.Context, wasmBytes []byte, h httpapi.Host) (*Guest, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	exports := compiled.ExportedFunctions()
	for _, name := range []string{httpapi.FuncHandleRequest, httpapi.FuncHandleResponse} {
		if _, ok := exports[name]; !ok {
			_ = compiled.Close(ctx)
			return nil, fmt.Errorf("%w: %s", ErrMissingExport, name)
		}
	}

	// Anonymous so the same guest can be loaded more than once.
	mod, err := e.runtime.InstantiateModule(ctx, compiled, e.moduleConfig.WithName(""))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(wz.WithHost(ctx, h)); err != nil {
			_ = mod.Close(ctx)
			_ = compiled.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &Guest{
		module:         mod,
		compiled:       compiled,
		handleRequest:  mod.ExportedFunction(httpapi.FuncHandleRequest),
		handleResponse: mod.ExportedFunction(httpapi.FuncHandleResponse),
	}, nil
}
