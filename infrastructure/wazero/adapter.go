package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/hostfuncs"
)

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// ModuleName is the host module name (default: "http_handler").
	ModuleName string

	// MaxValueSize limits the length of any value a guest passes to a setter
	// or to write_body. Default is 1MB.
	MaxValueSize uint32
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "http_handler").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxValueSize sets the maximum length of a value read from guest memory.
func WithMaxValueSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxValueSize = size
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:   httpapi.HostModule,
		MaxValueSize: hostfuncs.DefaultMaxValueSize,
	}
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// hostFunc describes one export of the host module. call receives the host
// resolved from the call context and a memory accessor for the calling guest.
type hostFunc struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	call    func(h httpapi.Host, m *guestMemory, stack []uint64)
}

// Instantiate builds and instantiates the http_handler host module in rt.
// Every function resolves its api.Host from the call context, so one module
// serves any number of concurrent requests:
//
//	ctx = wazero.WithHost(ctx, hostfuncs.NewExchange(...))
//	handleRequest.Call(ctx)
//
// A call without a host in its context traps the guest.
func Instantiate(ctx context.Context, rt wazero.Runtime, opts ...AdapterOption) (api.Module, error) {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := rt.NewHostModuleBuilder(cfg.ModuleName)
	for _, f := range hostFuncs() {
		fn := f // capture for closure
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				h, ok := HostFromContext(ctx)
				if !ok {
					slog.ErrorContext(ctx, "wazero: no host in call context", "function", fn.name)
					panic(fmt.Errorf("%s: %w", fn.name, ErrNoHost))
				}
				fn.call(h, &guestMemory{ctx: ctx, mod: mod, fn: fn.name, max: cfg.MaxValueSize}, stack)
			}), fn.params, fn.results).
			WithName(fn.name).
			Export(fn.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate %s: %w", cfg.ModuleName, err)
	}
	return mod, nil
}

func hostFuncs() []hostFunc {
	return []hostFunc{
		{httpapi.FuncLog, []api.ValueType{i32, i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.Log(httpapi.LogLevel(api.DecodeI32(s[0])), m.value(s[1], s[2]))
		}},
		{httpapi.FuncLogEnabled, []api.ValueType{i32}, []api.ValueType{i32}, func(h httpapi.Host, _ *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.LogEnabled(httpapi.LogLevel(api.DecodeI32(s[0]))))
		}},
		{httpapi.FuncGetConfig, []api.ValueType{i32, i32}, []api.ValueType{i32}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetConfig(m.buffer(s[0], s[1])))
		}},
		{httpapi.FuncEnableFeatures, []api.ValueType{i32}, []api.ValueType{i32}, func(h httpapi.Host, _ *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(uint32(h.EnableFeatures(httpapi.Features(api.DecodeU32(s[0])))))
		}},
		{httpapi.FuncGetMethod, []api.ValueType{i32, i32}, []api.ValueType{i32}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetMethod(m.buffer(s[0], s[1])))
		}},
		{httpapi.FuncSetMethod, []api.ValueType{i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.SetMethod(m.value(s[0], s[1]))
		}},
		{httpapi.FuncGetURI, []api.ValueType{i32, i32}, []api.ValueType{i32}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetURI(m.buffer(s[0], s[1])))
		}},
		{httpapi.FuncSetURI, []api.ValueType{i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.SetURI(m.value(s[0], s[1]))
		}},
		{httpapi.FuncGetProtocolVersion, []api.ValueType{i32, i32}, []api.ValueType{i32}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetProtocolVersion(m.buffer(s[0], s[1])))
		}},
		{httpapi.FuncGetSourceAddr, []api.ValueType{i32, i32}, []api.ValueType{i32}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetSourceAddr(m.buffer(s[0], s[1])))
		}},
		{httpapi.FuncGetStatusCode, nil, []api.ValueType{i32}, func(h httpapi.Host, _ *guestMemory, s []uint64) {
			s[0] = api.EncodeU32(h.GetStatusCode())
		}},
		{httpapi.FuncSetStatusCode, []api.ValueType{i32}, nil, func(h httpapi.Host, _ *guestMemory, s []uint64) {
			h.SetStatusCode(api.DecodeU32(s[0]))
		}},
		{httpapi.FuncGetHeaderNames, []api.ValueType{i32, i32, i32}, []api.ValueType{i64}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = h.GetHeaderNames(headerKind(s[0]), m.buffer(s[1], s[2]))
		}},
		{httpapi.FuncGetHeaderValues, []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i64}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = h.GetHeaderValues(headerKind(s[0]), m.value(s[1], s[2]), m.buffer(s[3], s[4]))
		}},
		{httpapi.FuncSetHeaderValue, []api.ValueType{i32, i32, i32, i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.SetHeaderValue(headerKind(s[0]), m.value(s[1], s[2]), m.value(s[3], s[4]))
		}},
		{httpapi.FuncAddHeaderValue, []api.ValueType{i32, i32, i32, i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.AddHeaderValue(headerKind(s[0]), m.value(s[1], s[2]), m.value(s[3], s[4]))
		}},
		{httpapi.FuncRemoveHeader, []api.ValueType{i32, i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.RemoveHeader(headerKind(s[0]), m.value(s[1], s[2]))
		}},
		{httpapi.FuncReadBody, []api.ValueType{i32, i32, i32}, []api.ValueType{i64}, func(h httpapi.Host, m *guestMemory, s []uint64) {
			s[0] = h.ReadBody(httpapi.BodyKind(api.DecodeU32(s[0])), m.buffer(s[1], s[2]))
		}},
		{httpapi.FuncWriteBody, []api.ValueType{i32, i32, i32}, nil, func(h httpapi.Host, m *guestMemory, s []uint64) {
			h.WriteBody(httpapi.BodyKind(api.DecodeU32(s[0])), m.value(s[1], s[2]))
		}},
	}
}

func headerKind(v uint64) httpapi.HeaderKind {
	return httpapi.HeaderKind(api.DecodeU32(v))
}
