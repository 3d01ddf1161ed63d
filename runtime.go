package guest

import (
	"fmt"
	"sync"

	"github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/internal/abi"
	"github.com/reglet-dev/http-wasm-guest/internal/imports"
)

// Runtime binds an api.Host to the marshaling core. All request and response
// accessors hang off a Runtime.
type Runtime struct {
	host   api.Host
	caller *abi.Caller
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	guard     *abi.Guard
	maxChunks int
}

// WithScratchCapacity gives the runtime its own scratch buffer of n bytes
// instead of the process-wide one.
func WithScratchCapacity(n int) Option {
	return func(c *runtimeConfig) {
		c.guard = abi.NewGuard(abi.NewScratchBuffer(n))
	}
}

// WithMaxBodyChunks bounds how many read_body calls a single Body.Read may
// make. Zero means unbounded.
func WithMaxBodyChunks(n int) Option {
	return func(c *runtimeConfig) {
		c.maxChunks = n
	}
}

// New creates a Runtime over h. By default it shares the process-wide
// scratch buffer.
func New(h api.Host, opts ...Option) *Runtime {
	cfg := &runtimeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	callerOpts := []abi.CallerOption{abi.WithMaxChunks(cfg.maxChunks)}
	if cfg.guard != nil {
		callerOpts = append(callerOpts, abi.WithGuard(cfg.guard))
	}
	return &Runtime{
		host:   h,
		caller: abi.NewCaller(callerOpts...),
	}
}

var defaultRuntime = sync.OnceValue(func() *Runtime {
	return New(imports.Wasm{})
})

// Default returns the Runtime backed by the http_handler imports. It only
// works inside a wasm instance.
func Default() *Runtime {
	return defaultRuntime()
}

// Host returns the underlying host.
func (r *Runtime) Host() api.Host {
	return r.host
}

// Config returns the opaque configuration the host was given for this guest.
// It is empty when the host has none.
func (r *Runtime) Config() Bytes {
	return r.single(api.FuncGetConfig, r.host.GetConfig)
}

// ConfigString returns the configuration as text.
func (r *Runtime) ConfigString() (string, error) {
	s, err := r.Config().Text()
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	return s, nil
}

// EnableFeatures asks the host to turn on features and returns the set that
// is now enabled, which may differ from the request.
func (r *Runtime) EnableFeatures(features api.Features) api.Features {
	return r.host.EnableFeatures(features)
}

// LogEnabled reports whether the host would record a message at level.
func (r *Runtime) LogEnabled(level api.LogLevel) bool {
	return r.host.LogEnabled(level) == 1
}

// Log sends a message to the host logger.
func (r *Runtime) Log(level api.LogLevel, msg string) {
	r.host.Log(level, []byte(msg))
}

// Request returns the current request.
func (r *Runtime) Request() Request {
	return Request{rt: r}
}

// Response returns the current response.
func (r *Runtime) Response() Response {
	return Response{rt: r}
}

func (r *Runtime) single(op string, get func([]byte) uint32) Bytes {
	return Bytes(r.caller.ReadSingle(op, get))
}

func (r *Runtime) multi(op string, get func([]byte) uint64) []Bytes {
	raw := r.caller.ReadMulti(op, get)
	if len(raw) == 0 {
		return nil
	}
	out := make([]Bytes, len(raw))
	for i, v := range raw {
		out[i] = Bytes(v)
	}
	return out
}
