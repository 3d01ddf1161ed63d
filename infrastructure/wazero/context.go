package wazero

import (
	"context"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var hostKey = &contextKey{name: "http_handler_host"}

// WithHost attaches the host that serves http_handler calls made under ctx.
func WithHost(ctx context.Context, h httpapi.Host) context.Context {
	return context.WithValue(ctx, hostKey, h)
}

// HostFromContext retrieves the host attached by WithHost.
func HostFromContext(ctx context.Context) (httpapi.Host, bool) {
	h, ok := ctx.Value(hostKey).(httpapi.Host)
	return h, ok && h != nil
}
