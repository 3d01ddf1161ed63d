// Package log provides structured logging (slog) routed through the
// http_handler log host function.
package log

import (
	"context"
	"log/slog"
	"slices"

	"github.com/reglet-dev/http-wasm-guest/api"
)

// HostHandler implements slog.Handler by formatting each record as a single
// text line and passing it to the host log function.
type HostHandler struct {
	opts   handlerConfig
	prefix []byte // pre-formatted attrs from WithAttrs
	groups []string
}

// HandlerOption configures the HostHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	host      api.Host
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		host:  defaultHost(),
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are filtered on the guest side.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file:line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithHost sets the host that receives records. It defaults to the
// http_handler imports under wasm; native builds write to stderr.
func WithHost(h api.Host) HandlerOption {
	return func(c *handlerConfig) {
		c.host = h
	}
}

// NewHandler creates a new HostHandler with the given options.
func NewHandler(opts ...HandlerOption) *HostHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &HostHandler{opts: cfg}
}

// Enabled reports whether a record at level passes both the guest minimum
// and the host's own filter.
func (h *HostHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < h.opts.level {
		return false
	}
	if h.opts.host == nil {
		return true
	}
	return h.opts.host.LogEnabled(HostLevel(level)) == 1
}

// Handle formats the record and sends it to the host.
func (h *HostHandler) Handle(_ context.Context, record slog.Record) error {
	line := h.format(record)
	if h.opts.host == nil {
		return writeFallback(record.Level, line)
	}
	h.opts.host.Log(HostLevel(record.Level), line)
	return nil
}

// WithAttrs returns a handler whose records carry attrs.
func (h *HostHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	for _, a := range attrs {
		clone.prefix = appendAttr(clone.prefix, clone.groups, a)
	}
	return clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *HostHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *HostHandler) clone() *HostHandler {
	return &HostHandler{
		opts:   h.opts,
		prefix: slices.Clip(h.prefix),
		groups: slices.Clip(h.groups),
	}
}

// HostLevel maps a slog level to the host's severity scale.
func HostLevel(level slog.Level) api.LogLevel {
	switch {
	case level < slog.LevelInfo:
		return api.LogLevelDebug
	case level < slog.LevelWarn:
		return api.LogLevelInfo
	case level < slog.LevelError:
		return api.LogLevelWarn
	default:
		return api.LogLevelError
	}
}

// SlogLevel maps a host severity to the slog level at its lower bound.
// api.LogLevelNone maps above slog.LevelError.
func SlogLevel(level api.LogLevel) slog.Level {
	switch {
	case level <= api.LogLevelDebug:
		return slog.LevelDebug
	case level == api.LogLevelInfo:
		return slog.LevelInfo
	case level == api.LogLevelWarn:
		return slog.LevelWarn
	case level == api.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}
