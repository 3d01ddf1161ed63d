package log

import (
	"log/slog"

	"github.com/reglet-dev/http-wasm-guest/api"
)

// Init installs a HostHandler as the slog default and returns the level it
// settled on.
//
// If the host would drop records at level, the level is raised one step
// (debug to info, info to warn, warn to error) without asking again.
func Init(level slog.Level, opts ...HandlerOption) slog.Level {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	effective := negotiate(cfg.host, level)

	opts = append(opts, WithLevel(effective))
	slog.SetDefault(slog.New(NewHandler(opts...)))
	return effective
}

func negotiate(h api.Host, level slog.Level) slog.Level {
	if h == nil || h.LogEnabled(HostLevel(level)) == 1 {
		return level
	}
	next := HostLevel(level) + 1
	if next > api.LogLevelError {
		return SlogLevel(api.LogLevelNone)
	}
	return SlogLevel(next)
}
