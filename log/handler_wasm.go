//go:build wasip1

package log

import (
	"log/slog"

	"github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/internal/imports"
)

func defaultHost() api.Host {
	return imports.Wasm{}
}

// writeFallback is unused under wasm: there is always a host.
func writeFallback(slog.Level, []byte) error {
	return nil
}

// init routes the default slog logger through the host.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
