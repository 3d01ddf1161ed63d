//go:build !wasip1

package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/reglet-dev/http-wasm-guest/api"
)

// defaultHost is nil in native builds; records go to stderr.
func defaultHost() api.Host {
	return nil
}

func writeFallback(level slog.Level, line []byte) error {
	_, err := fmt.Fprintf(os.Stderr, "[guest] level=%s %s\n", level, line)
	return err
}
