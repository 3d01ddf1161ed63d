package guest

import (
	"io"

	"github.com/reglet-dev/http-wasm-guest/api"
)

// Body is the request or response body.
type Body struct {
	rt   *Runtime
	kind api.BodyKind
}

var _ io.Writer = Body{}

// Kind returns which body b refers to.
func (b Body) Kind() api.BodyKind {
	return b.kind
}

// Read returns the rest of the body, reading until the host signals the end
// of the stream. A second Read returns only what arrived after the first.
func (b Body) Read() Bytes {
	return Bytes(b.rt.caller.ReadStream(api.FuncReadBody, func(buf []byte) uint64 {
		return b.rt.host.ReadBody(b.kind, buf)
	}))
}

// Write sends p to the host. The first write in a handler replaces the body
// and later writes append to it.
func (b Body) Write(p []byte) (int, error) {
	b.rt.host.WriteBody(b.kind, p)
	return len(p), nil
}

// WriteString is Write for a string.
func (b Body) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}
