package hostfuncs

import "github.com/reglet-dev/http-wasm-guest/api"

// Method returns the current request method.
func (e *Exchange) Method() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.method
}

// URI returns the current request URI.
func (e *Exchange) URI() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.uri
}

// StatusCode returns the current response status.
func (e *Exchange) StatusCode() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusCode
}

// Enabled returns the features enabled so far.
func (e *Exchange) Enabled() api.Features {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Header returns a copy of the header fields of kind in insertion order.
func (e *Exchange) Header(kind api.HeaderKind) []Field {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !kind.Valid() {
		return nil
	}
	return e.headers[kind].clone()
}

// HeaderValues returns the values of one header, matching the name
// case-insensitively.
func (e *Exchange) HeaderValues(kind api.HeaderKind, name string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !kind.Valid() {
		return nil
	}
	return append([]string(nil), e.headers[kind].values(name)...)
}

// Body returns what the guest wrote with write_body, or the original body if
// the guest never wrote one.
func (e *Exchange) Body(kind api.BodyKind) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !kind.Valid() {
		return nil
	}
	b := &e.bodies[kind]
	if b.wrote {
		return append([]byte(nil), b.written.Bytes()...)
	}
	return append([]byte(nil), b.content...)
}

// BodyWritten reports whether the guest called write_body for kind.
func (e *Exchange) BodyWritten(kind api.BodyKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return kind.Valid() && e.bodies[kind].wrote
}

// BodyTruncated reports whether written body bytes were dropped at the
// size limit.
func (e *Exchange) BodyTruncated(kind api.BodyKind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return kind.Valid() && e.bodies[kind].written.Truncated
}

// Logs returns the messages the guest logged.
func (e *Exchange) Logs() []LogRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]LogRecord(nil), e.logs...)
}

// Calls returns how many times the named host function was called.
func (e *Exchange) Calls(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Limits returns the buffer sizes offered to the named host function, in
// call order.
func (e *Exchange) Limits(name string) []uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []uint32
	for _, c := range e.calls {
		if c.Name == name {
			out = append(out, c.Limit)
		}
	}
	return out
}

// Reset forgets recorded calls and logs.
func (e *Exchange) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
	e.logs = nil
}
