package hostfuncs

import (
	"bytes"
)

// DefaultMaxBodySize caps how much body a guest may write through write_body (10MB).
const DefaultMaxBodySize = 10 * 1024 * 1024

// DefaultMaxValueSize caps any single value a guest passes in a setter (1MB).
// This prevents a misbehaving guest from claiming a huge (ptr, len) pair.
const DefaultMaxValueSize = 1 * 1024 * 1024

// BoundedBuffer accumulates body bytes written by the guest up to a limit.
// Bytes past the limit are dropped and Truncated is set. It implements
// io.Writer.
type BoundedBuffer struct {
	buffer    bytes.Buffer
	limit     int
	Truncated bool
}

// NewBoundedBuffer creates a BoundedBuffer holding at most limit bytes.
func NewBoundedBuffer(limit int) *BoundedBuffer {
	return &BoundedBuffer{
		limit: limit,
	}
}

// Write appends as much of p as the limit allows and always reports len(p),
// so a guest writing an oversized body is not failed mid-stream.
func (b *BoundedBuffer) Write(p []byte) (int, error) {
	room := b.limit - b.buffer.Len()
	if room <= 0 {
		if len(p) > 0 {
			b.Truncated = true
		}
		return len(p), nil
	}
	if len(p) > room {
		b.Truncated = true
		b.buffer.Write(p[:room])
		return len(p), nil
	}
	return b.buffer.Write(p)
}

// Bytes returns the accumulated body. The slice aliases the buffer.
func (b *BoundedBuffer) Bytes() []byte {
	return b.buffer.Bytes()
}

// Len returns the number of bytes held.
func (b *BoundedBuffer) Len() int {
	return b.buffer.Len()
}

// Reset discards the content and clears Truncated, as the first write_body of
// a phase does.
func (b *BoundedBuffer) Reset() {
	b.buffer.Reset()
	b.Truncated = false
}
