package abi

import "fmt"

// ProtocolError reports a host that broke the size negotiation. Either it
// reported a larger value again after being given a buffer of exactly the
// size it asked for, or a body stream overran its buffer or its chunk bound.
//
// It is raised with panic. Continuing would mean reading truncated or
// uninitialized memory.
type ProtocolError struct {
	// Op is the host function that misbehaved.
	Op string
	// Declared is the size the host asked for on the first call.
	Declared uint32
	// Returned is the size reported on the retry.
	Returned uint32
	// Chunks is set instead of the sizes when a stream exceeded its bound.
	Chunks int
	// Overrun marks a read_body chunk longer than the buffer it was given.
	// Declared is then the buffer size and Returned the chunk length.
	Overrun bool
}

func (e *ProtocolError) Error() string {
	if e.Chunks > 0 {
		return fmt.Sprintf("abi: %s: no end of stream after %d chunks", e.Op, e.Chunks)
	}
	if e.Overrun {
		return fmt.Sprintf("abi: %s: host reported a %d-byte chunk for a %d-byte buffer", e.Op, e.Returned, e.Declared)
	}
	return fmt.Sprintf("abi: %s: host declared %d bytes but returned %d on retry", e.Op, e.Declared, e.Returned)
}
