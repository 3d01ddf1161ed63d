package abi

import "sync"

// Guard serializes access to a ScratchBuffer for the length of a whole
// call, retry and decode sequence.
//
// A panic inside With leaves the guard poisoned. The next acquirer clears the
// poison, zeroes the buffer and proceeds, so one failed request cannot wedge
// later ones.
type Guard struct {
	mu         sync.Mutex
	buf        *ScratchBuffer
	poisoned   bool
	recoveries uint64
}

// NewGuard wraps buf.
func NewGuard(buf *ScratchBuffer) *Guard {
	return &Guard{buf: buf}
}

// With runs fn with exclusive access to the buffer.
func (g *Guard) With(fn func(buf *ScratchBuffer)) {
	g.mu.Lock()
	if g.poisoned {
		g.buf.reset()
		g.poisoned = false
		g.recoveries++
	}

	completed := false
	defer func() {
		if !completed {
			g.poisoned = true
		}
		g.mu.Unlock()
	}()

	fn(g.buf)
	completed = true
}

// Capacity returns the capacity of the guarded buffer.
func (g *Guard) Capacity() int {
	return g.buf.Capacity()
}

// Poisoned reports whether the last holder panicked.
func (g *Guard) Poisoned() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.poisoned
}

// Recoveries returns how many times a poisoned guard has been reclaimed.
func (g *Guard) Recoveries() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recoveries
}
