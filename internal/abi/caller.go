package abi

// Caller runs the "fill the scratch buffer, retry with an exact-size buffer
// if it did not fit" protocol for every host getter.
type Caller struct {
	guard     *Guard
	maxChunks int
}

// CallerOption configures a Caller.
type CallerOption func(*Caller)

// WithGuard sets the guarded scratch buffer. Defaults to Shared().
func WithGuard(g *Guard) CallerOption {
	return func(c *Caller) {
		c.guard = g
	}
}

// WithMaxChunks bounds how many read calls ReadStream makes before giving up
// with a ProtocolError. Zero, the default, means unbounded.
func WithMaxChunks(n int) CallerOption {
	return func(c *Caller) {
		c.maxChunks = n
	}
}

// NewCaller creates a Caller.
func NewCaller(opts ...CallerOption) *Caller {
	c := &Caller{}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = Shared()
	}
	return c
}

// Guard returns the guard the caller acquires.
func (c *Caller) Guard() *Guard {
	return c.guard
}

// ReadSingle reads a single value. call invokes the host getter against the
// buffer it is given and returns the size the host reported.
//
// A zero size yields nil. A size beyond the scratch capacity triggers exactly
// one retry against a buffer of that size; a retry that reports more than
// that panics with a ProtocolError. The guard is held across both calls.
func (c *Caller) ReadSingle(op string, call func(buf []byte) uint32) []byte {
	var out []byte
	c.guard.With(func(buf *ScratchBuffer) {
		size := call(buf.Bytes())
		switch {
		case size == 0:
		case uint64(size) <= uint64(buf.Capacity()):
			out = buf.Copy(size)
		default:
			exact := make([]byte, size)
			n := call(exact)
			if n > size {
				panic(&ProtocolError{Op: op, Declared: size, Returned: n})
			}
			out = exact[:n]
		}
	})
	return out
}

// ReadMulti reads a NUL-delimited list of values. call returns the packed
// (count, length) result of the host getter.
//
// On overflow the call is repeated once against a buffer of exactly length
// bytes and both count and length are taken from the second result.
func (c *Caller) ReadMulti(op string, call func(buf []byte) uint64) [][]byte {
	var out [][]byte
	c.guard.With(func(buf *ScratchBuffer) {
		count, length := CountLen(call(buf.Bytes()))
		if uint64(length) <= uint64(buf.Capacity()) {
			out = Split(buf.Subrange(length), count)
			return
		}

		exact := make([]byte, length)
		count, n := CountLen(call(exact))
		if n > length {
			panic(&ProtocolError{Op: op, Declared: length, Returned: n})
		}
		out = Split(exact[:n], count)
	})
	return out
}

// ReadStream reads a value of unknown size in chunks until the host flags the
// end of stream. The final chunk is kept even when empty. Chunks are
// concatenated in call order.
func (c *Caller) ReadStream(op string, call func(buf []byte) uint64) []byte {
	var out []byte
	c.guard.With(func(buf *ScratchBuffer) {
		for chunks := 1; ; chunks++ {
			eof, n := EOFLen(call(buf.Bytes()))
			if uint64(n) > uint64(buf.Capacity()) {
				panic(&ProtocolError{Op: op, Declared: uint32(buf.Capacity()), Returned: n, Overrun: true})
			}
			out = append(out, buf.Subrange(n)...)
			if eof {
				return
			}
			if c.maxChunks > 0 && chunks >= c.maxChunks {
				panic(&ProtocolError{Op: op, Chunks: chunks})
			}
		}
	})
	return out
}
