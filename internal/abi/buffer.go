package abi

import (
	"fmt"
	"sync"
)

// DefaultCapacity is the size of the shared scratch buffer.
const DefaultCapacity = 2048

// ScratchBuffer is a fixed-capacity byte region handed to the host as the
// default destination of every getter. Its contents are only meaningful right
// after the call that filled them.
type ScratchBuffer struct {
	data []byte
}

// NewScratchBuffer allocates a scratch buffer. A non-positive capacity falls
// back to DefaultCapacity.
func NewScratchBuffer(capacity int) *ScratchBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ScratchBuffer{data: make([]byte, capacity)}
}

// Capacity returns the fixed size of the buffer. It is never zero.
func (b *ScratchBuffer) Capacity() int {
	return len(b.data)
}

// Bytes returns the whole region, to be passed to the host as (ptr, limit).
func (b *ScratchBuffer) Bytes() []byte {
	return b.data
}

// Subrange returns a view of the first size bytes. The view is only valid
// until the next boundary call.
//
// Callers must check for overflow first: a size beyond the capacity panics.
func (b *ScratchBuffer) Subrange(size uint32) []byte {
	if uint64(size) > uint64(len(b.data)) {
		panic(fmt.Sprintf("abi: subrange %d exceeds scratch capacity %d", size, len(b.data)))
	}
	return b.data[:size]
}

// Copy returns an owned copy of the first size bytes.
func (b *ScratchBuffer) Copy(size uint32) []byte {
	src := b.Subrange(size)
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// reset zeroes the contents.
func (b *ScratchBuffer) reset() {
	clear(b.data)
}

var shared = sync.OnceValue(func() *Guard {
	return NewGuard(NewScratchBuffer(DefaultCapacity))
})

// Shared returns the process-wide guard over the default scratch buffer. It is
// created on first use.
func Shared() *Guard {
	return shared()
}
