package wazero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero/api"
)

// ErrNoHost is the cause of the trap raised when a host function runs
// without a host in its call context.
var ErrNoHost = errors.New("no http_handler host in context")

// ErrMemory is the cause of the trap raised when a guest passes a region
// outside its memory, or a value above the configured size limit.
var ErrMemory = errors.New("invalid guest memory region")

// guestMemory resolves (ptr, len) pairs of one call against the calling
// module's memory. Invalid regions panic, which wazero turns into a trap.
type guestMemory struct {
	ctx context.Context
	mod api.Module
	fn  string
	max uint32
}

// buffer returns a writable view of [ptr, ptr+limit). Writes go straight to
// guest memory.
func (m *guestMemory) buffer(ptr, limit uint64) []byte {
	return m.read(api.DecodeU32(ptr), api.DecodeU32(limit))
}

// value returns a view of a guest-supplied value of length n, bounded by the
// configured maximum.
func (m *guestMemory) value(ptr, n uint64) []byte {
	length := api.DecodeU32(n)
	if length > m.max {
		m.fail(fmt.Sprintf("value size %d exceeds maximum %d bytes", length, m.max))
	}
	return m.read(api.DecodeU32(ptr), length)
}

func (m *guestMemory) read(ptr, length uint32) []byte {
	if length == 0 {
		return nil
	}
	mem := m.mod.Memory()
	if mem == nil {
		m.fail("guest module has no memory")
	}
	buf, ok := mem.Read(ptr, length)
	if !ok {
		m.fail(fmt.Sprintf("region [%d, %d+%d) out of range", ptr, ptr, length))
	}
	return buf
}

func (m *guestMemory) fail(msg string) {
	slog.ErrorContext(m.ctx, "wazero: "+msg, "function", m.fn)
	panic(fmt.Errorf("%s: %s: %w", m.fn, msg, ErrMemory))
}
