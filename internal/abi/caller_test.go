package abi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGetter mimics a host getter: the value is written only when it fits and
// the full size is always returned.
type fakeGetter struct {
	value  []byte
	limits []int
}

func (f *fakeGetter) call(buf []byte) uint32 {
	f.limits = append(f.limits, len(buf))
	if len(f.value) <= len(buf) {
		copy(buf, f.value)
	}
	return uint32(len(f.value))
}

func newTestCaller(capacity int, opts ...CallerOption) *Caller {
	opts = append([]CallerOption{WithGuard(NewGuard(NewScratchBuffer(capacity)))}, opts...)
	return NewCaller(opts...)
}

func TestNewCaller_DefaultsToSharedGuard(t *testing.T) {
	c := NewCaller()
	assert.Same(t, Shared(), c.Guard())
}

func TestReadSingle_FitsInScratch(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	g := &fakeGetter{value: []byte("GET")}

	got := c.ReadSingle("get_method", g.call)

	assert.Equal(t, "GET", string(got))
	assert.Equal(t, []int{DefaultCapacity}, g.limits, "expected exactly one host call")
}

func TestReadSingle_ExactlyCapacity(t *testing.T) {
	c := newTestCaller(8)
	g := &fakeGetter{value: []byte("12345678")}

	got := c.ReadSingle("get_uri", g.call)

	assert.Equal(t, "12345678", string(got))
	assert.Len(t, g.limits, 1)
}

func TestReadSingle_Absent(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	g := &fakeGetter{}

	assert.Nil(t, c.ReadSingle("get_source_addr", g.call))
	assert.Len(t, g.limits, 1)
}

func TestReadSingle_OversizedRetriesWithExactBuffer(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	value := `{"marker":"` + strings.Repeat("x", 2987) + `"}`
	require.Len(t, value, 3000)
	g := &fakeGetter{value: []byte(value)}

	got := c.ReadSingle("get_config", g.call)

	assert.Equal(t, value, string(got))
	assert.Equal(t, []int{DefaultCapacity, 3000}, g.limits, "second call must use a buffer of the declared size")
	assert.Contains(t, string(got), `"marker"`)
}

func TestReadSingle_DoesNotAliasScratch(t *testing.T) {
	guard := NewGuard(NewScratchBuffer(16))
	c := NewCaller(WithGuard(guard))

	got := c.ReadSingle("get_method", (&fakeGetter{value: []byte("GET")}).call)
	c.ReadSingle("get_method", (&fakeGetter{value: []byte("PUT")}).call)

	assert.Equal(t, "GET", string(got))
}

func TestReadSingle_ProtocolViolationPanics(t *testing.T) {
	c := newTestCaller(4)
	calls := 0
	grow := func(buf []byte) uint32 {
		calls++
		return uint32(10 * calls)
	}

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		perr, ok := r.(*ProtocolError)
		require.True(t, ok, "expected *ProtocolError, got %T", r)
		assert.Equal(t, "get_uri", perr.Op)
		assert.Equal(t, uint32(10), perr.Declared)
		assert.Equal(t, uint32(20), perr.Returned)
		assert.Contains(t, perr.Error(), "declared 10 bytes but returned 20")
		assert.True(t, c.Guard().Poisoned())
	}()
	c.ReadSingle("get_uri", grow)
}

// fakeMulti mimics get_header_names/get_header_values.
type fakeMulti struct {
	values []string
	limits []int
}

func (f *fakeMulti) call(buf []byte) uint64 {
	f.limits = append(f.limits, len(buf))
	var encoded []byte
	for _, v := range f.values {
		encoded = append(encoded, v...)
		encoded = append(encoded, 0)
	}
	if len(encoded) <= len(buf) {
		copy(buf, encoded)
	}
	return Pack(uint32(len(f.values)), uint32(len(encoded)))
}

func TestReadMulti_HeaderNames(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	m := &fakeMulti{values: []string{"X-FOO", "x-bar", "x-baz"}}

	got := c.ReadMulti("get_header_names", m.call)

	require.Len(t, got, 3)
	assert.Equal(t, "X-FOO", string(got[0]))
	assert.Equal(t, "x-bar", string(got[1]))
	assert.Equal(t, "x-baz", string(got[2]))
	assert.Len(t, m.limits, 1)
}

func TestReadMulti_Empty(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	m := &fakeMulti{}

	assert.Empty(t, c.ReadMulti("get_header_values", m.call))
}

func TestReadMulti_OversizedUsesSecondResult(t *testing.T) {
	c := newTestCaller(16)
	long := strings.Repeat("v", 40)
	m := &fakeMulti{values: []string{long, "short"}}

	got := c.ReadMulti("get_header_values", m.call)

	require.Len(t, got, 2)
	assert.Equal(t, long, string(got[0]))
	assert.Equal(t, "short", string(got[1]))
	assert.Equal(t, []int{16, 47}, m.limits)
}

func TestReadMulti_SecondResultRederived(t *testing.T) {
	c := newTestCaller(4)
	calls := 0
	// The first answer claims 3 values in 12 bytes; the retry reports 1 value.
	call := func(buf []byte) uint64 {
		calls++
		if calls == 1 {
			return Pack(3, 12)
		}
		copy(buf, "only\x00")
		return Pack(1, 5)
	}

	got := c.ReadMulti("get_header_names", call)

	require.Len(t, got, 1)
	assert.Equal(t, "only", string(got[0]))
}

func TestReadMulti_ProtocolViolationPanics(t *testing.T) {
	c := newTestCaller(4)
	call := func(buf []byte) uint64 {
		return Pack(1, uint32(len(buf)+10))
	}
	assert.PanicsWithError(t, "abi: get_header_names: host declared 14 bytes but returned 24 on retry", func() {
		c.ReadMulti("get_header_names", call)
	})
	assert.True(t, c.Guard().Poisoned())
}

// contended starts a goroutine that takes g. tryNow reports whether it got
// the guard within a short wait; acquired closes once it does.
func contended(g *Guard) (acquired <-chan struct{}, tryNow func() bool) {
	ch := make(chan struct{})
	go g.With(func(*ScratchBuffer) { close(ch) })
	return ch, func() bool {
		select {
		case <-ch:
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}
}

func TestReadSingle_RetryHoldsGuard(t *testing.T) {
	c := newTestCaller(4)
	value := []byte("a value longer than four bytes")

	var acquired <-chan struct{}
	var duringRetry bool
	calls := 0
	got := c.ReadSingle("get_config", func(buf []byte) uint32 {
		calls++
		if calls == 2 {
			var tryNow func() bool
			acquired, tryNow = contended(c.Guard())
			duringRetry = tryNow()
			copy(buf, value)
		}
		return uint32(len(value))
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, value, got)
	assert.False(t, duringRetry, "guard must stay held during the retry")
	<-acquired
}

func TestReadMulti_RetryHoldsGuard(t *testing.T) {
	c := newTestCaller(4)
	m := &fakeMulti{values: []string{"X-Long-Header", "x-other"}}

	var acquired <-chan struct{}
	var duringRetry bool
	got := c.ReadMulti("get_header_names", func(buf []byte) uint64 {
		if len(m.limits) == 1 {
			var tryNow func() bool
			acquired, tryNow = contended(c.Guard())
			duringRetry = tryNow()
		}
		return m.call(buf)
	})

	require.Len(t, got, 2)
	assert.False(t, duringRetry, "guard must stay held during the retry")
	<-acquired
}

// fakeStream serves chunks and flags eof on the last one.
type fakeStream struct {
	chunks []string
	calls  int
}

func (f *fakeStream) call(buf []byte) uint64 {
	chunk := f.chunks[f.calls]
	f.calls++
	n := copy(buf, chunk)
	var eof uint32
	if f.calls == len(f.chunks) {
		eof = 1
	}
	return Pack(eof, uint32(n))
}

func TestReadStream_SingleChunk(t *testing.T) {
	c := newTestCaller(DefaultCapacity)
	s := &fakeStream{chunks: []string{"<html><body>test</body>"}}

	got := c.ReadStream("read_body", s.call)

	assert.Equal(t, "<html><body>test</body>", string(got))
	assert.Equal(t, 1, s.calls)
}

func TestReadStream_AccumulatesInOrder(t *testing.T) {
	c := newTestCaller(4)
	s := &fakeStream{chunks: []string{"abcd", "efgh", "ij", ""}}

	got := c.ReadStream("read_body", s.call)

	assert.Equal(t, "abcdefghij", string(got))
	assert.Equal(t, 4, s.calls, "must stop exactly at the eof chunk")
}

func TestReadStream_StopsAtFirstEOF(t *testing.T) {
	c := newTestCaller(8)
	calls := 0
	call := func(buf []byte) uint64 {
		calls++
		n := copy(buf, "chunk")
		return Pack(1, uint32(n))
	}

	got := c.ReadStream("read_body", call)

	assert.Equal(t, "chunk", string(got))
	assert.Equal(t, 1, calls)
}

func TestReadStream_EmptyBody(t *testing.T) {
	c := newTestCaller(8)
	s := &fakeStream{chunks: []string{""}}

	assert.Empty(t, c.ReadStream("read_body", s.call))
}

func TestReadStream_MaxChunks(t *testing.T) {
	c := newTestCaller(8, WithMaxChunks(3))
	calls := 0
	never := func(buf []byte) uint64 {
		calls++
		return Pack(0, uint32(copy(buf, "x")))
	}

	assert.PanicsWithError(t, "abi: read_body: no end of stream after 3 chunks", func() {
		c.ReadStream("read_body", never)
	})
	assert.Equal(t, 3, calls)
	assert.True(t, c.Guard().Poisoned())

	// The next sequence reclaims the buffer.
	got := c.ReadStream("read_body", (&fakeStream{chunks: []string{"ok"}}).call)
	assert.Equal(t, "ok", string(got))
	assert.Equal(t, uint64(1), c.Guard().Recoveries())
}

func TestReadStream_ChunkBeyondCapacityPanics(t *testing.T) {
	c := newTestCaller(4)
	call := func([]byte) uint64 { return Pack(1, 5) }

	assert.PanicsWithError(t, "abi: read_body: host reported a 5-byte chunk for a 4-byte buffer", func() {
		c.ReadStream("read_body", call)
	})
}
