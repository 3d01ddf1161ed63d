package hostfuncs

import (
	"sync"

	"github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/internal/abi"
)

// LogRecord is one message the guest sent through the log host function.
type LogRecord struct {
	Level   api.LogLevel
	Message string
}

// Call is one recorded host function invocation. Limit is the buffer size the
// guest offered, zero for functions that take no output buffer.
type Call struct {
	Name  string
	Limit uint32
}

type bodyState struct {
	content []byte
	offset  int
	written *BoundedBuffer
	wrote   bool
}

// Exchange is an in-memory http_handler host holding the state of one request
// and response. It implements api.Host and is safe for concurrent use.
//
// Getters follow the ABI: the value is written only when it fits in the
// offered buffer and the full size is always returned. Bodies are served in
// chunks of at most ChunkSize bytes.
type Exchange struct {
	mu sync.Mutex

	method     string
	uri        string
	version    string
	sourceAddr string
	config     []byte
	statusCode uint32

	headers [4]fields
	bodies  [2]bodyState

	chunkSize   int
	maxBodySize int
	supported   api.Features
	enabled     api.Features
	minLevel    api.LogLevel

	logs     []LogRecord
	calls    []Call
	observer func(Call)
}

var _ api.Host = (*Exchange)(nil)

// NewExchange creates an Exchange for a GET / HTTP/1.1 request with a 200
// response, every feature supported and logging enabled from debug upward.
func NewExchange(opts ...Option) *Exchange {
	e := &Exchange{
		method:      "GET",
		uri:         "/",
		version:     "HTTP/1.1",
		statusCode:  200,
		chunkSize:   abi.DefaultCapacity,
		maxBodySize: DefaultMaxBodySize,
		supported:   api.FeatureBufferRequest | api.FeatureBufferResponse | api.FeatureTrailers,
		minLevel:    api.LogLevelDebug,
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range e.bodies {
		e.bodies[i].written = NewBoundedBuffer(e.maxBodySize)
	}
	return e
}

func (e *Exchange) record(name string, limit int) {
	c := Call{Name: name, Limit: uint32(limit)} //nolint:gosec // G115: buffer sizes fit in wasm32
	e.calls = append(e.calls, c)
	if e.observer != nil {
		e.observer(c)
	}
}

// fill copies v into buf when it fits and returns len(v).
func fill(buf []byte, v []byte) uint32 {
	if len(v) <= len(buf) {
		copy(buf, v)
	}
	return uint32(len(v)) //nolint:gosec // G115: values are bounded by DefaultMaxValueSize
}

// fillMulti encodes values NUL-terminated into buf when they fit and returns
// the packed (count, length) result.
func fillMulti(buf []byte, values []string) uint64 {
	encoded := encodeNUL(values)
	n := fill(buf, encoded)
	return abi.Pack(uint32(len(values)), n) //nolint:gosec // G115: header counts fit in uint32
}

func clip(v []byte) string {
	if len(v) > DefaultMaxValueSize {
		v = v[:DefaultMaxValueSize]
	}
	return string(v)
}

func (e *Exchange) Log(level api.LogLevel, msg []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncLog, 0)
	e.logs = append(e.logs, LogRecord{Level: level, Message: clip(msg)})
}

func (e *Exchange) LogEnabled(level api.LogLevel) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncLogEnabled, 0)
	if level == api.LogLevelNone || level < e.minLevel {
		return 0
	}
	return 1
}

func (e *Exchange) GetConfig(buf []byte) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetConfig, len(buf))
	return fill(buf, e.config)
}

func (e *Exchange) EnableFeatures(features api.Features) api.Features {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncEnableFeatures, 0)
	e.enabled |= features & e.supported
	return e.enabled
}

func (e *Exchange) GetMethod(buf []byte) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetMethod, len(buf))
	return fill(buf, []byte(e.method))
}

func (e *Exchange) SetMethod(method []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncSetMethod, 0)
	e.method = clip(method)
}

func (e *Exchange) GetURI(buf []byte) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetURI, len(buf))
	return fill(buf, []byte(e.uri))
}

func (e *Exchange) SetURI(uri []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncSetURI, 0)
	e.uri = clip(uri)
}

func (e *Exchange) GetProtocolVersion(buf []byte) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetProtocolVersion, len(buf))
	return fill(buf, []byte(e.version))
}

func (e *Exchange) GetSourceAddr(buf []byte) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetSourceAddr, len(buf))
	return fill(buf, []byte(e.sourceAddr))
}

func (e *Exchange) GetStatusCode() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetStatusCode, 0)
	return e.statusCode
}

func (e *Exchange) SetStatusCode(code uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncSetStatusCode, 0)
	e.statusCode = code
}

func (e *Exchange) GetHeaderNames(kind api.HeaderKind, buf []byte) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetHeaderNames, len(buf))
	if !kind.Valid() {
		return 0
	}
	h := e.headers[kind]
	names := make([]string, len(h))
	for i, f := range h {
		names[i] = f.Name
	}
	return fillMulti(buf, names)
}

func (e *Exchange) GetHeaderValues(kind api.HeaderKind, name []byte, buf []byte) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncGetHeaderValues, len(buf))
	if !kind.Valid() {
		return 0
	}
	return fillMulti(buf, e.headers[kind].values(string(name)))
}

func (e *Exchange) SetHeaderValue(kind api.HeaderKind, name, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncSetHeaderValue, 0)
	if kind.Valid() && len(name) > 0 {
		e.headers[kind].set(clip(name), clip(value))
	}
}

func (e *Exchange) AddHeaderValue(kind api.HeaderKind, name, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncAddHeaderValue, 0)
	if kind.Valid() && len(name) > 0 {
		e.headers[kind].add(clip(name), clip(value))
	}
}

func (e *Exchange) RemoveHeader(kind api.HeaderKind, name []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncRemoveHeader, 0)
	if kind.Valid() {
		e.headers[kind].remove(string(name))
	}
}

// ReadBody serves the next chunk of the body. The chunk is bounded by the
// offered buffer and the configured chunk size; the eof flag is set on the
// chunk that exhausts the body, and on every read after that.
func (e *Exchange) ReadBody(kind api.BodyKind, buf []byte) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncReadBody, len(buf))
	if !kind.Valid() {
		return abi.Pack(1, 0)
	}
	b := &e.bodies[kind]
	n := min(len(buf), e.chunkSize, len(b.content)-b.offset)
	copy(buf, b.content[b.offset:b.offset+n])
	b.offset += n
	var eof uint32
	if b.offset == len(b.content) {
		eof = 1
	}
	return abi.Pack(eof, uint32(n)) //nolint:gosec // G115: n is bounded by len(buf)
}

// WriteBody replaces the body on the first call and appends on later ones.
func (e *Exchange) WriteBody(kind api.BodyKind, body []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(api.FuncWriteBody, 0)
	if !kind.Valid() {
		return
	}
	b := &e.bodies[kind]
	if !b.wrote {
		b.written.Reset()
		b.wrote = true
	}
	_, _ = b.written.Write(body)
}
