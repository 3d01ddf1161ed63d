package api

// Host is the http_handler import boundary. Every method corresponds to one
// host function; (ptr, len) and (ptr, limit) pairs are expressed as byte
// slices, so implementations on the far side of the boundary never see Go
// pointers.
//
// Getter semantics follow the ABI: the host writes the value into buf only if
// it fits, and always returns the full size of the value. A returned size
// larger than len(buf) means nothing was written.
//
// Multi-valued getters return a packed (count, length) pair of NUL-terminated
// values; ReadBody returns a packed (eof, length) pair.
type Host interface {
	Log(level LogLevel, msg []byte)
	LogEnabled(level LogLevel) uint32

	GetConfig(buf []byte) uint32
	EnableFeatures(features Features) Features

	GetMethod(buf []byte) uint32
	SetMethod(method []byte)
	GetURI(buf []byte) uint32
	SetURI(uri []byte)
	GetProtocolVersion(buf []byte) uint32
	GetSourceAddr(buf []byte) uint32

	GetStatusCode() uint32
	SetStatusCode(code uint32)

	GetHeaderNames(kind HeaderKind, buf []byte) uint64
	GetHeaderValues(kind HeaderKind, name []byte, buf []byte) uint64
	SetHeaderValue(kind HeaderKind, name, value []byte)
	AddHeaderValue(kind HeaderKind, name, value []byte)
	RemoveHeader(kind HeaderKind, name []byte)

	ReadBody(kind BodyKind, buf []byte) uint64
	WriteBody(kind BodyKind, body []byte)
}
