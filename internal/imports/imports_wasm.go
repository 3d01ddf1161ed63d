//go:build wasip1

// Package imports binds the http_handler host functions with
// //go:wasmimport. It is the only package that converts Go byte slices into
// guest memory addresses.
package imports

import (
	"runtime"
	"unsafe"

	"github.com/reglet-dev/http-wasm-guest/api"
)

//go:wasmimport http_handler log
//nolint:revive // intentional snake_case to match WASM import convention
func host_log(level int32, buf unsafe.Pointer, bufLen uint32)

//go:wasmimport http_handler log_enabled
func host_log_enabled(level int32) uint32

//go:wasmimport http_handler get_config
func host_get_config(buf unsafe.Pointer, bufLimit uint32) uint32

//go:wasmimport http_handler enable_features
func host_enable_features(features uint32) uint32

//go:wasmimport http_handler get_method
func host_get_method(buf unsafe.Pointer, bufLimit uint32) uint32

//go:wasmimport http_handler set_method
func host_set_method(buf unsafe.Pointer, bufLen uint32)

//go:wasmimport http_handler get_uri
func host_get_uri(buf unsafe.Pointer, bufLimit uint32) uint32

//go:wasmimport http_handler set_uri
func host_set_uri(buf unsafe.Pointer, bufLen uint32)

//go:wasmimport http_handler get_protocol_version
func host_get_protocol_version(buf unsafe.Pointer, bufLimit uint32) uint32

//go:wasmimport http_handler get_source_addr
func host_get_source_addr(buf unsafe.Pointer, bufLimit uint32) uint32

//go:wasmimport http_handler get_status_code
func host_get_status_code() uint32

//go:wasmimport http_handler set_status_code
func host_set_status_code(code uint32)

//go:wasmimport http_handler get_header_names
func host_get_header_names(kind uint32, buf unsafe.Pointer, bufLimit uint32) uint64

//go:wasmimport http_handler get_header_values
func host_get_header_values(kind uint32, name unsafe.Pointer, nameLen uint32, buf unsafe.Pointer, bufLimit uint32) uint64

//go:wasmimport http_handler set_header_value
func host_set_header_value(kind uint32, name unsafe.Pointer, nameLen uint32, value unsafe.Pointer, valueLen uint32)

//go:wasmimport http_handler add_header_value
func host_add_header_value(kind uint32, name unsafe.Pointer, nameLen uint32, value unsafe.Pointer, valueLen uint32)

//go:wasmimport http_handler remove_header
func host_remove_header(kind uint32, name unsafe.Pointer, nameLen uint32)

//go:wasmimport http_handler read_body
func host_read_body(kind uint32, buf unsafe.Pointer, bufLimit uint32) uint64

//go:wasmimport http_handler write_body
func host_write_body(kind uint32, buf unsafe.Pointer, bufLen uint32)

// ptrLen returns the address and length of b. An empty slice maps to (nil, 0).
func ptrLen(b []byte) (unsafe.Pointer, uint32) {
	if len(b) == 0 {
		return nil, 0
	}
	//nolint:gosec // G103: guest memory handed to the host for the duration of one call
	return unsafe.Pointer(unsafe.SliceData(b)), uint32(len(b))
}

// Wasm implements api.Host with the http_handler imports.
type Wasm struct{}

var _ api.Host = Wasm{}

func (Wasm) Log(level api.LogLevel, msg []byte) {
	ptr, n := ptrLen(msg)
	host_log(int32(level), ptr, n)
	runtime.KeepAlive(msg)
}

func (Wasm) LogEnabled(level api.LogLevel) uint32 {
	return host_log_enabled(int32(level))
}

func (Wasm) GetConfig(buf []byte) uint32 {
	ptr, n := ptrLen(buf)
	size := host_get_config(ptr, n)
	runtime.KeepAlive(buf)
	return size
}

func (Wasm) EnableFeatures(features api.Features) api.Features {
	return api.Features(host_enable_features(uint32(features)))
}

func (Wasm) GetMethod(buf []byte) uint32 {
	ptr, n := ptrLen(buf)
	size := host_get_method(ptr, n)
	runtime.KeepAlive(buf)
	return size
}

func (Wasm) SetMethod(method []byte) {
	ptr, n := ptrLen(method)
	host_set_method(ptr, n)
	runtime.KeepAlive(method)
}

func (Wasm) GetURI(buf []byte) uint32 {
	ptr, n := ptrLen(buf)
	size := host_get_uri(ptr, n)
	runtime.KeepAlive(buf)
	return size
}

func (Wasm) SetURI(uri []byte) {
	ptr, n := ptrLen(uri)
	host_set_uri(ptr, n)
	runtime.KeepAlive(uri)
}

func (Wasm) GetProtocolVersion(buf []byte) uint32 {
	ptr, n := ptrLen(buf)
	size := host_get_protocol_version(ptr, n)
	runtime.KeepAlive(buf)
	return size
}

func (Wasm) GetSourceAddr(buf []byte) uint32 {
	ptr, n := ptrLen(buf)
	size := host_get_source_addr(ptr, n)
	runtime.KeepAlive(buf)
	return size
}

func (Wasm) GetStatusCode() uint32 {
	return host_get_status_code()
}

func (Wasm) SetStatusCode(code uint32) {
	host_set_status_code(code)
}

func (Wasm) GetHeaderNames(kind api.HeaderKind, buf []byte) uint64 {
	ptr, n := ptrLen(buf)
	countLen := host_get_header_names(uint32(kind), ptr, n)
	runtime.KeepAlive(buf)
	return countLen
}

func (Wasm) GetHeaderValues(kind api.HeaderKind, name []byte, buf []byte) uint64 {
	namePtr, nameLen := ptrLen(name)
	ptr, n := ptrLen(buf)
	countLen := host_get_header_values(uint32(kind), namePtr, nameLen, ptr, n)
	runtime.KeepAlive(name)
	runtime.KeepAlive(buf)
	return countLen
}

func (Wasm) SetHeaderValue(kind api.HeaderKind, name, value []byte) {
	namePtr, nameLen := ptrLen(name)
	valuePtr, valueLen := ptrLen(value)
	host_set_header_value(uint32(kind), namePtr, nameLen, valuePtr, valueLen)
	runtime.KeepAlive(name)
	runtime.KeepAlive(value)
}

func (Wasm) AddHeaderValue(kind api.HeaderKind, name, value []byte) {
	namePtr, nameLen := ptrLen(name)
	valuePtr, valueLen := ptrLen(value)
	host_add_header_value(uint32(kind), namePtr, nameLen, valuePtr, valueLen)
	runtime.KeepAlive(name)
	runtime.KeepAlive(value)
}

func (Wasm) RemoveHeader(kind api.HeaderKind, name []byte) {
	namePtr, nameLen := ptrLen(name)
	host_remove_header(uint32(kind), namePtr, nameLen)
	runtime.KeepAlive(name)
}

func (Wasm) ReadBody(kind api.BodyKind, buf []byte) uint64 {
	ptr, n := ptrLen(buf)
	eofLen := host_read_body(uint32(kind), ptr, n)
	runtime.KeepAlive(buf)
	return eofLen
}

func (Wasm) WriteBody(kind api.BodyKind, body []byte) {
	ptr, n := ptrLen(body)
	host_write_body(uint32(kind), ptr, n)
	runtime.KeepAlive(body)
}
