//go:build !wasip1

// Package imports binds the http_handler host functions with
// //go:wasmimport. It is the only package that converts Go byte slices into
// guest memory addresses.
package imports

import "github.com/reglet-dev/http-wasm-guest/api"

const unavailable = "http_handler imports not available in native build"

// Wasm stub for native builds. Tests use hostfuncs.Exchange instead.
type Wasm struct{}

var _ api.Host = Wasm{}

func (Wasm) Log(api.LogLevel, []byte) { panic(unavailable) }
func (Wasm) LogEnabled(api.LogLevel) uint32 { panic(unavailable) }
func (Wasm) GetConfig([]byte) uint32 { panic(unavailable) }
func (Wasm) EnableFeatures(api.Features) api.Features { panic(unavailable) }
func (Wasm) GetMethod([]byte) uint32 { panic(unavailable) }
func (Wasm) SetMethod([]byte) { panic(unavailable) }
func (Wasm) GetURI([]byte) uint32 { panic(unavailable) }
func (Wasm) SetURI([]byte) { panic(unavailable) }
func (Wasm) GetProtocolVersion([]byte) uint32 { panic(unavailable) }
func (Wasm) GetSourceAddr([]byte) uint32 { panic(unavailable) }
func (Wasm) GetStatusCode() uint32 { panic(unavailable) }
func (Wasm) SetStatusCode(uint32) { panic(unavailable) }
func (Wasm) GetHeaderNames(api.HeaderKind, []byte) uint64 { panic(unavailable) }
func (Wasm) GetHeaderValues(api.HeaderKind, []byte, []byte) uint64 { panic(unavailable) }
func (Wasm) SetHeaderValue(api.HeaderKind, []byte, []byte) { panic(unavailable) }
func (Wasm) AddHeaderValue(api.HeaderKind, []byte, []byte) { panic(unavailable) }
func (Wasm) RemoveHeader(api.HeaderKind, []byte) { panic(unavailable) }
func (Wasm) ReadBody(api.BodyKind, []byte) uint64 { panic(unavailable) }
func (Wasm) WriteBody(api.BodyKind, []byte) { panic(unavailable) }
