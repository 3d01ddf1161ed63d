package guest

import "github.com/reglet-dev/http-wasm-guest/api"

// Request is the incoming HTTP request as seen by the host.
type Request struct {
	rt *Runtime
}

// Method returns the request method, such as "GET".
func (r Request) Method() Bytes {
	return r.rt.single(api.FuncGetMethod, r.rt.host.GetMethod)
}

// SetMethod overwrites the request method.
func (r Request) SetMethod(method string) {
	r.rt.host.SetMethod([]byte(method))
}

// URI returns the request URI: path plus query, as sent on the wire.
func (r Request) URI() Bytes {
	return r.rt.single(api.FuncGetURI, r.rt.host.GetURI)
}

// SetURI overwrites the request URI.
func (r Request) SetURI(uri string) {
	r.rt.host.SetURI([]byte(uri))
}

// Version returns the protocol version, such as "HTTP/1.1".
func (r Request) Version() Bytes {
	return r.rt.single(api.FuncGetProtocolVersion, r.rt.host.GetProtocolVersion)
}

// SourceAddr returns the client address. ok is false when the host does not
// know it.
func (r Request) SourceAddr() (addr Bytes, ok bool) {
	addr = r.rt.single(api.FuncGetSourceAddr, r.rt.host.GetSourceAddr)
	return addr, len(addr) > 0
}

// Header returns the request headers.
func (r Request) Header() Header {
	return Header{rt: r.rt, kind: api.HeaderKindRequest}
}

// Trailers returns the request trailers. The host only exposes them after
// api.FeatureTrailers is enabled.
func (r Request) Trailers() Header {
	return Header{rt: r.rt, kind: api.HeaderKindRequestTrailers}
}

// Body returns the request body.
func (r Request) Body() Body {
	return Body{rt: r.rt, kind: api.BodyKindRequest}
}
