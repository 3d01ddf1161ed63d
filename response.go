package guest

import "github.com/reglet-dev/http-wasm-guest/api"

// Response is the outgoing HTTP response.
type Response struct {
	rt *Runtime
}

// StatusCode returns the response status.
func (r Response) StatusCode() uint32 {
	return r.rt.host.GetStatusCode()
}

// SetStatusCode overwrites the response status.
func (r Response) SetStatusCode(code uint32) {
	r.rt.host.SetStatusCode(code)
}

// Header returns the response headers.
func (r Response) Header() Header {
	return Header{rt: r.rt, kind: api.HeaderKindResponse}
}

// Trailers returns the response trailers.
func (r Response) Trailers() Header {
	return Header{rt: r.rt, kind: api.HeaderKindResponseTrailers}
}

// Body returns the response body.
func (r Response) Body() Body {
	return Body{rt: r.rt, kind: api.BodyKindResponse}
}
