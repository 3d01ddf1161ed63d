package api

import "fmt"

// HeaderKind selects which header map a header operation applies to.
type HeaderKind uint32

const (
	// HeaderKindRequest selects the request headers.
	HeaderKindRequest HeaderKind = 0

	// HeaderKindResponse selects the response headers.
	HeaderKindResponse HeaderKind = 1

	// HeaderKindRequestTrailers selects the request trailers. The host only
	// honours it after FeatureTrailers was enabled.
	HeaderKindRequestTrailers HeaderKind = 2

	// HeaderKindResponseTrailers selects the response trailers. The host only
	// honours it after FeatureTrailers was enabled.
	HeaderKindResponseTrailers HeaderKind = 3
)

// String implements fmt.Stringer.
func (k HeaderKind) String() string {
	switch k {
	case HeaderKindRequest:
		return "request"
	case HeaderKindResponse:
		return "response"
	case HeaderKindRequestTrailers:
		return "request_trailers"
	case HeaderKindResponseTrailers:
		return "response_trailers"
	default:
		return fmt.Sprintf("header_kind(%d)", uint32(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k HeaderKind) Valid() bool {
	return k <= HeaderKindResponseTrailers
}

// BodyKind selects which body a read or write applies to.
type BodyKind uint32

const (
	// BodyKindRequest selects the request body.
	BodyKindRequest BodyKind = 0

	// BodyKindResponse selects the response body.
	BodyKindResponse BodyKind = 1
)

// String implements fmt.Stringer.
func (k BodyKind) String() string {
	switch k {
	case BodyKindRequest:
		return "request"
	case BodyKindResponse:
		return "response"
	default:
		return fmt.Sprintf("body_kind(%d)", uint32(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k BodyKind) Valid() bool {
	return k <= BodyKindResponse
}
