package api

import "strings"

// Features is a bit-set of optional host capabilities. Combine flags with |.
type Features uint32

const (
	// FeatureBufferRequest buffers the request body so it can be read by the
	// guest and still be forwarded to the next handler.
	FeatureBufferRequest Features = 1 << 0

	// FeatureBufferResponse buffers the response body so the guest can read
	// and rewrite it in handle_response.
	FeatureBufferResponse Features = 1 << 1

	// FeatureTrailers enables access to request and response trailers.
	FeatureTrailers Features = 1 << 2
)

var featureNames = []struct {
	f    Features
	name string
}{
	{FeatureBufferRequest, "buffer_request"},
	{FeatureBufferResponse, "buffer_response"},
	{FeatureTrailers, "trailers"},
}

// Has reports whether every flag in want is set.
func (f Features) Has(want Features) bool {
	return f&want == want
}

// With returns f with the given flags added.
func (f Features) With(add Features) Features {
	return f | add
}

// String renders the set as a "|"-joined list of flag names.
func (f Features) String() string {
	if f == 0 {
		return ""
	}
	var names []string
	for _, fn := range featureNames {
		if f.Has(fn.f) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}
