package hostfuncs

import "github.com/reglet-dev/http-wasm-guest/api"

// Option configures an Exchange.
type Option func(*Exchange)

// WithMethod sets the request method.
func WithMethod(method string) Option {
	return func(e *Exchange) {
		e.method = method
	}
}

// WithURI sets the request URI.
func WithURI(uri string) Option {
	return func(e *Exchange) {
		e.uri = uri
	}
}

// WithProtocolVersion sets the request protocol, e.g. "HTTP/2.0".
func WithProtocolVersion(version string) Option {
	return func(e *Exchange) {
		e.version = version
	}
}

// WithSourceAddr sets the client address. Empty means unknown.
func WithSourceAddr(addr string) Option {
	return func(e *Exchange) {
		e.sourceAddr = addr
	}
}

// WithConfig sets the opaque guest configuration.
func WithConfig(config []byte) Option {
	return func(e *Exchange) {
		e.config = append([]byte(nil), config...)
	}
}

// WithStatusCode sets the initial response status.
func WithStatusCode(code uint32) Option {
	return func(e *Exchange) {
		e.statusCode = code
	}
}

// WithHeader adds values to a header of the given kind. Repeated calls for
// the same name accumulate values.
func WithHeader(kind api.HeaderKind, name string, values ...string) Option {
	return func(e *Exchange) {
		if !kind.Valid() {
			return
		}
		for _, v := range values {
			e.headers[kind].add(name, v)
		}
	}
}

// WithRequestHeader is WithHeader for api.HeaderKindRequest.
func WithRequestHeader(name string, values ...string) Option {
	return WithHeader(api.HeaderKindRequest, name, values...)
}

// WithResponseHeader is WithHeader for api.HeaderKindResponse.
func WithResponseHeader(name string, values ...string) Option {
	return WithHeader(api.HeaderKindResponse, name, values...)
}

// WithRequestBody sets the body served by read_body for requests.
func WithRequestBody(body []byte) Option {
	return func(e *Exchange) {
		e.bodies[api.BodyKindRequest].content = append([]byte(nil), body...)
	}
}

// WithResponseBody sets the body served by read_body for responses.
func WithResponseBody(body []byte) Option {
	return func(e *Exchange) {
		e.bodies[api.BodyKindResponse].content = append([]byte(nil), body...)
	}
}

// WithChunkSize bounds each read_body chunk. Values below one are ignored.
func WithChunkSize(n int) Option {
	return func(e *Exchange) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithSupportedFeatures sets the features enable_features can turn on.
func WithSupportedFeatures(f api.Features) Option {
	return func(e *Exchange) {
		e.supported = f
	}
}

// WithLogLevel sets the lowest level log_enabled reports as enabled.
func WithLogLevel(level api.LogLevel) Option {
	return func(e *Exchange) {
		e.minLevel = level
	}
}

// WithMaxBodySize bounds what write_body retains per body kind.
func WithMaxBodySize(n int) Option {
	return func(e *Exchange) {
		if n > 0 {
			e.maxBodySize = n
		}
	}
}

// WithObserver registers a function called for every host call, while the
// exchange lock is held. It must not call back into the Exchange.
func WithObserver(fn func(Call)) Option {
	return func(e *Exchange) {
		e.observer = fn
	}
}
