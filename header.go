package guest

import "github.com/reglet-dev/http-wasm-guest/api"

// Header is one header set of the exchange: request or response headers, or
// their trailers. Name matching is up to the host and is case-insensitive for
// HTTP hosts.
type Header struct {
	rt   *Runtime
	kind api.HeaderKind
}

// Kind returns which header set h refers to.
func (h Header) Kind() api.HeaderKind {
	return h.kind
}

// Names returns the header names in the order the host reports them.
func (h Header) Names() []Bytes {
	return h.rt.multi(api.FuncGetHeaderNames, func(buf []byte) uint64 {
		return h.rt.host.GetHeaderNames(h.kind, buf)
	})
}

// Values returns every value of the named header, or nil if it is absent.
func (h Header) Values(name string) []Bytes {
	key := []byte(name)
	return h.rt.multi(api.FuncGetHeaderValues, func(buf []byte) uint64 {
		return h.rt.host.GetHeaderValues(h.kind, key, buf)
	})
}

// Get returns the first value of the named header.
func (h Header) Get(name string) (Bytes, bool) {
	values := h.Values(name)
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// Set replaces all values of the named header with value.
func (h Header) Set(name, value string) {
	h.rt.host.SetHeaderValue(h.kind, []byte(name), []byte(value))
}

// Add appends value to the named header.
func (h Header) Add(name, value string) {
	h.rt.host.AddHeaderValue(h.kind, []byte(name), []byte(value))
}

// Remove deletes the named header.
func (h Header) Remove(name string) {
	h.rt.host.RemoveHeader(h.kind, []byte(name))
}

// All returns every header with its values, keyed by the name the host
// reported.
func (h Header) All() map[string][]string {
	names := h.Names()
	out := make(map[string][]string, len(names))
	for _, name := range names {
		values := h.Values(string(name))
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = string(v)
		}
		out[string(name)] = strs
	}
	return out
}
