// Package hostfuncs provides a pure Go implementation of the http_handler
// host: an Exchange holding one request and response that guests read and
// mutate through the api.Host interface.
//
// It has no WASM runtime dependency. The wazero adapter serves an Exchange to
// compiled guests, and guest packages use it directly in native tests.
package hostfuncs
