// Package host runs compiled http-wasm guests.
//
// It abstracts the underlying WASM engine (wazero), instantiates WASI and the
// http_handler host module, and drives the handle_request and
// handle_response exports of a guest against an api.Host, typically a
// hostfuncs.Exchange.
package host
