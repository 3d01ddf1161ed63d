// Package api defines the vocabulary of the http-wasm "http_handler" ABI as
// seen from the guest: host module and function names, the request/response
// discriminators, the feature bit-set, log levels and the Host interface that
// every boundary call goes through.
//
// Integers only appear at the import edge. Everything above it uses the typed
// values declared here.
package api
