// Package wazero serves the http_handler host functions to guests running in
// the wazero runtime.
//
// This package bridges the pure Go api.Host implementations with wazero. It
// handles:
//
//   - Resolving the api.Host of each call from its context
//   - Turning guest (ptr, len) and (ptr, limit) pairs into views of guest memory
//   - Trapping the guest on out-of-range regions or oversized values
//
// # Basic Usage
//
//	rt := wazero.NewRuntime(ctx)
//	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
//
//	if _, err := wz.Instantiate(ctx, rt); err != nil {
//	    return err
//	}
//	mod, err := rt.Instantiate(ctx, guestWasm)
//	if err != nil {
//	    return err
//	}
//
//	ex := hostfuncs.NewExchange(hostfuncs.WithURI("/hello"))
//	results, err := mod.ExportedFunction("handle_request").Call(wz.WithHost(ctx, ex))
package wazero
