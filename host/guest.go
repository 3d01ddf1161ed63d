package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
	wz "github.com/reglet-dev/http-wasm-guest/infrastructure/wazero"
)

// NextFunc runs the handler behind the guest, typically filling in the
// response. A non-nil error is reported to handle_response as isError.
type NextFunc func(ctx context.Context, h httpapi.Host) error

// Result is the outcome of one request through a guest.
type Result struct {
	// Next is false when the guest answered the request itself.
	Next bool
	// ReqCtx is the value the guest passed from handle_request to
	// handle_response.
	ReqCtx uint32
	// NextErr is the error returned by the NextFunc, if it ran.
	NextErr error
}

// Guest is an instantiated guest module. A wasm instance is single
// threaded, so Handle calls are serialized.
type Guest struct {
	mu             sync.Mutex
	module         api.Module
	compiled       wazero.CompiledModule
	handleRequest  api.Function
	handleResponse api.Function
}

// Handle runs one request through the guest against h. When the guest lets
// the request through, next (which may be nil) runs and then
// handle_response is called.
func (g *Guest) Handle(ctx context.Context, h httpapi.Host, next NextFunc) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	callCtx := wz.WithHost(ctx, h)
	results, err := g.handleRequest.Call(callCtx)
	if err != nil {
		slog.ErrorContext(ctx, "host: handle_request failed", "error", err)
		return Result{}, fmt.Errorf("handle_request: %w", err)
	}
	if len(results) == 0 {
		return Result{}, fmt.Errorf("handle_request: no result")
	}

	ctxNext := httpapi.CtxNext(results[0])
	res := Result{Next: ctxNext.Next(), ReqCtx: ctxNext.ReqCtx()}
	if !res.Next {
		return res, nil
	}

	if next != nil {
		res.NextErr = next(ctx, h)
	}
	var isError uint64
	if res.NextErr != nil {
		isError = 1
	}
	if _, err := g.handleResponse.Call(callCtx, api.EncodeU32(res.ReqCtx), isError); err != nil {
		slog.ErrorContext(ctx, "host: handle_response failed", "error", err, "req_ctx", res.ReqCtx)
		return res, fmt.Errorf("handle_response: %w", err)
	}
	return res, nil
}

// Close releases the guest instance.
func (g *Guest) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.module.Close(ctx)
	if cerr := g.compiled.Close(ctx); err == nil {
		err = cerr
	}
	return err
}
