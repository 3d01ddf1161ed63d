package guest

import (
	"fmt"
	"sync/atomic"

	"github.com/reglet-dev/http-wasm-guest/api"
)

// Guest handles one request and, when it lets the request through, the
// response that comes back.
type Guest interface {
	// HandleRequest runs before the next handler. Returning next=false
	// short-circuits: the host sends resp as is. reqCtx is passed back to
	// HandleResponse.
	HandleRequest(req Request, resp Response) (next bool, reqCtx uint32)

	// HandleResponse runs after the next handler when HandleRequest returned
	// next=true. isError is set when the next handler failed.
	HandleResponse(reqCtx uint32, req Request, resp Response, isError bool)
}

// Funcs adapts plain functions to Guest. A nil OnRequest lets every request
// through; a nil OnResponse does nothing.
type Funcs struct {
	OnRequest  func(req Request, resp Response) (next bool, reqCtx uint32)
	OnResponse func(reqCtx uint32, req Request, resp Response, isError bool)
}

var _ Guest = Funcs{}

func (f Funcs) HandleRequest(req Request, resp Response) (bool, uint32) {
	if f.OnRequest == nil {
		return true, 0
	}
	return f.OnRequest(req, resp)
}

func (f Funcs) HandleResponse(reqCtx uint32, req Request, resp Response, isError bool) {
	if f.OnResponse != nil {
		f.OnResponse(reqCtx, req, resp, isError)
	}
}

var registered atomic.Pointer[Guest]

// Register installs the guest served by the handle_request and
// handle_response exports. Call it from init. A later call replaces the
// earlier guest.
func Register(g Guest) {
	registered.Store(&g)
}

// Registered returns the installed guest, or nil.
func Registered() Guest {
	if g := registered.Load(); g != nil {
		return *g
	}
	return nil
}

// HandleRequest runs g against the runtime's request and encodes the result
// for the handle_request export. A nil g lets the request through.
//
// A panic in g is logged to the host at error level and re-raised, which
// traps the instance under wasm.
func (r *Runtime) HandleRequest(g Guest) api.CtxNext {
	if g == nil {
		return api.NewCtxNext(0, true)
	}
	defer r.logPanic(api.FuncHandleRequest)
	next, reqCtx := g.HandleRequest(r.Request(), r.Response())
	return api.NewCtxNext(reqCtx, next)
}

// HandleResponse runs g's response phase.
func (r *Runtime) HandleResponse(g Guest, reqCtx uint32, isError bool) {
	if g == nil {
		return
	}
	defer r.logPanic(api.FuncHandleResponse)
	g.HandleResponse(reqCtx, r.Request(), r.Response(), isError)
}

func (r *Runtime) logPanic(op string) {
	if p := recover(); p != nil {
		if r.LogEnabled(api.LogLevelError) {
			r.Log(api.LogLevelError, fmt.Sprintf("%s: panic: %v", op, p))
		}
		panic(p)
	}
}
