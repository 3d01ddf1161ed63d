package api

// CtxNext is the result of handle_request. The upper 32 bits carry an opaque
// request context the host passes back to handle_response; the lowest bit is
// one when the host should continue to the next handler.
//
//   - 0<<32|0: stop, the guest produced the response.
//   - 0<<32|1: continue without request context.
//   - 16<<32|1: continue, and call handle_response with 16.
type CtxNext uint64

// NewCtxNext packs a request context and the next flag. The context is
// dropped when next is false, since handle_response will not be called.
func NewCtxNext(reqCtx uint32, next bool) CtxNext {
	if !next {
		return 0
	}
	return CtxNext(reqCtx)<<32 | 1
}

// Next reports whether the host should call the next handler.
func (c CtxNext) Next() bool {
	return uint32(c)&1 == 1
}

// ReqCtx returns the request context propagated to handle_response.
func (c CtxNext) ReqCtx() uint32 {
	return uint32(c >> 32)
}
