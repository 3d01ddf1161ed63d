// Package guest is the Go SDK for writing http-wasm handler middleware.
//
// A guest registers a Guest in init and is compiled with
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared
//
// The host then calls the exported handle_request and handle_response
// functions once per request. Everything the guest reads from the host goes
// through a shared 2KB scratch buffer; values that do not fit are fetched
// again with an exact-size buffer, so callers always see complete values.
//
//	func init() {
//		guest.Register(guest.Funcs{
//			OnRequest: func(req guest.Request, resp guest.Response) (bool, uint32) {
//				req.Header().Set("X-Plugin", "on")
//				return true, 0
//			},
//		})
//	}
package guest
