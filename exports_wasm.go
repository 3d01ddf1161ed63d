//go:build wasip1

package guest

//go:wasmexport handle_request
func handleRequest() uint64 {
	return uint64(Default().HandleRequest(Registered()))
}

//go:wasmexport handle_response
func handleResponse(reqCtx uint32, isError uint32) {
	Default().HandleResponse(Registered(), reqCtx, isError != 0)
}
