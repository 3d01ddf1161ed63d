package api

// HostModule is the WebAssembly module name every host function is imported
// from.
const HostModule = "http_handler"

// Host function names. These are byte-exact and must match the host.
const (
	FuncLog                = "log"
	FuncLogEnabled         = "log_enabled"
	FuncGetConfig          = "get_config"
	FuncEnableFeatures     = "enable_features"
	FuncGetMethod          = "get_method"
	FuncSetMethod          = "set_method"
	FuncGetURI             = "get_uri"
	FuncSetURI             = "set_uri"
	FuncGetProtocolVersion = "get_protocol_version"
	FuncGetSourceAddr      = "get_source_addr"
	FuncGetStatusCode      = "get_status_code"
	FuncSetStatusCode      = "set_status_code"
	FuncGetHeaderNames     = "get_header_names"
	FuncGetHeaderValues    = "get_header_values"
	FuncSetHeaderValue     = "set_header_value"
	FuncAddHeaderValue     = "add_header_value"
	FuncRemoveHeader       = "remove_header"
	FuncReadBody           = "read_body"
	FuncWriteBody          = "write_body"
)

// Guest export names called by the host.
const (
	FuncHandleRequest  = "handle_request"
	FuncHandleResponse = "handle_response"
)

// HostFunctions lists every import a guest may use, in declaration order.
var HostFunctions = []string{
	FuncLog,
	FuncLogEnabled,
	FuncGetConfig,
	FuncEnableFeatures,
	FuncGetMethod,
	FuncSetMethod,
	FuncGetURI,
	FuncSetURI,
	FuncGetProtocolVersion,
	FuncGetSourceAddr,
	FuncGetStatusCode,
	FuncSetStatusCode,
	FuncGetHeaderNames,
	FuncGetHeaderValues,
	FuncSetHeaderValue,
	FuncAddHeaderValue,
	FuncRemoveHeader,
	FuncReadBody,
	FuncWriteBody,
}
