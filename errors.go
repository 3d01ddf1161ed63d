package guest

import "github.com/reglet-dev/http-wasm-guest/internal/abi"

// ProtocolError is the panic value raised when the host breaks the size
// negotiation, for example by reporting a larger value on the retry than on
// the first call. Under wasm it traps the instance.
type ProtocolError = abi.ProtocolError
