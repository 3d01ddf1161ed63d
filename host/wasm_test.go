package host

import "bytes"

// Hand-assembled guests for tests. Each imports http_handler.set_status_code
// so calls through the host module are observable without a compiled Go
// guest.

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		out = append(out, b)
		if done {
			return out
		}
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint64(len(s))), s...)
}

func section(id byte, parts ...[]byte) []byte {
	body := bytes.Join(parts, nil)
	return bytes.Join([][]byte{{id}, uleb(uint64(len(body))), body}, nil)
}

func funcBody(code ...[]byte) []byte {
	body := append([]byte{0x00}, bytes.Join(code, nil)...) // no locals
	return append(uleb(uint64(len(body))), body...)
}

// initStatus is the status a statusGuest sets from _initialize.
const initStatus = 100

// statusGuest builds a reactor guest whose _initialize sets the status to
// initStatus, whose handle_request sets the status to status and returns
// ctxNext, and whose handle_response sets the status to reqCtx+isError.
func statusGuest(status int32, ctxNext uint64) []byte {
	const (
		opLocalGet = 0x20
		opCall     = 0x10
		opI32Const = 0x41
		opI64Const = 0x42
		opI32Add   = 0x6a
		opEnd      = 0x0b
	)
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	types := section(0x01,
		uleb(4),
		[]byte{0x60, 0x00, 0x01, 0x7e},       // () -> i64
		[]byte{0x60, 0x02, 0x7f, 0x7f, 0x00}, // (i32, i32) -> ()
		[]byte{0x60, 0x01, 0x7f, 0x00},       // (i32) -> ()
		[]byte{0x60, 0x00, 0x00},             // () -> ()
	)
	imports := section(0x02,
		uleb(1), wasmName("http_handler"), wasmName("set_status_code"), []byte{0x00}, uleb(2),
	)
	funcs := section(0x03, uleb(3), uleb(0), uleb(1), uleb(3))
	exports := section(0x07,
		uleb(3),
		wasmName("handle_request"), []byte{0x00}, uleb(1),
		wasmName("handle_response"), []byte{0x00}, uleb(2),
		wasmName("_initialize"), []byte{0x00}, uleb(3),
	)
	code := section(0x0a,
		uleb(3),
		funcBody(
			[]byte{opI32Const}, sleb(int64(status)),
			[]byte{opCall, 0x00},
			[]byte{opI64Const}, sleb(int64(ctxNext)), //nolint:gosec // G115: i64.const takes the bit pattern
			[]byte{opEnd},
		),
		funcBody(
			[]byte{opLocalGet, 0x00, opLocalGet, 0x01, opI32Add},
			[]byte{opCall, 0x00},
			[]byte{opEnd},
		),
		funcBody(
			[]byte{opI32Const}, sleb(initStatus),
			[]byte{opCall, 0x00},
			[]byte{opEnd},
		),
	)
	return bytes.Join([][]byte{header, types, imports, funcs, exports, code}, nil)
}

// emptyModule is the smallest valid module: no imports, no exports.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
