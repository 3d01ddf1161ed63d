// Package abi implements the guest side of the http_handler marshaling
// protocol: the shared scratch buffer, the packed-result codec, the NUL
// multi-value splitter and the call adapter that negotiates oversized values
// with the host.
//
// Nothing in this package touches raw pointers. Host functions are reached
// through callbacks that receive a []byte to fill.
package abi

// PtrHighBits is the shift of the upper word in a packed result.
const PtrHighBits = 32

// Pack combines two 32-bit words into one 64-bit result. The upper word is a
// count or flag, the lower word a byte length.
func Pack(upper, lower uint32) uint64 {
	return (uint64(upper) << PtrHighBits) | uint64(lower)
}

// Unpack splits a packed result into its upper and lower words.
func Unpack(packed uint64) (upper, lower uint32) {
	upper = uint32(packed >> PtrHighBits)
	lower = uint32(packed)
	return upper, lower
}

// CountLen decodes the result of a multi-valued getter.
func CountLen(packed uint64) (count, length uint32) {
	return Unpack(packed)
}

// EOFLen decodes the result of read_body. The upper word is 1 on the final
// chunk.
func EOFLen(packed uint64) (eof bool, length uint32) {
	flag, length := Unpack(packed)
	return flag == 1, length
}
