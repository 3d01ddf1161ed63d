package abi

// Split cuts src into NUL-terminated values. Each NUL closes the value that
// started after the previous one; bytes after the last NUL are not a value.
// At most count values are returned, fewer if src holds fewer terminators.
// The returned values are copies and never alias src.
func Split(src []byte, count uint32) [][]byte {
	if len(src) == 0 || count == 0 {
		return nil
	}

	out := make([][]byte, 0, min(int(count), len(src)))
	start := 0
	for i, b := range src {
		if b != 0 {
			continue
		}
		v := make([]byte, i-start)
		copy(v, src[start:i])
		out = append(out, v)
		start = i + 1
		if uint32(len(out)) == count {
			break
		}
	}
	return out
}
