package guest

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Bytes is an owned byte string returned by the host. It is never a view of
// the scratch buffer and stays valid after later host calls.
type Bytes []byte

// String returns the bytes as a Go string without checking the encoding.
func (b Bytes) String() string {
	return string(b)
}

// Text returns the bytes as a string, or an *EncodingError if they are not
// valid UTF-8.
func (b Bytes) Text() (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	return "", &EncodingError{Offset: invalidOffset(b)}
}

// Equal reports whether b and other hold the same bytes.
func (b Bytes) Equal(other []byte) bool {
	return bytes.Equal(b, other)
}

// Clone returns a copy of b. A nil b stays nil.
func (b Bytes) Clone() Bytes {
	return bytes.Clone(b)
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// EncodingError reports host bytes that are not valid UTF-8 where text was
// expected.
type EncodingError struct {
	// Offset is the index of the first invalid byte.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("guest: invalid UTF-8 at byte %d", e.Offset)
}
