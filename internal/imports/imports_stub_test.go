//go:build !wasip1

package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWasmStubPanics(t *testing.T) {
	var h Wasm
	assert.PanicsWithValue(t, unavailable, func() { h.GetMethod(make([]byte, 8)) })
	assert.PanicsWithValue(t, unavailable, func() { h.GetStatusCode() })
}
