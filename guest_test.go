package guest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/hostfuncs"
)

func TestHandleRequest_NilGuestContinues(t *testing.T) {
	rt, ex := newRuntime(t)

	got := rt.HandleRequest(nil)

	assert.True(t, got.Next())
	assert.Zero(t, got.ReqCtx())
	assert.Zero(t, ex.Calls(api.FuncGetMethod))
	rt.HandleResponse(nil, 0, false)
}

func TestHandleRequest_Funcs(t *testing.T) {
	rt, ex := newRuntime(t, hostfuncs.WithURI("/admin"))

	g := Funcs{
		OnRequest: func(req Request, resp Response) (bool, uint32) {
			if req.URI().String() == "/admin" {
				resp.SetStatusCode(403)
				_, _ = resp.Body().WriteString("forbidden")
				return false, 0
			}
			return true, 7
		},
	}

	got := rt.HandleRequest(g)

	assert.False(t, got.Next())
	assert.Equal(t, uint32(403), ex.StatusCode())
	assert.Equal(t, "forbidden", string(ex.Body(api.BodyKindResponse)))
}

func TestHandleRequest_ReqCtxRoundTrip(t *testing.T) {
	rt, ex := newRuntime(t)

	var gotCtx uint32
	var gotErr bool
	g := Funcs{
		OnRequest: func(req Request, resp Response) (bool, uint32) {
			return true, 16
		},
		OnResponse: func(reqCtx uint32, req Request, resp Response, isError bool) {
			gotCtx, gotErr = reqCtx, isError
			resp.Header().Set("X-Handled", "yes")
		},
	}

	next := rt.HandleRequest(g)
	require.Equal(t, api.CtxNext(16<<32|1), next)

	rt.HandleResponse(g, next.ReqCtx(), true)

	assert.Equal(t, uint32(16), gotCtx)
	assert.True(t, gotErr)
	assert.Equal(t, []string{"yes"}, ex.HeaderValues(api.HeaderKindResponse, "x-handled"))
}

func TestFuncs_NilHandlers(t *testing.T) {
	rt, _ := newRuntime(t)
	var f Funcs

	next, reqCtx := f.HandleRequest(rt.Request(), rt.Response())
	assert.True(t, next)
	assert.Zero(t, reqCtx)
	assert.NotPanics(t, func() { f.HandleResponse(0, rt.Request(), rt.Response(), false) })
}

func TestHandleRequest_PanicIsLoggedAndRaised(t *testing.T) {
	rt, ex := newRuntime(t)
	g := Funcs{
		OnRequest: func(Request, Response) (bool, uint32) {
			panic("boom")
		},
	}

	assert.PanicsWithValue(t, "boom", func() { rt.HandleRequest(g) })

	logs := ex.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, api.LogLevelError, logs[0].Level)
	assert.Equal(t, "handle_request: panic: boom", logs[0].Message)
}

func TestRegister(t *testing.T) {
	t.Cleanup(func() { registered.Store(nil) })

	assert.Nil(t, Registered())

	g := Funcs{}
	Register(g)
	assert.Equal(t, g, Registered())
}
