package host

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/hostfuncs"
)

// GuestSuite reuses one loaded guest across many requests.
type GuestSuite struct {
	suite.Suite
	ctx      context.Context
	executor *Executor
	guest    *Guest
}

func (s *GuestSuite) SetupSuite() {
	s.ctx = context.Background()
	e, err := NewExecutor(s.ctx)
	s.Require().NoError(err)
	s.executor = e

	g, err := e.LoadGuest(s.ctx, statusGuest(202, uint64(httpapi.NewCtxNext(40, true))), hostfuncs.NewExchange())
	s.Require().NoError(err)
	s.guest = g
}

func (s *GuestSuite) TearDownSuite() {
	s.NoError(s.guest.Close(s.ctx))
	s.NoError(s.executor.Close(s.ctx))
}

func passThrough(context.Context, httpapi.Host) error { return nil }

func (s *GuestSuite) TestSequentialRequests() {
	for range 3 {
		ex := hostfuncs.NewExchange()
		res, err := s.guest.Handle(s.ctx, ex, passThrough)
		s.Require().NoError(err)
		s.Equal(uint32(40), res.ReqCtx)
		s.Equal(uint32(40), ex.StatusCode())
	}
}

func (s *GuestSuite) TestConcurrentRequestsUseOwnHost() {
	var wg sync.WaitGroup
	exchanges := make([]*hostfuncs.Exchange, 8)
	for i := range exchanges {
		exchanges[i] = hostfuncs.NewExchange()
		wg.Add(1)
		go func(ex *hostfuncs.Exchange) {
			defer wg.Done()
			_, err := s.guest.Handle(s.ctx, ex, func(_ context.Context, h httpapi.Host) error {
				h.SetStatusCode(h.GetStatusCode() + 1)
				return nil
			})
			s.NoError(err)
		}(exchanges[i])
	}
	wg.Wait()

	for _, ex := range exchanges {
		s.Equal(uint32(40), ex.StatusCode())
		s.Equal(3, ex.Calls(httpapi.FuncSetStatusCode), "request, next, response")
	}
}

func (s *GuestSuite) TestClosedGuest() {
	g, err := s.executor.LoadGuest(s.ctx, statusGuest(200, 1), hostfuncs.NewExchange())
	s.Require().NoError(err)
	s.Require().NoError(g.Close(s.ctx))

	_, err = g.Handle(s.ctx, hostfuncs.NewExchange(), passThrough)
	s.Error(err)
}

func TestGuestSuite(t *testing.T) {
	suite.Run(t, new(GuestSuite))
}
