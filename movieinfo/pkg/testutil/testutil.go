package testutil

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/controller/movieinfo"
	httphandler "github.com/jeisonBorba/reactive-app/movieinfo/internal/handler/http"
	"github.com/jeisonBorba/reactive-app/movieinfo/internal/repository/memory"
)

// NewTestServer creates a movie info HTTP server backed by an in-memory
// repository, to be used in tests. The returned controller must be closed
// when the test is done.
func NewTestServer() (*echo.Echo, *movieinfo.Controller) {
	ctrl := movieinfo.New(memory.New(), nil, zap.NewNop())
	e := echo.New()
	httphandler.New(ctrl, zap.NewNop()).Register(e)
	return e, ctrl
}
