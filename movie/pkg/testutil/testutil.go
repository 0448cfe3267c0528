package testutil

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movie/internal/controller/movie"
	movieinfogateway "github.com/jeisonBorba/reactive-app/movie/internal/gateway/movieinfo/http"
	reviewgateway "github.com/jeisonBorba/reactive-app/movie/internal/gateway/review/http"
	httphandler "github.com/jeisonBorba/reactive-app/movie/internal/handler/http"
	"github.com/jeisonBorba/reactive-app/pkg/discovery"
)

// NewTestServer creates a movie HTTP server wired to upstream services
// resolved through the given registry, to be used in tests.
func NewTestServer(registry discovery.Registry) *echo.Echo {
	movieInfoGateway := movieinfogateway.New(registry)
	reviewGateway := reviewgateway.New(registry)
	ctrl := movie.New(movieInfoGateway, reviewGateway)
	e := echo.New()
	httphandler.New(ctrl, zap.NewNop()).Register(e)
	return e
}
