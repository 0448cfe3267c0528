// Package http defines the HTTP surface of the movie service.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movie/internal/controller/movie"
	"github.com/jeisonBorba/reactive-app/movie/internal/gateway"
)

const ndjsonContentType = "application/x-ndjson"

// Handler defines the movie service HTTP handler.
type Handler struct {
	ctrl   *movie.Controller
	logger *zap.Logger
}

// New creates a new movie HTTP handler.
func New(ctrl *movie.Controller, logger *zap.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// Register mounts the handler's routes.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/v1/movies")
	g.GET("/stream", h.Stream)
	g.GET("/:id", h.Get)
}

func (h *Handler) Get(c echo.Context) error {
	id := c.Param("id")
	details, err := h.ctrl.Get(c.Request().Context(), id)
	if err != nil {
		return h.renderError(c, id, err)
	}
	return c.JSON(http.StatusOK, details)
}

// Stream proxies the movie info service's live feed as newline-delimited
// JSON. Disconnecting cancels the upstream call.
func (h *Handler) Stream(c echo.Context) error {
	ch, err := h.ctrl.GetStream(c.Request().Context())
	if err != nil {
		return h.renderError(c, "", err)
	}

	c.Response().Header().Set(echo.HeaderContentType, ndjsonContentType)
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	enc := json.NewEncoder(c.Response())
	for info := range ch {
		if err := enc.Encode(info); err != nil {
			return nil
		}
		c.Response().Flush()
	}
	return nil
}

func (h *Handler) renderError(c echo.Context, id string, err error) error {
	if errors.Is(err, movie.ErrNotFound) {
		return c.String(http.StatusNotFound, fmt.Sprintf("There is no MovieInfo available for the passed Id: %s", id))
	}
	var uerr *gateway.UpstreamError
	if errors.As(err, &uerr) {
		return c.String(http.StatusInternalServerError, uerr.Error())
	}
	var cerr *gateway.ClientError
	if errors.As(err, &cerr) {
		return c.String(cerr.Status, cerr.Body)
	}
	h.logger.Error("Request failed", zap.Error(err))
	return c.NoContent(http.StatusInternalServerError)
}
