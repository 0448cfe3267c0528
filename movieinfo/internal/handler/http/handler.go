// Package http defines the HTTP surface of the movie info service.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/movieinfo/internal/controller/movieinfo"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
	"github.com/jeisonBorba/reactive-app/pkg/validate"
)

const ndjsonContentType = "application/x-ndjson"

// Handler defines the movie info service HTTP handler.
type Handler struct {
	ctrl   *movieinfo.Controller
	logger *zap.Logger
}

// New creates a new movie info HTTP handler.
func New(ctrl *movieinfo.Controller, logger *zap.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// Register mounts the handler's routes. Middleware passed in mutating is
// applied to the write endpoints only.
func (h *Handler) Register(e *echo.Echo, mutating ...echo.MiddlewareFunc) {
	g := e.Group("/v1/movieinfos")
	g.GET("", h.List)
	g.GET("/stream", h.Stream)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, mutating...)
	g.PUT("/:id", h.Update, mutating...)
	g.DELETE("/:id", h.Delete, mutating...)
}

func (h *Handler) Create(c echo.Context) error {
	var info model.MovieInfo
	if err := c.Bind(&info); err != nil {
		return c.String(http.StatusBadRequest, "malformed movie info body")
	}
	created, err := h.ctrl.Create(c.Request().Context(), &info)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	info, err := h.ctrl.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *Handler) List(c echo.Context) error {
	var year *int
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return c.String(http.StatusBadRequest, "year must be an integer")
		}
		year = &y
	}
	infos, err := h.ctrl.List(c.Request().Context(), year)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, infos)
}

func (h *Handler) Update(c echo.Context) error {
	var patch model.MovieInfo
	if err := c.Bind(&patch); err != nil {
		return c.String(http.StatusBadRequest, "malformed movie info body")
	}
	updated, err := h.ctrl.Update(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.ctrl.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Stream serves the live feed of created records as newline-delimited JSON.
// The response stays open until the client disconnects or the service shuts
// down.
func (h *Handler) Stream(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, ndjsonContentType)
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	enc := json.NewEncoder(c.Response())
	for info := range h.ctrl.Updates(c.Request().Context()) {
		if err := enc.Encode(info); err != nil {
			return nil
		}
		c.Response().Flush()
	}
	return nil
}

func (h *Handler) renderError(c echo.Context, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return c.String(http.StatusBadRequest, verr.Error())
	}
	if errors.Is(err, movieinfo.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	h.logger.Error("Request failed", zap.Error(err))
	return c.NoContent(http.StatusInternalServerError)
}
