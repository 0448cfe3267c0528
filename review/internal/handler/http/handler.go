// Package http defines the HTTP surface of the review service.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/pkg/validate"
	"github.com/jeisonBorba/reactive-app/review/internal/controller/review"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

const ndjsonContentType = "application/x-ndjson"

// Handler defines the review service HTTP handler.
type Handler struct {
	ctrl   *review.Controller
	logger *zap.Logger
}

// New creates a new review HTTP handler.
func New(ctrl *review.Controller, logger *zap.Logger) *Handler {
	return &Handler{ctrl: ctrl, logger: logger}
}

// Register mounts the handler's routes. Middleware passed in mutating is
// applied to the write endpoints only.
func (h *Handler) Register(e *echo.Echo, mutating ...echo.MiddlewareFunc) {
	g := e.Group("/v1/reviews")
	g.GET("", h.List)
	g.GET("/stream", h.Stream)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, mutating...)
	g.PUT("/:id", h.Update, mutating...)
	g.DELETE("/:id", h.Delete, mutating...)
}

func (h *Handler) Create(c echo.Context) error {
	var rev model.Review
	if err := c.Bind(&rev); err != nil {
		return c.String(http.StatusBadRequest, "malformed review body")
	}
	created, err := h.ctrl.Create(c.Request().Context(), &rev)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	rev, err := h.ctrl.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, rev)
}

func (h *Handler) List(c echo.Context) error {
	var movieInfoID *int64
	if raw := c.QueryParam("movieInfoId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.String(http.StatusBadRequest, "movieInfoId must be an integer")
		}
		movieInfoID = &id
	}
	reviews, err := h.ctrl.List(c.Request().Context(), movieInfoID)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *Handler) Update(c echo.Context) error {
	var patch model.Review
	if err := c.Bind(&patch); err != nil {
		return c.String(http.StatusBadRequest, "malformed review body")
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

// Stream serves the live feed of created reviews as newline-delimited JSON.
func (h *Handler) Stream(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, ndjsonContentType)
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	enc := json.NewEncoder(c.Response())
	for rev := range h.ctrl.Updates(c.Request().Context()) {
		if err := enc.Encode(rev); err != nil {
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
	if errors.Is(err, review.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	h.logger.Error("Request failed", zap.Error(err))
	return c.NoContent(http.StatusInternalServerError)
}
