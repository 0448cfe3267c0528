package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeisonBorba/reactive-app/movie/internal/gateway"
	"github.com/jeisonBorba/reactive-app/pkg/discovery/memory"
)

func newGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	registry := memory.NewRegistry()
	addr := strings.TrimPrefix(srv.URL, "http://")
	require.NoError(t, registry.Register(context.Background(), "review-1", serviceName, addr))
	return New(registry)
}

func TestGetByMovieInfoID(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reviews", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("movieInfoId"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"reviewId":"r1","movieInfoId":1,"comment":"Awesome Movie","rating":9.0},
			{"reviewId":"r2","movieInfoId":1,"comment":"Excellent Movie","rating":8.0}
		]`)
	}))

	reviews, err := g.GetByMovieInfoID(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r1", reviews[0].ID)
	assert.Equal(t, 9.0, reviews[0].Rating)
}

func TestGetByMovieInfoIDNotFound(t *testing.T) {
	var calls int32
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := g.GetByMovieInfoID(context.Background(), "1")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetByMovieInfoIDRetriesExhaustedOn5xx(t *testing.T) {
	var calls int32
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "Review Service Not Available")
	}))

	_, err := g.GetByMovieInfoID(context.Background(), "1")
	var uerr *gateway.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Server Exception in ReviewsService Review Service Not Available", err.Error())
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}
