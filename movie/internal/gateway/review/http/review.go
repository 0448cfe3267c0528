// Package http defines the HTTP gateway for the review service.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jeisonBorba/reactive-app/internal/httputil"
	"github.com/jeisonBorba/reactive-app/movie/internal/gateway"
	"github.com/jeisonBorba/reactive-app/pkg/discovery"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

const (
	serviceName  = "review"
	serviceLabel = "ReviewsService"

	defaultRetries = 3
	defaultTimeout = 10 * time.Second
)

// Gateway defines an HTTP gateway for the review service.
type Gateway struct {
	registry discovery.Registry
	client   *http.Client
	retries  int
	timeout  time.Duration
}

// New creates a new HTTP gateway for the review service with the default
// retry budget and per-call timeout.
func New(registry discovery.Registry) *Gateway {
	return &Gateway{
		registry: registry,
		client:   &http.Client{},
		retries:  defaultRetries,
		timeout:  defaultTimeout,
	}
}

// WithRetries overrides the number of additional attempts made on 5xx
// responses.
func (g *Gateway) WithRetries(n int) *Gateway {
	g.retries = n
	return g
}

// WithTimeout overrides the per-call timeout.
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	g.timeout = d
	return g
}

// GetByMovieInfoID fetches the reviews for a movie info id. A remote 404
// maps to gateway.ErrNotFound; 5xx responses are retried up to the retry
// budget and then surface as *gateway.UpstreamError.
func (g *Gateway) GetByMovieInfoID(ctx context.Context, movieInfoID string) ([]model.Review, error) {
	base, err := httputil.ServiceBaseURL(ctx, serviceName, g.registry)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/v1/reviews?movieInfoId=%s", base, url.QueryEscape(movieInfoID))

	var upstreamBody string
	for attempt := 0; attempt <= g.retries; attempt++ {
		status, body, err := g.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		switch {
		case status == http.StatusOK:
			var reviews []model.Review
			if err := json.Unmarshal(body, &reviews); err != nil {
				return nil, err
			}
			return reviews, nil
		case status == http.StatusNotFound:
			return nil, gateway.ErrNotFound
		case status >= http.StatusInternalServerError:
			upstreamBody = string(body)
		default:
			return nil, &gateway.ClientError{Status: status, Body: string(body)}
		}
	}
	return nil, &gateway.UpstreamError{Service: serviceLabel, Body: upstreamBody}
}

func (g *Gateway) fetch(ctx context.Context, url string) (int, []byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
