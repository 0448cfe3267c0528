// Package http defines the HTTP gateway for the movie info service.
package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeisonBorba/reactive-app/internal/httputil"
	"github.com/jeisonBorba/reactive-app/movie/internal/gateway"
	"github.com/jeisonBorba/reactive-app/movieinfo/pkg/model"
	"github.com/jeisonBorba/reactive-app/pkg/discovery"
)

const (
	serviceName  = "movieinfo"
	serviceLabel = "MoviesInfoService"

	defaultRetries = 3
	defaultTimeout = 10 * time.Second
)

// Gateway defines an HTTP gateway for the movie info service. It is
// stateless between calls; instances are resolved through the registry per
// call.
type Gateway struct {
	registry discovery.Registry
	client   *http.Client
	retries  int
	timeout  time.Duration
}

// New creates a new HTTP gateway for the movie info service with the default
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

// WithTimeout overrides the per-call timeout for unary fetches.
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	g.timeout = d
	return g
}

// Get fetches a single movie info record. A remote 404 maps to
// gateway.ErrNotFound; 5xx responses are retried up to the retry budget and
// then surface as *gateway.UpstreamError carrying the last response body.
func (g *Gateway) Get(ctx context.Context, id string) (*model.MovieInfo, error) {
	base, err := httputil.ServiceBaseURL(ctx, serviceName, g.registry)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/movieinfos/%s", base, id)

	var upstreamBody string
	for attempt := 0; attempt <= g.retries; attempt++ {
		status, body, err := g.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		switch {
		case status == http.StatusOK:
			var info model.MovieInfo
			if err := json.Unmarshal(body, &info); err != nil {
				return nil, err
			}
			return &info, nil
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

// GetStream opens the movie info service's live feed and returns a channel
// of records, one per NDJSON line. The channel is closed when the upstream
// closes the connection or ctx is cancelled.
func (g *Gateway) GetStream(ctx context.Context) (<-chan model.MovieInfo, error) {
	base, err := httputil.ServiceBaseURL(ctx, serviceName, g.registry)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/v1/movieinfos/stream", nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &gateway.UpstreamError{Service: serviceLabel, Body: string(body)}
		}
		return nil, &gateway.ClientError{Status: resp.StatusCode, Body: string(body)}
	}

	ch := make(chan model.MovieInfo)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			var info model.MovieInfo
			if err := json.Unmarshal(scanner.Bytes(), &info); err != nil {
				continue
			}
			select {
			case ch <- info:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
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
