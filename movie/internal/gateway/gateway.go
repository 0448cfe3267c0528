// Package gateway defines the error kinds shared by the movie service's
// remote gateways.
package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the remote service reports a 404 for the
// requested data.
var ErrNotFound = errors.New("not found")

// UpstreamError is returned when a remote service keeps failing with 5xx
// responses after the retry budget is exhausted. Its message carries the
// upstream response body prefixed with the service label, and is served
// verbatim as the response body of the movie service's own 5xx.
type UpstreamError struct {
	Service string
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Server Exception in %s %s", e.Service, e.Body)
}

// ClientError is returned on any remote 4xx other than 404.
type ClientError struct {
	Status int
	Body   string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error from remote service: status %d, body %s", e.Status, e.Body)
}
