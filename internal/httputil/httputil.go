// Package httputil provides helpers for calling services over HTTP using a
// service registry.
package httputil

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jeisonBorba/reactive-app/pkg/discovery"
)

// ServiceBaseURL resolves an HTTP base URL for a random active instance of
// the given service.
func ServiceBaseURL(ctx context.Context, serviceName string, registry discovery.Registry) (string, error) {
	addrs, err := registry.ServiceAddresses(ctx, serviceName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s", addrs[rand.Intn(len(addrs))]), nil
}
