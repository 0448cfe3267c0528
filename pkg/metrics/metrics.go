// Package metrics builds the tally scope each service reports through.
package metrics

import (
	"io"
	"net/http"
	"time"

	"github.com/uber-go/tally/v4"
	promreporter "github.com/uber-go/tally/v4/prometheus"
)

// NewScope creates a Prometheus-reported root scope for a service, along
// with the HTTP handler serving the scrape endpoint. The returned closer
// stops the reporting loop.
func NewScope(serviceName string) (tally.Scope, http.Handler, io.Closer) {
	reporter := promreporter.NewReporter(promreporter.Options{})
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         serviceName,
		CachedReporter: reporter,
		Separator:      promreporter.DefaultSeparator,
	}, time.Second)
	return scope, reporter.HTTPHandler(), closer
}
