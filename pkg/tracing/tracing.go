// Package tracing configures the Jaeger tracer shared by all services.
package tracing

import (
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
	"go.uber.org/zap"
)

// NewTracer creates a Jaeger tracer reporting to the given agent, logging
// through the supplied zap logger. The returned closer flushes buffered
// spans and must be closed on shutdown.
func NewTracer(serviceName, agentHost, agentPort string, logger *zap.Logger) (opentracing.Tracer, io.Closer, error) {
	cfg := &config.Configuration{
		ServiceName: serviceName,
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: fmt.Sprintf("%s:%s", agentHost, agentPort),
		},
	}

	tracer, closer, err := cfg.NewTracer(
		config.Logger(&zapLogger{logger: logger}),
		config.Metrics(metrics.NullFactory),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Jaeger tracer: %w", err)
	}
	return tracer, closer, nil
}

// zapLogger adapts a zap logger to the Jaeger logger interface.
type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Error(msg string) {
	l.logger.Error(msg)
}

func (l *zapLogger) Infof(msg string, args ...interface{}) {
	l.logger.Sugar().Infof(msg, args...)
}
