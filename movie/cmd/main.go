package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/jeisonBorba/reactive-app/movie/internal/controller/movie"
	movieinfogateway "github.com/jeisonBorba/reactive-app/movie/internal/gateway/movieinfo/http"
	reviewgateway "github.com/jeisonBorba/reactive-app/movie/internal/gateway/review/http"
	httphandler "github.com/jeisonBorba/reactive-app/movie/internal/handler/http"
	"github.com/jeisonBorba/reactive-app/pkg/discovery"
	"github.com/jeisonBorba/reactive-app/pkg/discovery/consul"
	"github.com/jeisonBorba/reactive-app/pkg/metrics"
	"github.com/jeisonBorba/reactive-app/pkg/tracing"
)

const serviceName = "movie"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var configPath string
	flag.StringVar(&configPath, "config", "configs/default.yaml", "Configuration file path")
	flag.Parse()

	f, err := os.Open(configPath)
	if err != nil {
		logger.Fatal("Failed to open configuration", zap.Error(err))
	}
	var cfg config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		logger.Fatal("Failed to parse configuration", zap.Error(err))
	}
	f.Close()
	port := cfg.API.Port
	logger.Info("Starting the movie service", zap.Int("port", port))

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address)
	if err != nil {
		logger.Fatal("Failed to init movie service registry", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, closer, err := tracing.NewTracer(serviceName, cfg.Jaeger.Host, cfg.Jaeger.Port, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Jaeger tracer", zap.Error(err))
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("localhost:%d", port)); err != nil {
		logger.Fatal("Failed to register service", zap.Error(err))
	}
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				logger.Warn("Failed to report healthy state", zap.Error(err))
			}
			time.Sleep(1 * time.Second)
		}
	}()
	defer registry.Deregister(ctx, instanceID, serviceName)

	movieInfoGateway := movieinfogateway.New(registry)
	reviewGateway := reviewgateway.New(registry)
	if cfg.Upstream.Retries > 0 {
		movieInfoGateway.WithRetries(cfg.Upstream.Retries)
		reviewGateway.WithRetries(cfg.Upstream.Retries)
	}
	if cfg.Upstream.TimeoutSeconds > 0 {
		timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
		movieInfoGateway.WithTimeout(timeout)
		reviewGateway.WithTimeout(timeout)
	}
	ctrl := movie.New(movieInfoGateway, reviewGateway)

	scope, metricsHandler, metricsCloser := metrics.NewScope(serviceName)
	defer metricsCloser.Close()

	const limit = 1000 // requests per second
	const burst = 1000

	e := echo.New()
	e.HideBanner = true
	e.Use(limitRequests(rate.NewLimiter(rate.Limit(limit), burst)))
	e.Use(countRequests(scope.Counter("http_requests")))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(metricsHandler))
	httphandler.New(ctrl, logger).Register(e)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		s := <-sigChan
		logger.Info("Received signal, attempting graceful shutdown", zap.Any("signal", s))
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down the HTTP server", zap.Error(err))
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to serve HTTP server", zap.Error(err))
	}
	logger.Info("Gracefully stopped the HTTP server")
}

func limitRequests(l *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow() {
				return c.NoContent(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}

func countRequests(counter tally.Counter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			counter.Inc(1)
			return next(c)
		}
	}
}
