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
	"gopkg.in/yaml.v3"

	"github.com/jeisonBorba/reactive-app/pkg/auth"
	"github.com/jeisonBorba/reactive-app/pkg/discovery"
	"github.com/jeisonBorba/reactive-app/pkg/discovery/consul"
	"github.com/jeisonBorba/reactive-app/pkg/metrics"
	"github.com/jeisonBorba/reactive-app/pkg/tracing"
	"github.com/jeisonBorba/reactive-app/review/internal/controller/review"
	httphandler "github.com/jeisonBorba/reactive-app/review/internal/handler/http"
	kafkaingester "github.com/jeisonBorba/reactive-app/review/internal/ingester/kafka"
	"github.com/jeisonBorba/reactive-app/review/internal/repository/memory"
	"github.com/jeisonBorba/reactive-app/review/internal/repository/mysql"
	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

const serviceName = "review"

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
	logger.Info("Starting the review service", zap.Int("port", port))

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address)
	if err != nil {
		logger.Fatal("Failed to init review service registry", zap.Error(err))
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

	repo, err := newRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to init repository", zap.Error(err))
	}
	var ingester reviewIngester
	if cfg.Kafka.Address != "" {
		ingester, err = kafkaingester.NewIngester(cfg.Kafka.Address, cfg.Kafka.GroupID, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Fatal("Failed to init Kafka ingester", zap.Error(err))
		}
	}
	ctrl := review.New(repo, ingester, logger)
	defer ctrl.Close()
	if ingester != nil {
		go func() {
			if err := ctrl.StartIngestion(ctx); err != nil {
				logger.Error("Failed to start ingestion", zap.Error(err))
			}
		}()
	}

	scope, metricsHandler, metricsCloser := metrics.NewScope(serviceName)
	defer metricsCloser.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(countRequests(scope.Counter("http_requests")))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(metricsHandler))

	var mutating []echo.MiddlewareFunc
	if cfg.Auth.Secret != "" {
		secret := []byte(cfg.Auth.Secret)
		mutating = append(mutating, auth.Middleware(func() []byte { return secret }))
	}
	httphandler.New(ctrl, logger).Register(e, mutating...)

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

// reviewRepository and reviewIngester mirror the controller's collaborator
// contracts so the backends can be picked at startup.
type reviewRepository interface {
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
	List(ctx context.Context, movieInfoID *int64) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
}

type reviewIngester interface {
	Ingest(ctx context.Context) (chan model.ReviewEvent, error)
}

func countRequests(counter tally.Counter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			counter.Inc(1)
			return next(c)
		}
	}
}

func newRepository(cfg config) (reviewRepository, error) {
	if cfg.Database.DSN != "" {
		return mysql.New(cfg.Database.DSN)
	}
	return memory.New(), nil
}
