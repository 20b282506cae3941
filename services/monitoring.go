package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "epsilon_api"
	DEFAULT_PROMETHEUS_PORT = 2112
)

type MonitoringService struct {
	appContext.DefaultService

	port     int
	register *prometheus.Registry
	server   *fiber.App

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	httpActive        *prometheus.GaugeVec
	backendRequests   *prometheus.CounterVec
	backendDuration   *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	downloadsIssued   prometheus.Counter
	rateLimitRejected *prometheus.CounterVec
}

func NewMonitoringService() *MonitoringService {
	svc := &MonitoringService{}
	svc.initMetrics()
	return svc
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *appContext.Context) error {
	port, err := strconv.Atoi(os.Getenv("PROMETHEUS_PORT"))
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	if svc.register == nil {
		svc.initMetrics()
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) initMetrics() {
	svc.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"endpoint", "method", "status"})

	svc.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint", "method"})

	svc.httpActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_requests_active",
		Help: "Number of active concurrent HTTP requests",
	}, []string{"endpoint", "method"})

	svc.backendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Calls made to the backend, by operation and outcome",
	}, []string{"operation", "outcome"})

	svc.backendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Backend call duration in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	svc.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by cache name and result",
	}, []string{"cache", "result"})

	svc.downloadsIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resource_downloads_issued_total",
		Help: "Download links handed out",
	})

	svc.rateLimitRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limit_rejected_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"rule"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		svc.httpRequests,
		svc.httpDuration,
		svc.httpActive,
		svc.backendRequests,
		svc.backendDuration,
		svc.cacheLookups,
		svc.downloadsIssued,
		svc.rateLimitRejected,
	)
	svc.register = reg
}

// Start serves /metrics on its own port. Listen runs in the background so
// the services after this one still start.
func (svc *MonitoringService) Start() error {
	svc.server = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	go func() {
		if err := svc.server.Listen(fmt.Sprintf(":%v", svc.port)); err != nil {
			log.Error().Err(err).Msg("Prometheus metrics server stopped")
		}
	}()

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}

// The recorders below are no-ops on a nil service so callers can run
// without monitoring configured.

func (svc *MonitoringService) RecordRequest(endpoint, method, status string, duration time.Duration) {
	if svc == nil {
		return
	}
	svc.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	svc.httpDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (svc *MonitoringService) RecordBackendCall(operation string, duration time.Duration, err error) {
	if svc == nil {
		return
	}
	svc.backendRequests.WithLabelValues(operation, backendOutcome(err)).Inc()
	svc.backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (svc *MonitoringService) RecordCacheLookup(cache string, hit bool) {
	if svc == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	svc.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (svc *MonitoringService) RecordDownload() {
	if svc == nil {
		return
	}
	svc.downloadsIssued.Inc()
}

func (svc *MonitoringService) RecordRateLimited(rule string) {
	if svc == nil {
		return
	}
	svc.rateLimitRejected.WithLabelValues(rule).Inc()
}

func backendOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// MonitoringMiddleware creates a Fiber middleware for monitoring HTTP requests
func MonitoringMiddleware(monitoringSvc *MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if monitoringSvc == nil {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()
		endpoint := c.Route().Path

		monitoringSvc.httpActive.WithLabelValues(endpoint, method).Inc()
		defer monitoringSvc.httpActive.WithLabelValues(endpoint, method).Dec()

		err := c.Next()

		// route is only resolved after the handler chain has run
		endpoint = c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if appErr, ok := shared.GetAppError(err); ok {
				status = appErr.StatusCode
			}
		}
		monitoringSvc.RecordRequest(endpoint, method, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// instrumentedBackend times every backend call.
type instrumentedBackend struct {
	next    Backend
	metrics *MonitoringService
}

func (b *instrumentedBackend) observe(op string, start time.Time, err error) {
	b.metrics.RecordBackendCall(op, time.Since(start), err)
}

func (b *instrumentedBackend) Me(ctx context.Context, token string) (*dto.CurrentUser, error) {
	start := time.Now()
	u, err := b.next.Me(ctx, token)
	b.observe("me", start, err)
	return u, err
}

func (b *instrumentedBackend) UpdateMe(ctx context.Context, token string, patch dto.UpdateProfileRequest) (*dto.CurrentUser, error) {
	start := time.Now()
	u, err := b.next.UpdateMe(ctx, token, patch)
	b.observe("update_me", start, err)
	return u, err
}

func (b *instrumentedBackend) Logout(ctx context.Context, token string) error {
	start := time.Now()
	err := b.next.Logout(ctx, token)
	b.observe("logout", start, err)
	return err
}

func (b *instrumentedBackend) FilterProgress(ctx context.Context, email string) ([]model.UserProgress, error) {
	start := time.Now()
	records, err := b.next.FilterProgress(ctx, email)
	b.observe("filter_progress", start, err)
	return records, err
}

func (b *instrumentedBackend) CreateProgress(ctx context.Context, record *model.UserProgress) (*model.UserProgress, error) {
	start := time.Now()
	created, err := b.next.CreateProgress(ctx, record)
	b.observe("create_progress", start, err)
	return created, err
}

func (b *instrumentedBackend) UpdateProgress(ctx context.Context, id string, patch model.ProgressPatch) error {
	start := time.Now()
	err := b.next.UpdateProgress(ctx, id, patch)
	b.observe("update_progress", start, err)
	return err
}

func (b *instrumentedBackend) ListResources(ctx context.Context) ([]model.Resource, error) {
	start := time.Now()
	resources, err := b.next.ListResources(ctx)
	b.observe("list_resources", start, err)
	return resources, err
}

// backendFrom looks up the configured backend, timed by the monitoring
// service when one is registered.
func backendFrom(ctx *appContext.Context) Backend {
	backend := ctx.Service(BACKEND_SVC).(Backend)
	if m, ok := ctx.Service(MONITORING_SVC).(*MonitoringService); ok && m != nil {
		return &instrumentedBackend{next: backend, metrics: m}
	}
	return backend
}
