// Package observability wires logging, tracing and metrics for the service.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config selects how the observability stack is built.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	LogFormat      string
	MetricsAddress string
}

// Observability bundles what services and handlers need.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  ScorecardMetrics
	cfg      Config
}

// Init builds the logger, the tracer from the global otel provider and a fresh
// prometheus registry with the scorecard collectors registered.
func Init(cfg Config) Observability {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "bowl-bot"
	}
	logger := NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: reg,
		Metrics:  NewPrometheusScorecardMetrics(reg, "bowlbot"),
		cfg:      cfg,
	}
}

// NewNoop returns an Observability that discards everything.
func NewNoop() Observability {
	return Observability{
		Logger:   NoOpLogger,
		Tracer:   otel.Tracer("noop"),
		Registry: prometheus.NewRegistry(),
		Metrics:  NoOpMetrics{},
	}
}

// MetricsHandler exposes the registry in the prometheus text format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}

// ServeMetrics serves /metrics on the configured address until ctx is done. An empty
// address disables the listener.
func (o Observability) ServeMetrics(ctx context.Context) error {
	if o.cfg.MetricsAddress == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", o.MetricsHandler())
	srv := &http.Server{Addr: o.cfg.MetricsAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	o.Logger.InfoContext(ctx, "Serving metrics", slog.String("address", o.cfg.MetricsAddress))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
