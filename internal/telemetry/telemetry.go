// Package telemetry configures OpenTelemetry for the service. Metrics are
// always bridged into the Prometheus registry served on /metrics. Traces,
// metrics and logs are additionally exported over OTLP/gRPC when an
// endpoint is configured.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config holds the telemetry settings.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is the OTLP/gRPC collector address (host:port). Empty disables
	// OTLP export.
	Endpoint string
	Insecure bool
	// Registerer receives the bridged OpenTelemetry metrics. Nil disables the bridge.
	Registerer prometheus.Registerer
}

// Provider owns the SDK providers installed by Setup.
type Provider struct {
	loggerProvider *sdklog.LoggerProvider
	shutdowns      []func(context.Context) error
}

// Setup installs global tracer and meter providers and the W3C propagator.
// Call Shutdown on the returned Provider to flush pending telemetry.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "fanout"
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	p := &Provider{}
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.Registerer != nil {
		exporter, err := otelprom.New(otelprom.WithRegisterer(cfg.Registerer))
		if err != nil {
			return nil, fmt.Errorf("creating prometheus metric bridge: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(exporter))
	}

	if cfg.Endpoint != "" {
		traceExp, err := otlptracegrpc.New(ctx, traceOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		p.shutdowns = append(p.shutdowns, tp.Shutdown)

		metricExp, err := otlpmetricgrpc.New(ctx, metricOptions(cfg)...)
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)))

		logExp, err := otlploggrpc.New(ctx, logOptions(cfg)...)
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("creating OTLP log exporter: %w", err)
		}
		p.loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
			sdklog.WithResource(res),
		)
		p.shutdowns = append(p.shutdowns, p.loggerProvider.Shutdown)
	}

	mp := sdkmetric.NewMeterProvider(meterOpts...)
	otel.SetMeterProvider(mp)
	p.shutdowns = append(p.shutdowns, mp.Shutdown)

	return p, nil
}

// Logger returns base unchanged when OTLP export is off. Otherwise records
// go to both base and the OTLP log exporter.
func (p *Provider) Logger(base *slog.Logger, name string) *slog.Logger {
	if p == nil || p.loggerProvider == nil {
		return base
	}
	otelHandler := otelslog.NewHandler(name, otelslog.WithLoggerProvider(p.loggerProvider))
	return slog.New(&teeHandler{handlers: []slog.Handler{base.Handler(), otelHandler}})
}

// Shutdown flushes and stops every provider installed by Setup.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error
	for i := len(p.shutdowns) - 1; i >= 0; i-- {
		if err := p.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.shutdowns = nil
	return errors.Join(errs...)
}

func traceOptions(cfg Config) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return opts
}

func metricOptions(cfg Config) []otlpmetricgrpc.Option {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	return opts
}

func logOptions(cfg Config) []otlploggrpc.Option {
	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	return opts
}
