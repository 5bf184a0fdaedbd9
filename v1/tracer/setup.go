package tracer

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/search-store/v1/logger"
)

// Config holds the tracer settings.
type Config struct {
	// ServiceName identifies spans emitted by this process.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// AppEnv tags spans with the deployment environment.
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport ships spans via OTLP HTTP; when false the provider
	// is in-process only (useful for tests and local runs).
	EnableExport bool `yaml:"enable_export" env:"TRACING_ENABLE_EXPORT"`
}

// NewConfig reads the tracer configuration from the environment.
func NewConfig() Config {
	return Config{
		ServiceName:  os.Getenv("SERVICE_NAME"),
		AppEnv:       os.Getenv("APP_ENV"),
		EnableExport: os.Getenv("TRACING_ENABLE_EXPORT") == "true",
	}
}

// Tracer wraps an OpenTelemetry tracer provider with a minimal span API.
// Safe for concurrent use.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewClient builds the OpenTelemetry tracer provider, optionally with an
// OTLP HTTP exporter, registers it globally, and returns the wrapper.
func NewClient(cfg Config, log *logger.Logger) (*Tracer, error) {
	var options []sdktrace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			log.Error("cannot initialize trace exporter", err, nil)
			return nil, err
		}
		options = append(options, sdktrace.WithBatcher(exporter))
	}

	options = append(options, sdktrace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := sdktrace.NewTracerProvider(options...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{
		provider: tp,
		tracer:   tp.Tracer(cfg.ServiceName),
	}, nil
}

// StartSpan opens a span with the given name and attributes.
// Always defer span.End() immediately after a successful call.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}

// Shutdown flushes pending spans and releases exporter resources.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
