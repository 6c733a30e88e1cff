package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Command status attribute values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Options controls where telemetry goes. A nil Registerer disables the
// metrics exporter; spans are only kept when SpanProcessors are given.
type Options struct {
	Registerer     promclient.Registerer
	SpanProcessors []sdktrace.SpanProcessor
}

type Observability struct {
	meterProvider   *metric.MeterProvider
	tracerProvider  *sdktrace.TracerProvider
	tracer          trace.Tracer
	commandCounter  otelmetric.Int64Counter
	commandDuration otelmetric.Float64Histogram
}

// Warner receives setup problems; telemetry failures never stop a command.
type Warner interface {
	Warn(msg string, fields map[string]interface{})
}

func New(serviceName string, opts Options, log Warner) *Observability {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, sp := range opts.SpanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	o := &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
	}

	if opts.Registerer == nil {
		return o
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(opts.Registerer))
	if err != nil {
		if log != nil {
			log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		}
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	meter := provider.Meter(serviceName)

	commandCounter, _ := meter.Int64Counter(
		"commands.executed",
		otelmetric.WithDescription("Number of commands executed"),
	)

	commandDuration, _ := meter.Float64Histogram(
		"commands.duration",
		otelmetric.WithDescription("Command execution duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.commandCounter = commandCounter
	o.commandDuration = commandDuration
	return o
}

// NewNoop returns an instance that records nothing.
func NewNoop() *Observability {
	return &Observability{tracer: noop.NewTracerProvider().Tracer("noop")}
}

// SetGlobal installs the providers as the process-wide otel defaults.
func (o *Observability) SetGlobal() {
	if o.tracerProvider != nil {
		otel.SetTracerProvider(o.tracerProvider)
	}
	if o.meterProvider != nil {
		otel.SetMeterProvider(o.meterProvider)
	}
}

func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan marks the span failed when err is non-nil and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *Observability) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	)
	if o.commandCounter != nil {
		o.commandCounter.Add(ctx, 1, attrs)
	}
	if o.commandDuration != nil {
		o.commandDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
