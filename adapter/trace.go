package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/geohttp/adapter"

// WithInstrumentation wraps an adapter with OpenTelemetry tracing and
// metrics. Instruments come from the global providers, so without an
// installed SDK every call is a no-op passthrough.
func WithInstrumentation(next Adapter) (Adapter, error) {
	meter := otel.Meter(instrumentationName)

	requestTotal, err := meter.Int64Counter("adapter.request.total",
		metric.WithDescription("Total number of adapter requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating adapter.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("adapter.request.duration",
		metric.WithDescription("Duration of adapter requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating adapter.request.duration histogram: %w", err)
	}

	return &instrumentedAdapter{
		next:            next,
		tracer:          otel.Tracer(instrumentationName),
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}, nil
}

type instrumentedAdapter struct {
	next            Adapter
	tracer          trace.Tracer
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func (a *instrumentedAdapter) GetText(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (string, error) {
	ctx, finish := a.start(ctx, "adapter.get_text", url)
	result, err := a.next.GetText(ctx, url, timeout, headers)
	finish(err)
	return result, err
}

func (a *instrumentedAdapter) GetJSON(ctx context.Context, url string, timeout time.Duration, headers map[string]string) (any, error) {
	ctx, finish := a.start(ctx, "adapter.get_json", url)
	result, err := a.next.GetJSON(ctx, url, timeout, headers)
	finish(err)
	return result, err
}

func (a *instrumentedAdapter) Close() error {
	return a.next.Close()
}

// start opens a client span and returns a finish function that records
// the outcome on both the span and the metric instruments.
func (a *instrumentedAdapter) start(ctx context.Context, operation, url string) (context.Context, func(error)) {
	began := time.Now()
	ctx, span := a.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", "GET"),
			attribute.String("url.full", url),
		),
	)

	return ctx, func(err error) {
		attrs := []attribute.KeyValue{
			attribute.String("operation", operation),
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			var adapterErr *Error
			if errors.As(err, &adapterErr) {
				span.SetAttributes(attribute.String("error.kind", adapterErr.Kind.String()))
				attrs = append(attrs, attribute.String("error.kind", adapterErr.Kind.String()))
				if adapterErr.Kind == KindHTTPStatus {
					span.SetAttributes(attribute.Int("http.response.status_code", adapterErr.StatusCode))
				}
			}
			attrs = append(attrs, attribute.String("status", "error"))
		} else {
			attrs = append(attrs, attribute.String("status", "ok"))
		}
		span.End()

		a.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
		a.requestDuration.Record(ctx, time.Since(began).Seconds(),
			metric.WithAttributes(attribute.String("operation", operation)))
	}
}
