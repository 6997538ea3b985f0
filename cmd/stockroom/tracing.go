package main

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"stockroom/pkg/logger"
)

// spanLogger exports finished spans as log records.
type spanLogger struct {
	log *logger.Logger
}

// newTracerProvider returns a provider that writes each span to log as it ends.
func newTracerProvider(log *logger.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&spanLogger{log: log.WithComponent("trace")}),
	)
}

func (e *spanLogger) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		sc := s.SpanContext()
		kv := []any{
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		}
		if desc := s.Status().Description; desc != "" {
			kv = append(kv, "status_description", desc)
		}
		for _, attr := range s.Attributes() {
			kv = append(kv, string(attr.Key), attr.Value.AsInterface())
		}
		e.log.Infow(s.Name(), kv...)
	}
	return nil
}

func (e *spanLogger) Shutdown(ctx context.Context) error {
	return nil
}
