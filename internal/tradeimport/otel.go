package tradeimport

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names, one per stage plus the enclosing run
const (
	spanValidate   = "tradeimport.Validate"
	spanAdmission  = "tradeimport.admission"
	spanSniff      = "tradeimport.sniff"
	spanParse      = "tradeimport.parse"
	spanIntegrity  = "tradeimport.integrity"
	spanStatistics = "tradeimport.statistics"
)

func (e *Engine) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan marks span failed when err is set and ends it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
