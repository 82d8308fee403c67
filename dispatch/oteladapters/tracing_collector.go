package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// TracingCollector implements dispatch.TracingCollector using the OpenTelemetry
// tracing API, creating one span per dispatch and propagating trace context
// through the behavior chain.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a new OpenTelemetry tracing collector.
// The tracer should come from your OpenTelemetry TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan creates a new OpenTelemetry span with the given name and attributes.
// It returns a context carrying the span and a SpanContext wrapper for it.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, dispatch.SpanContext) {
	spanOptions := make([]trace.SpanStartOption, 0, len(attrs))
	for key, value := range attrs {
		spanOptions = append(spanOptions, trace.WithAttributes(attribute.String(key, value)))
	}

	spanCtx, span := t.tracer.Start(ctx, name, spanOptions...)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan completes an OpenTelemetry span with the given status and final attributes.
func (t *TracingCollector) FinishSpan(spanCtx dispatch.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	for key, value := range attrs {
		otelSpanCtx.span.SetAttributes(attribute.String(key, value))
	}

	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

// Ensure TracingCollector implements dispatch.TracingCollector.
var _ dispatch.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements dispatch.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus sets the OpenTelemetry span status based on the provided status string.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds an attribute to the OpenTelemetry span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus maps dispatch status strings to OpenTelemetry status codes.
// Validation rejections map to Ok because they are expected, user-correctable
// outcomes, not system faults.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case dispatch.StatusSuccess:
		s.span.SetStatus(codes.Ok, "")
	case dispatch.StatusValidationFailed:
		s.span.SetStatus(codes.Ok, "request rejected by validation")
	case dispatch.StatusError:
		s.span.SetStatus(codes.Error, "dispatch failed")
	case dispatch.StatusCanceled:
		s.span.SetStatus(codes.Error, "dispatch canceled")
	case dispatch.StatusTimeout:
		s.span.SetStatus(codes.Error, "dispatch timed out")
	case dispatch.StatusCommitFailed:
		s.span.SetStatus(codes.Error, "commit failed after successful execution")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

// Ensure OTelSpanContext implements dispatch.SpanContext.
var _ dispatch.SpanContext = (*OTelSpanContext)(nil)
