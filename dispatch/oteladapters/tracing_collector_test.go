package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/dispatch/oteladapters"
)

func newTestTracing() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	exporter, collector := newTestTracing()

	ctx, spanCtx := collector.StartSpan(context.Background(), dispatch.SpanNameDispatch, map[string]string{
		dispatch.LogAttrRequestType: "CreateProduct",
		dispatch.LogAttrRequestKind: "command",
	})

	assert.NotNil(t, ctx, "Context should not be nil")
	require.NotNil(t, spanCtx, "SpanContext should not be nil")

	collector.FinishSpan(spanCtx, dispatch.StatusSuccess, map[string]string{
		dispatch.LogAttrStatus: dispatch.StatusSuccess,
	})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "Expected exactly one span")

	span := spans[0]
	assert.Equal(t, dispatch.SpanNameDispatch, span.Name, "Span name should match")
	assert.Equal(t, codes.Ok, span.Status.Code, "Success should map to Ok status")
	assertSpanHasAttribute(t, span, dispatch.LogAttrRequestType, "CreateProduct")
	assertSpanHasAttribute(t, span, dispatch.LogAttrStatus, dispatch.StatusSuccess)
}

func Test_TracingCollector_FinishSpan_StatusMapping(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{dispatch.StatusSuccess, codes.Ok},
		{dispatch.StatusValidationFailed, codes.Ok},
		{dispatch.StatusError, codes.Error},
		{dispatch.StatusCanceled, codes.Error},
		{dispatch.StatusTimeout, codes.Error},
		{dispatch.StatusCommitFailed, codes.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			exporter, collector := newTestTracing()

			_, spanCtx := collector.StartSpan(context.Background(), dispatch.SpanNameDispatch, nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1, "Expected exactly one span")
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code, "Status %s should map to %v", tc.status, tc.expectedCode)
		})
	}
}

func Test_OTelSpanContext_AddAttribute(t *testing.T) {
	exporter, collector := newTestTracing()

	_, spanCtx := collector.StartSpan(context.Background(), dispatch.SpanNameDispatch, nil)
	spanCtx.AddAttribute(dispatch.LogAttrCorrelationID, "abc-123")
	collector.FinishSpan(spanCtx, dispatch.StatusSuccess, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "Expected exactly one span")
	assertSpanHasAttribute(t, spans[0], dispatch.LogAttrCorrelationID, "abc-123")
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, value string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			assert.Equal(t, value, attr.Value.AsString(), "Attribute %s should have expected value", key)
			return
		}
	}

	t.Errorf("span attribute %s not found", key)
}
