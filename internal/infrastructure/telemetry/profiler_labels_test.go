package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithProfilingLabels_EmptyLabels(t *testing.T) {
	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) {
		called = true
	})
	assert.True(t, called)
}

func TestWithProfilingLabels_SetsPprofLabels(t *testing.T) {
	var operation, kind string
	var hasRequestID bool

	labels := OperationLabels("GenerateACNs", "acn")
	labels["request_id"] = "req-1"

	WithProfilingLabels(context.Background(), labels, func(ctx context.Context) {
		operation, _ = pprof.Label(ctx, ProfilingLabelOperation)
		kind, _ = pprof.Label(ctx, ProfilingLabelKind)
		_, hasRequestID = pprof.Label(ctx, "request_id")
	})

	assert.Equal(t, "GenerateACNs", operation)
	assert.Equal(t, "acn", kind)
	assert.False(t, hasRequestID, "high-cardinality labels are dropped")
}

func TestWithProfilingLabels_Nested(t *testing.T) {
	var route, operation string

	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelRoute: "/api/v1/identifiers/acn"}, func(outer context.Context) {
		WithProfilingLabels(outer, OperationLabels("GenerateACNs", "acn"), func(inner context.Context) {
			route, _ = pprof.Label(inner, ProfilingLabelRoute)
			operation, _ = pprof.Label(inner, ProfilingLabelOperation)
		})
	})

	assert.Equal(t, "/api/v1/identifiers/acn", route)
	assert.Equal(t, "GenerateACNs", operation)
}

func TestSanitizeLabels(t *testing.T) {
	long := strings.Repeat("x", MaxLabelValueLength+10)

	pairs := sanitizeLabels(map[string]string{
		"Identifier-Kind": "abn",
		"route":           long,
		"empty":           "",
		"trace_id":        "abc",
		"!!!":             "dropped",
	})

	assert.Equal(t, []string{
		"identifier_kind", "abn",
		"route", long[:MaxLabelValueLength],
	}, pairs)
}

func TestSanitizeLabelKey(t *testing.T) {
	tests := map[string]string{
		"method":      "method",
		"HTTP Method": "http_method",
		"batch-count": "batch_count",
		"kind.v2":     "kindv2",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeLabelKey(in), in)
	}
}
