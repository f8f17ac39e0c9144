package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Attribute keys for generation and HTTP metrics.
var (
	AttrIdentifierKind = attribute.Key("identifier.kind")
	AttrOperation      = attribute.Key("operation")
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
)

// GenerationMetrics counts generated identifiers and times batch operations.
type GenerationMetrics struct {
	logger *zap.Logger

	identifiersTotal *Counter
	rejectedTotal    *Counter
	batchDuration    *Histogram
}

// GenerationMetricsConfig holds configuration for generation metrics.
type GenerationMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewGenerationMetrics creates the generation instruments on the given meter.
func NewGenerationMetrics(cfg GenerationMetricsConfig) (*GenerationMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gm := &GenerationMetrics{logger: logger}

	var err error
	gm.identifiersTotal, err = NewCounter(cfg.Meter,
		"identifiers_generated_total",
		"Total number of identifiers generated",
		"{identifier}",
	)
	if err != nil {
		return nil, err
	}

	gm.rejectedTotal, err = NewCounter(cfg.Meter,
		"identifier_requests_rejected_total",
		"Total number of generation requests rejected for invalid input",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	gm.batchDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "identifier_batch_duration_seconds",
		Description: "Duration of identifier generation operations",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return gm, nil
}

// RecordGenerated adds count identifiers of the given kind.
func (gm *GenerationMetrics) RecordGenerated(ctx context.Context, kind string, count int) {
	gm.identifiersTotal.Add(ctx, int64(count), AttrIdentifierKind.String(kind))
}

// RecordRejected counts a rejected request for the given operation.
func (gm *GenerationMetrics) RecordRejected(ctx context.Context, operation string) {
	gm.rejectedTotal.Add(ctx, 1, AttrOperation.String(operation))
}

// RecordDuration records how long an operation took.
func (gm *GenerationMetrics) RecordDuration(ctx context.Context, operation string, d time.Duration) {
	gm.batchDuration.RecordDuration(ctx, d, AttrOperation.String(operation))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewGenerationMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
