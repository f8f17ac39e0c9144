// Package registration holds the application service that hands out
// synthetic ACN and ABN batches to the HTTP API and the CLI.
package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/bizid/internal/domain/registration"
	"github.com/erp/bizid/internal/domain/shared"
	"github.com/erp/bizid/internal/infrastructure/logger"
	"github.com/erp/bizid/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultMaxBatchSize caps a single batch when no limit is configured
const DefaultMaxBatchSize = 1000

// Identifier kinds reported to logs and metrics
const (
	KindACN  = "acn"
	KindABN  = "abn"
	KindPair = "pair"
)

const serviceSpanName = "identifier"

// GenerationRecorder receives generation events.
// telemetry.GenerationMetrics satisfies it.
type GenerationRecorder interface {
	RecordGenerated(ctx context.Context, kind string, count int)
	RecordRejected(ctx context.Context, operation string)
	RecordDuration(ctx context.Context, operation string, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordGenerated(context.Context, string, int) {}

func (noopRecorder) RecordRejected(context.Context, string) {}

func (noopRecorder) RecordDuration(context.Context, string, time.Duration) {}

var _ GenerationRecorder = (*telemetry.GenerationMetrics)(nil)

// ServiceConfig contains configuration for IdentifierService
type ServiceConfig struct {
	MaxBatchSize int
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{MaxBatchSize: DefaultMaxBatchSize}
}

// ServiceOption configures an IdentifierService
type ServiceOption func(*IdentifierService)

// WithMetrics sets the recorder that receives generation events
func WithMetrics(recorder GenerationRecorder) ServiceOption {
	return func(s *IdentifierService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// IdentifierService generates identifier batches and derives ABNs
type IdentifierService struct {
	generator    registration.IdentifierGenerator
	logger       *zap.Logger
	metrics      GenerationRecorder
	maxBatchSize int
}

// NewIdentifierService creates a new IdentifierService
func NewIdentifierService(
	generator registration.IdentifierGenerator,
	config ServiceConfig,
	log *zap.Logger,
	opts ...ServiceOption,
) *IdentifierService {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = DefaultMaxBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &IdentifierService{
		generator:    generator,
		logger:       log,
		metrics:      noopRecorder{},
		maxBatchSize: config.MaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBatchSize returns the largest count accepted by the batch operations
func (s *IdentifierService) MaxBatchSize() int {
	return s.maxBatchSize
}

// GenerateACNs returns count freshly generated ACNs
func (s *IdentifierService) GenerateACNs(ctx context.Context, count int) ([]ACNResponse, error) {
	const op = "generate_acns"
	ctx, span := telemetry.StartServiceSpan(ctx, serviceSpanName, op,
		telemetry.WithAttribute(telemetry.SpanAttrIdentifierKind, KindACN),
		telemetry.WithAttribute(telemetry.SpanAttrBatchCount, count),
	)
	defer span.End()

	if err := s.checkCount(ctx, op, count); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	result := make([]ACNResponse, 0, count)
	withLabels(ctx, op, KindACN, func() {
		for range count {
			result = append(result, ToACNResponse(s.generator.GenerateACN()))
		}
	})
	s.finish(ctx, op, KindACN, count, start)

	return result, nil
}

// GenerateABNs returns count ABNs, each derived from a freshly generated ACN
func (s *IdentifierService) GenerateABNs(ctx context.Context, count int) ([]ABNResponse, error) {
	const op = "generate_abns"
	ctx, span := telemetry.StartServiceSpan(ctx, serviceSpanName, op,
		telemetry.WithAttribute(telemetry.SpanAttrIdentifierKind, KindABN),
		telemetry.WithAttribute(telemetry.SpanAttrBatchCount, count),
	)
	defer span.End()

	if err := s.checkCount(ctx, op, count); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	result := make([]ABNResponse, 0, count)
	withLabels(ctx, op, KindABN, func() {
		for range count {
			result = append(result, ToABNResponse(s.generator.GenerateABN(nil)))
		}
	})
	s.finish(ctx, op, KindABN, count, start)

	return result, nil
}

// GeneratePairs returns count ABN/ACN pairs where each ABN is derived from its ACN
func (s *IdentifierService) GeneratePairs(ctx context.Context, count int) ([]PairResponse, error) {
	const op = "generate_pairs"
	ctx, span := telemetry.StartServiceSpan(ctx, serviceSpanName, op,
		telemetry.WithAttribute(telemetry.SpanAttrIdentifierKind, KindPair),
		telemetry.WithAttribute(telemetry.SpanAttrBatchCount, count),
	)
	defer span.End()

	if err := s.checkCount(ctx, op, count); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	result := make([]PairResponse, 0, count)
	withLabels(ctx, op, KindPair, func() {
		for range count {
			result = append(result, ToPairResponse(s.generator.GenerateABNACN()))
		}
	})
	s.finish(ctx, op, KindPair, count, start)

	return result, nil
}

// DeriveABN computes the ABN whose significant digits are acn.
// Values outside 0..999,999,999 are rejected rather than truncated.
func (s *IdentifierService) DeriveABN(ctx context.Context, acn int64) (*ABNResponse, error) {
	const op = "derive_abn"
	ctx, span := telemetry.StartServiceSpan(ctx, serviceSpanName, op,
		telemetry.WithAttribute(telemetry.SpanAttrACN, acn),
	)
	defer span.End()

	value, err := registration.NewACN(acn)
	if err != nil {
		s.metrics.RecordRejected(ctx, op)
		s.log(ctx).Debug("ABN derivation rejected",
			zap.Int64("acn", acn),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	abn := s.generator.GenerateABN(&value)
	s.finish(ctx, op, KindABN, 1, start)

	resp := ToABNResponse(abn)
	return &resp, nil
}

// withLabels runs fn with profiling labels naming the operation and kind
func withLabels(ctx context.Context, op, kind string, fn func()) {
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(op, kind), func(context.Context) {
		fn()
	})
}

// log prefers the request-scoped logger and falls back to the service logger
func (s *IdentifierService) log(ctx context.Context) *logger.ContextLogger {
	return logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger))
}

func (s *IdentifierService) checkCount(ctx context.Context, op string, count int) error {
	if count >= 1 && count <= s.maxBatchSize {
		return nil
	}
	s.metrics.RecordRejected(ctx, op)
	s.log(ctx).Debug("Batch size rejected",
		zap.String("operation", op),
		zap.Int("count", count),
		zap.Int("max_batch_size", s.maxBatchSize),
	)
	return shared.NewDomainError(shared.CodeInvalidInput,
		fmt.Sprintf("count must be between 1 and %d, got %d", s.maxBatchSize, count))
}

func (s *IdentifierService) finish(ctx context.Context, op, kind string, count int, start time.Time) {
	elapsed := time.Since(start)
	s.metrics.RecordGenerated(ctx, kind, count)
	s.metrics.RecordDuration(ctx, op, elapsed)
	s.log(ctx).Debug("Identifiers generated",
		zap.String("operation", op),
		zap.String("kind", kind),
		zap.Int("count", count),
		zap.Duration("elapsed", elapsed),
	)
}
