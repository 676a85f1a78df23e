package scorecardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/parsers"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ParserFactory picks a scorecard parser for a file name.
type ParserFactory interface {
	GetParser(fileName string) (parsers.Parser, error)
}

// ScorecardService implements the Service interface.
type ScorecardService struct {
	repo    scorecarddb.Repository
	parsers ParserFactory
	logger  *slog.Logger
	metrics observability.ScorecardMetrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewScorecardService creates a new ScorecardService.
func NewScorecardService(
	repo scorecarddb.Repository,
	parserFactory ParserFactory,
	logger *slog.Logger,
	metrics observability.ScorecardMetrics,
	tracer trace.Tracer,
) *ScorecardService {
	return &ScorecardService{
		repo:    repo,
		parsers: parserFactory,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScorecardService,
	ctx context.Context,
	operationName string,
	gameID uuid.UUID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", gameID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.GameID("game_id", gameID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.GameID("game_id", gameID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}
