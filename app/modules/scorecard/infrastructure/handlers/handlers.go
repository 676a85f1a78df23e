package scorecardhandlers

import (
	"context"
	"log/slog"

	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	topics "github.com/Black-And-White-Club/bowl-bot/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ScorecardHandlers implements the Handlers interface.
type ScorecardHandlers struct {
	service   scorecardservice.Service
	publisher message.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   observability.ScorecardMetrics
}

// NewScorecardHandlers creates a new ScorecardHandlers. publisher may be nil, in which
// case balls entered over HTTP are not announced as events.
func NewScorecardHandlers(
	service scorecardservice.Service,
	publisher message.Publisher,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.ScorecardMetrics,
) Handlers {
	if metrics == nil {
		metrics = observability.NoOpMetrics{}
	}
	return &ScorecardHandlers{
		service:   service,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
	}
}

// enterBallResults turns an EnterBall outcome into the events announcing it. Accepted
// balls go out twice: on the shared topic and on the game scoped one scoreboards follow.
func enterBallResults(result scorecardservice.EnterBallResult) []handlerwrapper.Result {
	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic:   scorecardevents.BallRejectedV1,
			Payload: result.Failure,
		}}
	}
	if result.IsSuccess() {
		return []handlerwrapper.Result{
			{Topic: scorecardevents.ScoresComputedV1, Payload: result.Success},
			{Topic: topics.ScopedTopic(scorecardevents.ScoresComputedV1, result.Success.GameID.String()), Payload: result.Success},
		}
	}
	return nil
}

// announce publishes results outside a watermill handler. Failures are logged only; the
// caller already has its answer.
func (h *ScorecardHandlers) announce(ctx context.Context, out []handlerwrapper.Result) {
	if h.publisher == nil {
		return
	}
	for _, r := range out {
		msg, err := handlerwrapper.NewMessage(r, attr.CorrelationIDFrom(ctx))
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to build event", attr.String("topic", r.Topic), attr.Error(err))
			continue
		}
		msg.SetContext(ctx)
		if err := h.publisher.Publish(r.Topic, msg); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish event", attr.String("topic", r.Topic), attr.Error(err))
		}
	}
}
