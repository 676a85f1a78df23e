package scorecardrouter

import (
	"context"
	"fmt"
	"log/slog"

	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	scorecardhandlers "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/handlers"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// ScorecardRouter wires the scorecard event handlers into a watermill router.
type ScorecardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metrics        observability.ScorecardMetrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewScorecardRouter creates a ScorecardRouter. A nil registry leaves the watermill
// router metrics off.
func NewScorecardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	scorecardMetrics observability.ScorecardMetrics,
	prometheusRegistry *prometheus.Registry,
) *ScorecardRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	if scorecardMetrics == nil {
		scorecardMetrics = observability.NoOpMetrics{}
	}
	return &ScorecardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metrics:        scorecardMetrics,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds the middleware and registers the handlers.
func (r *ScorecardRouter) Configure(ctx context.Context, handlers scorecardhandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes the handlers to their V1 topics. Every returned message is
// published to the topic named in its metadata.
func (r *ScorecardRouter) RegisterHandlers(ctx context.Context, handlers scorecardhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		scorecardevents.BallEnteredV1: handlerwrapper.WrapTransformingTyped[scorecardevents.BallEnteredPayloadV1](
			"scorecard.HandleBallEntered", r.logger, r.tracer, r.metrics, handlers.HandleBallEntered,
		),
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("scorecard.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message", attr.String("message_id", msg.UUID), attr.Error(err))
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(handlerwrapper.TopicMetadataKey)
					if publishTopic == "" {
						r.logger.ErrorContext(ctx, "Message has no topic, dropped",
							attr.String("handler", handlerName),
							attr.String("msg_uuid", m.UUID),
							attr.CorrelationIDFromMsg(m),
						)
						continue
					}

					r.logger.InfoContext(ctx, "Publishing message",
						attr.String("topic", publishTopic),
						attr.String("handler", handlerName),
						attr.CorrelationIDFromMsg(m),
					)
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

// Close stops the watermill router.
func (r *ScorecardRouter) Close() error {
	return r.Router.Close()
}
