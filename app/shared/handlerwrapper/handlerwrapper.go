// Package handlerwrapper adapts typed event handlers to watermill handler funcs.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey names the metadata entry holding the outgoing topic of a result.
const TopicMetadataKey = "topic"

// Result is one outgoing message produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// TypedHandler handles a decoded payload and returns the messages to publish.
type TypedHandler[T any] func(ctx context.Context, payload *T) ([]Result, error)

// WrapTransformingTyped decodes the incoming JSON payload into T, runs handler inside a
// span and turns its results into watermill messages. Outgoing messages carry the
// incoming correlation id and the result topic in their metadata.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.ScorecardMetrics,
	handler TypedHandler[T],
) message.HandlerFunc {
	if metrics == nil {
		metrics = observability.NoOpMetrics{}
	}

	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		ctx := attr.WithCorrelationID(msg.Context(), correlationID)

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		metrics.RecordHandlerAttempt(ctx, handlerName)
		start := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			// A payload that cannot be decoded will never succeed on retry.
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(ctx, handlerName)
			span.RecordError(err)
			return nil, nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(ctx, handlerName)
			span.RecordError(err)
			return nil, err
		}

		msgs := make([]*message.Message, 0, len(out))
		for _, r := range out {
			m, err := NewMessage(r, correlationID)
			if err != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			msgs = append(msgs, m)
		}

		logger.InfoContext(ctx, handlerName+" completed successfully",
			attr.CorrelationIDFromMsg(msg),
			attr.Int("results", len(msgs)),
		)
		metrics.RecordHandlerSuccess(ctx, handlerName)
		return msgs, nil
	}
}

// NewMessage encodes a Result as a watermill message.
func NewMessage(r Result, correlationID string) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", r.Topic, err)
	}

	m := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range r.Metadata {
		m.Metadata.Set(k, v)
	}
	m.Metadata.Set(TopicMetadataKey, r.Topic)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, m)
	}
	return m, nil
}
