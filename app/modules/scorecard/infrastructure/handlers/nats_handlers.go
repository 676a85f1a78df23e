package scorecardhandlers

import (
	"context"
	"encoding/json"
	"time"

	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/nats-io/nats.go"
)

// CorrelationIDHeader is the NATS header carrying a caller supplied correlation id.
const CorrelationIDHeader = "Correlation-Id"

const natsHandlerTimeout = 10 * time.Second

// HandleComputeRequest answers a scorecard compute request over NATS request/reply.
func (h *ScorecardHandlers) HandleComputeRequest(msg *nats.Msg) {
	const handlerName = "scorecard.HandleComputeRequest"

	ctx, cancel := context.WithTimeout(context.Background(), natsHandlerTimeout)
	defer cancel()
	if msg.Header != nil {
		ctx = attr.WithCorrelationID(ctx, msg.Header.Get(CorrelationIDHeader))
	}
	ctx, span := h.tracer.Start(ctx, handlerName)
	defer span.End()

	h.metrics.RecordHandlerAttempt(ctx, handlerName)
	start := time.Now()
	defer func() {
		h.metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
	}()

	if msg.Reply == "" {
		h.logger.WarnContext(ctx, "Compute request without reply subject", attr.String("subject", msg.Subject))
		h.metrics.RecordHandlerFailure(ctx, handlerName)
		return
	}

	resp := h.computeResponse(ctx, msg.Data)

	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to marshal compute response", attr.Error(err))
		h.metrics.RecordHandlerFailure(ctx, handlerName)
		return
	}
	if err := msg.Respond(data); err != nil {
		h.logger.ErrorContext(ctx, "Failed to respond to compute request", attr.Error(err))
		h.metrics.RecordHandlerFailure(ctx, handlerName)
		return
	}

	if resp.Error != "" {
		h.metrics.RecordHandlerFailure(ctx, handlerName)
		return
	}
	h.metrics.RecordHandlerSuccess(ctx, handlerName)
}

// computeResponse decodes a compute request and scores it. Every outcome becomes a
// response so the requester never waits for a timeout.
func (h *ScorecardHandlers) computeResponse(ctx context.Context, data []byte) scorecardevents.ScorecardComputeResponsePayloadV1 {
	var resp scorecardevents.ScorecardComputeResponsePayloadV1

	var req scorecardevents.ScorecardComputeRequestPayloadV1
	if err := json.Unmarshal(data, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to unmarshal compute request", attr.ExtractCorrelationID(ctx), attr.Error(err))
		resp.Error = "malformed request: " + err.Error()
		return resp
	}

	result, err := h.service.ComputeScorecards(ctx, req.Players)
	switch {
	case err != nil:
		h.logger.ErrorContext(ctx, "Compute request failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		resp.Error = "internal error"
	case result.IsFailure():
		resp.Error = result.Failure.Reason
	case result.IsSuccess():
		resp.Players = *result.Success
	}
	return resp
}
