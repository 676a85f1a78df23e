package scorecardhandlers

import (
	"context"
	"errors"

	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/handlerwrapper"
)

// HandleBallEntered enters a ball received as an event and announces the outcome.
func (h *ScorecardHandlers) HandleBallEntered(ctx context.Context, payload *scorecardevents.BallEnteredPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.EnterBall(ctx, scorecardservice.EnterBallRequest{
		GameID:   payload.GameID,
		PlayerID: payload.PlayerID,
		Frame:    payload.Frame,
		Ball:     payload.Ball,
		Value:    payload.Value,
	})
	if err != nil {
		return nil, err
	}

	return enterBallResults(result), nil
}
