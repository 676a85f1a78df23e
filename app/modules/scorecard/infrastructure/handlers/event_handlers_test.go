package scorecardhandlers

import (
	"context"
	"errors"
	"testing"

	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	topics "github.com/Black-And-White-Club/bowl-bot/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleBallEntered(t *testing.T) {
	gameID := uuid.New()
	playerID := uuid.New()
	payload := &scorecardevents.BallEnteredPayloadV1{GameID: gameID, PlayerID: playerID, Frame: 1, Ball: 1, Value: "X"}

	tests := []struct {
		name       string
		payload    *scorecardevents.BallEnteredPayloadV1
		setup      func(*FakeService)
		wantTopics []string
		wantErr    bool
		wantTrace  []string
	}{
		{
			name:    "accepted ball announces scores",
			payload: payload,
			setup: func(f *FakeService) {
				f.EnterBallFunc = func(_ context.Context, req scorecardservice.EnterBallRequest) (scorecardservice.EnterBallResult, error) {
					assert.Equal(t, gameID, req.GameID)
					assert.Equal(t, playerID, req.PlayerID)
					assert.Equal(t, "X", req.Value)
					return results.SuccessResult[scorecardevents.ScoresComputedPayloadV1, scorecardevents.BallRejectedPayloadV1](
						scorecardevents.ScoresComputedPayloadV1{GameID: req.GameID},
					), nil
				}
			},
			wantTopics: []string{scorecardevents.ScoresComputedV1, topics.ScopedTopic(scorecardevents.ScoresComputedV1, gameID.String())},
			wantTrace:  []string{"EnterBall"},
		},
		{
			name:    "refused ball announces rejection",
			payload: payload,
			setup: func(f *FakeService) {
				f.EnterBallFunc = func(_ context.Context, req scorecardservice.EnterBallRequest) (scorecardservice.EnterBallResult, error) {
					return results.FailureResult[scorecardevents.ScoresComputedPayloadV1](scorecardevents.BallRejectedPayloadV1{
						GameID: req.GameID, Code: scorecardservice.CodeIllegalBall, Reason: "illegal ball",
					}), nil
				}
			},
			wantTopics: []string{scorecardevents.BallRejectedV1},
			wantTrace:  []string{"EnterBall"},
		},
		{
			name:    "service error is retried",
			payload: payload,
			setup: func(f *FakeService) {
				f.EnterBallFunc = func(context.Context, scorecardservice.EnterBallRequest) (scorecardservice.EnterBallResult, error) {
					return scorecardservice.EnterBallResult{}, errors.New("store unavailable")
				}
			},
			wantErr:   true,
			wantTrace: []string{"EnterBall"},
		},
		{
			name:      "nil payload",
			payload:   nil,
			setup:     func(*FakeService) {},
			wantErr:   true,
			wantTrace: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			tt.setup(svc)

			out, err := newTestHandlers(svc).HandleBallEntered(context.Background(), tt.payload)
			assert.Equal(t, tt.wantTrace, svc.Trace())
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			got := make([]string, len(out))
			for i, r := range out {
				got[i] = r.Topic
			}
			assert.Equal(t, tt.wantTopics, got)
		})
	}
}
