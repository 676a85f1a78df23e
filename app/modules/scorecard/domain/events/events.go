// Package scorecardevents defines the scorecard topics and their payloads.
package scorecardevents

import (
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/google/uuid"
)

const (
	// BallEnteredV1 is consumed: a lane terminal or client typed a ball.
	BallEnteredV1 = "bowling.ball.entered.v1"
	// ScoresComputedV1 is published after an accepted ball with the player's scorecard.
	ScoresComputedV1 = "bowling.scores.computed.v1"
	// BallRejectedV1 is published when the input gate refuses a ball.
	BallRejectedV1 = "bowling.ball.rejected.v1"
	// ScorecardComputeRequestV1 is the NATS request/reply subject for stateless scoring.
	ScorecardComputeRequestV1 = "bowling.scorecard.compute.v1"
)

// BallEnteredPayloadV1 enters one ball for a player of a live game.
type BallEnteredPayloadV1 struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Frame    int       `json:"frame"`
	Ball     int       `json:"ball"`
	Value    string    `json:"value"`
}

// ScoresComputedPayloadV1 carries the scorecard after an accepted ball.
type ScoresComputedPayloadV1 struct {
	GameID    uuid.UUID                      `json:"game_id"`
	Scorecard scorecardtypes.PlayerScorecard `json:"scorecard"`
}

// BallRejectedPayloadV1 reports a refused ball.
type BallRejectedPayloadV1 struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Frame    int       `json:"frame"`
	Ball     int       `json:"ball"`
	Value    string    `json:"value"`
	Code     string    `json:"code"`
	Reason   string    `json:"reason"`
}

// ScorecardComputeRequestPayloadV1 asks for scorecards of raw snapshots.
type ScorecardComputeRequestPayloadV1 struct {
	Players []scorecardtypes.PlayerSnapshot `json:"players"`
}

// ScorecardComputeResponsePayloadV1 answers a compute request. Error is set instead of
// Players when the request was malformed.
type ScorecardComputeResponsePayloadV1 struct {
	Players []scorecardtypes.PlayerScorecard `json:"players,omitempty"`
	Error   string                           `json:"error,omitempty"`
}
