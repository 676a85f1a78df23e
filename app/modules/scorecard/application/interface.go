package scorecardservice

import (
	"context"

	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	"github.com/google/uuid"
)

type (
	ComputeResult   = results.OperationResult[[]scorecardtypes.PlayerScorecard, Failure]
	GameResult      = results.OperationResult[scorecardtypes.GameView, Failure]
	ImportResult    = results.OperationResult[ImportSummary, Failure]
	EnterBallResult = results.OperationResult[scorecardevents.ScoresComputedPayloadV1, scorecardevents.BallRejectedPayloadV1]
)

// Service defines the scorecard operations.
type Service interface {
	// ComputeScorecards scores raw snapshots without storing anything.
	ComputeScorecards(ctx context.Context, players []scorecardtypes.PlayerSnapshot) (ComputeResult, error)

	// CheckBall asks the input gate about one ball.
	CheckBall(ctx context.Context, req CheckBallRequest) CheckBallResponse

	// ImportScorecard parses a CSV or XLSX scorecard, gates every ball and scores it.
	ImportScorecard(ctx context.Context, fileName string, data []byte) (ImportResult, error)

	// CreateGame starts a live game for the named players.
	CreateGame(ctx context.Context, names []string) (GameResult, error)

	// GetGame returns a live game with every player's scorecard.
	GetGame(ctx context.Context, gameID uuid.UUID) (GameResult, error)

	// EnterBall stores one ball for a player of a live game and rescores them.
	EnterBall(ctx context.Context, req EnterBallRequest) (EnterBallResult, error)
}
