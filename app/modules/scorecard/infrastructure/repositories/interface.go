package scorecarddb

import (
	"context"
	"time"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
)

// UpdateFunc derives a player's new frames from the current ones. Returning an error
// leaves the stored frames untouched.
type UpdateFunc func(current bowling.Frames) (bowling.Frames, error)

// Repository stores live games for the lifetime of the process.
type Repository interface {
	CreateGame(ctx context.Context, game scorecardtypes.Game) error
	GetGame(ctx context.Context, gameID uuid.UUID) (scorecardtypes.Game, error)
	UpdatePlayerFrames(ctx context.Context, gameID, playerID uuid.UUID, fn UpdateFunc) (scorecardtypes.Game, error)
	DeleteIdleGames(ctx context.Context, idleSince time.Time) (int, error)
}
