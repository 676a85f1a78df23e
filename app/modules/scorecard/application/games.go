package scorecardservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
)

// EnterBallRequest enters Value as ball Ball of frame Frame for a player.
type EnterBallRequest struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Frame    int       `json:"frame"`
	Ball     int       `json:"ball"`
	Value    string    `json:"value"`
}

// CreateGame validates the player names and stores a new empty game.
func (s *ScorecardService) CreateGame(ctx context.Context, names []string) (GameResult, error) {
	gameID := uuid.New()
	return withTelemetry(s, ctx, "CreateGame", gameID, func(ctx context.Context) (GameResult, error) {
		if reason := validateNames(names); reason != "" {
			return results.FailureResult[scorecardtypes.GameView](Failure{Code: CodeInvalidRequest, Reason: reason}), nil
		}

		now := s.now()
		game := scorecardtypes.Game{ID: gameID, CreatedAt: now, UpdatedAt: now}
		for _, n := range names {
			game.Players = append(game.Players, scorecardtypes.Player{
				ID:   uuid.New(),
				Name: strings.TrimSpace(n),
			})
		}

		if err := s.repo.CreateGame(ctx, game); err != nil {
			return GameResult{}, fmt.Errorf("storing game: %w", err)
		}

		s.logger.InfoContext(ctx, "Game created",
			attr.GameID("game_id", gameID),
			attr.Int("players", len(game.Players)),
		)
		return results.SuccessResult[scorecardtypes.GameView, Failure](scorecardtypes.NewGameView(game)), nil
	})
}

// GetGame loads a game and scores every player.
func (s *ScorecardService) GetGame(ctx context.Context, gameID uuid.UUID) (GameResult, error) {
	return withTelemetry(s, ctx, "GetGame", gameID, func(ctx context.Context) (GameResult, error) {
		game, err := s.repo.GetGame(ctx, gameID)
		if err != nil {
			if errors.Is(err, scorecarddb.ErrGameNotFound) {
				return results.FailureResult[scorecardtypes.GameView](Failure{Code: CodeNotFound, Reason: err.Error()}), nil
			}
			return GameResult{}, err
		}
		return results.SuccessResult[scorecardtypes.GameView, Failure](scorecardtypes.NewGameView(game)), nil
	})
}

// EnterBall gates the ball and, if it is accepted, stores it and rescores the player.
// The gate runs inside the repository update so concurrent entries for the same player
// see each other.
func (s *ScorecardService) EnterBall(ctx context.Context, req EnterBallRequest) (EnterBallResult, error) {
	return withTelemetry(s, ctx, "EnterBall", req.GameID, func(ctx context.Context) (EnterBallResult, error) {
		reject := func(code, reason string) (EnterBallResult, error) {
			s.metrics.RecordBallRejected(ctx, req.Frame, req.Ball)
			return results.FailureResult[scorecardevents.ScoresComputedPayloadV1](scorecardevents.BallRejectedPayloadV1{
				GameID:   req.GameID,
				PlayerID: req.PlayerID,
				Frame:    req.Frame,
				Ball:     req.Ball,
				Value:    req.Value,
				Code:     code,
				Reason:   reason,
			}), nil
		}

		game, err := s.repo.UpdatePlayerFrames(ctx, req.GameID, req.PlayerID, func(current bowling.Frames) (bowling.Frames, error) {
			return bowling.EnterBall(current, req.Frame, req.Ball, req.Value)
		})
		switch {
		case err == nil:
		case errors.Is(err, scorecarddb.ErrGameNotFound), errors.Is(err, scorecarddb.ErrPlayerNotFound):
			return reject(CodeNotFound, err.Error())
		case errors.Is(err, bowling.ErrFrameOutOfRange), errors.Is(err, bowling.ErrBallOutOfRange):
			return reject(CodeInvalidRequest, err.Error())
		case errors.Is(err, bowling.ErrBallDisabled), errors.Is(err, bowling.ErrIllegalBall):
			return reject(CodeIllegalBall, err.Error())
		default:
			return EnterBallResult{}, err
		}

		player, ok := game.Player(req.PlayerID)
		if !ok {
			return EnterBallResult{}, fmt.Errorf("player %s missing after update", req.PlayerID)
		}
		card := scorecardtypes.NewPlayerScorecard(player.ID, player.Name, player.Frames)
		s.metrics.RecordGameScored(ctx, card.Complete(), card.Running)

		s.logger.InfoContext(ctx, "Ball entered",
			attr.GameID("game_id", req.GameID),
			attr.PlayerID("player_id", req.PlayerID),
			attr.Int("frame", req.Frame),
			attr.Int("ball", req.Ball),
			attr.Int("running", card.Running),
		)
		return results.SuccessResult[scorecardevents.ScoresComputedPayloadV1, scorecardevents.BallRejectedPayloadV1](
			scorecardevents.ScoresComputedPayloadV1{GameID: req.GameID, Scorecard: card},
		), nil
	})
}

// validateNames returns a reason when the names cannot form a game.
func validateNames(names []string) string {
	if len(names) == 0 {
		return "at least one player is required"
	}
	if len(names) > MaxPlayers {
		return fmt.Sprintf("at most %d players per game", MaxPlayers)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return "player names must not be empty"
		}
		if utf8.RuneCountInString(n) > MaxNameLength {
			return fmt.Sprintf("player name %q is longer than %d characters", n, MaxNameLength)
		}
		key := strings.ToLower(n)
		if seen[key] {
			return fmt.Sprintf("duplicate player name %q", n)
		}
		seen[key] = true
	}
	return ""
}
