package scorecardservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorecardService_CreateGame(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		names     []string
		repoErr   error
		wantOK    bool
		wantErr   bool
		wantTrace []string
	}{
		{name: "two players", names: []string{"Ana", " Ben "}, wantOK: true, wantTrace: []string{"CreateGame"}},
		{name: "no players", names: nil, wantTrace: []string{}},
		{name: "blank name", names: []string{"Ana", "  "}, wantTrace: []string{}},
		{name: "duplicate name", names: []string{"Ana", "ana"}, wantTrace: []string{}},
		{name: "long name", names: []string{strings.Repeat("a", MaxNameLength+1)}, wantTrace: []string{}},
		{name: "too many", names: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}, wantTrace: []string{}},
		{name: "store error", names: []string{"Ana"}, repoErr: errors.New("down"), wantErr: true, wantTrace: []string{"CreateGame"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeRepository()
			repo.CreateGameFunc = func(context.Context, scorecardtypes.Game) error { return tt.repoErr }
			s := newTestService(repo, nil)

			res, err := s.CreateGame(ctx, tt.names)
			assert.Equal(t, tt.wantTrace, repo.Trace())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if !tt.wantOK {
				require.True(t, res.IsFailure())
				assert.Equal(t, CodeInvalidRequest, res.Failure.Code)
				return
			}

			require.True(t, res.IsSuccess())
			view := *res.Success
			require.Len(t, view.Players, 2)
			assert.Equal(t, "Ben", view.Players[1].Name)
			assert.NotEqual(t, uuid.Nil, view.Players[0].PlayerID)
			assert.Equal(t, repo.LastCreated.ID, view.GameID)
		})
	}
}

func TestScorecardService_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("not found is a failure", func(t *testing.T) {
		s := newTestService(NewFakeRepository(), nil)
		res, err := s.GetGame(ctx, uuid.New())
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.Equal(t, CodeNotFound, res.Failure.Code)
	})

	t.Run("store error is returned", func(t *testing.T) {
		repo := NewFakeRepository()
		repo.GetGameFunc = func(context.Context, uuid.UUID) (scorecardtypes.Game, error) {
			return scorecardtypes.Game{}, errors.New("down")
		}
		_, err := newTestService(repo, nil).GetGame(ctx, uuid.New())
		assert.Error(t, err)
	})
}

func TestScorecardService_EnterBall(t *testing.T) {
	ctx := context.Background()
	repo := scorecarddb.NewMemoryRepository()
	s := newTestService(repo, nil)

	created, err := s.CreateGame(ctx, []string{"Ana", "Ben"})
	require.NoError(t, err)
	require.True(t, created.IsSuccess())
	gameID := created.Success.GameID
	ana := created.Success.Players[0].PlayerID
	ben := created.Success.Players[1].PlayerID

	enter := func(player uuid.UUID, frame, ball int, value string) EnterBallResult {
		t.Helper()
		res, err := s.EnterBall(ctx, EnterBallRequest{GameID: gameID, PlayerID: player, Frame: frame, Ball: ball, Value: value})
		require.NoError(t, err)
		return res
	}

	t.Run("strike then open frame scores both", func(t *testing.T) {
		res := enter(ana, 1, 1, "X")
		require.True(t, res.IsSuccess())
		assert.Nil(t, res.Success.Scorecard.Frames[0].Score)

		enter(ana, 2, 1, "3")
		res = enter(ana, 2, 2, "4")
		require.True(t, res.IsSuccess())
		card := res.Success.Scorecard
		assert.Equal(t, gameID, res.Success.GameID)
		require.NotNil(t, card.Frames[0].Score)
		assert.Equal(t, 17, *card.Frames[0].Score)
		assert.Equal(t, 24, card.Running)
	})

	t.Run("illegal ball is rejected and not stored", func(t *testing.T) {
		enter(ben, 1, 1, "6")
		res := enter(ben, 1, 2, "5")
		require.True(t, res.IsFailure())
		assert.Equal(t, ben, res.Failure.PlayerID)
		assert.Equal(t, "5", res.Failure.Value)
		assert.Equal(t, CodeIllegalBall, res.Failure.Code)
		assert.Contains(t, res.Failure.Reason, bowling.ErrIllegalBall.Error())

		view, err := s.GetGame(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, "", view.Success.Players[1].Balls[0][1])
	})

	t.Run("disabled slot is rejected", func(t *testing.T) {
		res := enter(ana, 1, 2, "3")
		require.True(t, res.IsFailure())
		assert.Contains(t, res.Failure.Reason, bowling.ErrBallDisabled.Error())
	})

	t.Run("players do not share frames", func(t *testing.T) {
		view, err := s.GetGame(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, "X", view.Success.Players[0].Balls[0][0])
		assert.Equal(t, "6", view.Success.Players[1].Balls[0][0])
	})

	t.Run("unknown game and player", func(t *testing.T) {
		res, err := s.EnterBall(ctx, EnterBallRequest{GameID: uuid.New(), PlayerID: ana, Frame: 1, Ball: 1, Value: "1"})
		require.NoError(t, err)
		require.True(t, res.IsFailure())
		assert.Equal(t, CodeNotFound, res.Failure.Code)
		assert.Contains(t, res.Failure.Reason, scorecarddb.ErrGameNotFound.Error())

		res = enter(uuid.New(), 1, 1, "1")
		require.True(t, res.IsFailure())
		assert.Contains(t, res.Failure.Reason, scorecarddb.ErrPlayerNotFound.Error())
	})

	t.Run("out of range", func(t *testing.T) {
		res := enter(ana, 11, 1, "1")
		require.True(t, res.IsFailure())
		assert.Equal(t, CodeInvalidRequest, res.Failure.Code)
		res = enter(ana, 3, 3, "1")
		require.True(t, res.IsFailure())
	})
}

func TestScorecardService_EnterBall_StoreError(t *testing.T) {
	repo := NewFakeRepository()
	repo.UpdatePlayerFramesFunc = func(context.Context, uuid.UUID, uuid.UUID, scorecarddb.UpdateFunc) (scorecardtypes.Game, error) {
		return scorecardtypes.Game{}, errors.New("down")
	}
	_, err := newTestService(repo, nil).EnterBall(context.Background(), EnterBallRequest{GameID: uuid.New(), PlayerID: uuid.New(), Frame: 1, Ball: 1, Value: "1"})
	assert.Error(t, err)
	assert.Equal(t, []string{"UpdatePlayerFrames"}, repo.Trace())
}
