package scorecardservice

import (
	"context"
	"fmt"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ComputeScorecards scores each snapshot independently. Players are scored in parallel;
// the output keeps the input order. Balls the input gate refuses are scored as given and
// listed in each scorecard's Rejected.
func (s *ScorecardService) ComputeScorecards(ctx context.Context, players []scorecardtypes.PlayerSnapshot) (ComputeResult, error) {
	return withTelemetry(s, ctx, "ComputeScorecards", uuid.Nil, func(ctx context.Context) (ComputeResult, error) {
		if len(players) == 0 {
			return results.FailureResult[[]scorecardtypes.PlayerScorecard](Failure{
				Code:   CodeInvalidRequest,
				Reason: "at least one player is required",
			}), nil
		}
		if len(players) > MaxPlayers {
			return results.FailureResult[[]scorecardtypes.PlayerScorecard](Failure{
				Code:   CodeInvalidRequest,
				Reason: fmt.Sprintf("at most %d players per request", MaxPlayers),
			}), nil
		}

		cards := make([]scorecardtypes.PlayerScorecard, len(players))
		var g errgroup.Group
		for i, p := range players {
			g.Go(func() error {
				frames, err := bowling.ParseFrames(p.Frames)
				if err != nil {
					return fmt.Errorf("player %q: %w", displayName(p.Name, i), err)
				}
				cards[i] = scorecardtypes.NewPlayerScorecard(p.PlayerID, p.Name, frames)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return results.FailureResult[[]scorecardtypes.PlayerScorecard](Failure{
				Code:   CodeInvalidRequest,
				Reason: err.Error(),
			}), nil
		}

		for _, c := range cards {
			for _, r := range c.Rejected {
				s.metrics.RecordBallRejected(ctx, r.Frame, r.Ball)
			}
			s.metrics.RecordGameScored(ctx, c.Complete(), c.Running)
		}
		return results.SuccessResult[[]scorecardtypes.PlayerScorecard, Failure](cards), nil
	})
}

func displayName(name string, idx int) string {
	if name == "" {
		return fmt.Sprintf("#%d", idx+1)
	}
	return name
}
