package scorecardservice

import (
	"context"

	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
)

// CheckBallRequest asks whether Value may go into ball Ball of frame Frame, given the
// balls already typed in that frame.
type CheckBallRequest struct {
	Frame      int      `json:"frame"`
	Ball       int      `json:"ball"`
	Value      string   `json:"value"`
	FrameBalls []string `json:"frame_balls"`
}

// CheckBallResponse is the gate's answer. Enabled says whether the slot accepts input at
// all; Valid whether this value may be typed there.
type CheckBallResponse struct {
	Valid   bool   `json:"valid"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

// CheckBall runs the input gate. It touches no state.
func (s *ScorecardService) CheckBall(ctx context.Context, req CheckBallRequest) CheckBallResponse {
	if req.Frame < 1 || req.Frame > bowling.FrameCount {
		return CheckBallResponse{Reason: bowling.ErrFrameOutOfRange.Error()}
	}
	if req.Ball < 1 || req.Ball > bowling.BallsIn(req.Frame) {
		return CheckBallResponse{Reason: bowling.ErrBallOutOfRange.Error()}
	}

	balls := make([]string, bowling.BallsIn(req.Frame))
	copy(balls, req.FrameBalls)

	resp := CheckBallResponse{Enabled: bowling.NextBallEnabled(req.Frame, req.Ball, balls)}

	if bowling.ParseRaw(req.Value).IsEmpty() {
		resp.Valid = true
		return resp
	}
	if !resp.Enabled {
		resp.Reason = bowling.ErrBallDisabled.Error()
		return resp
	}

	switch req.Ball {
	case 1:
		resp.Valid = bowling.IsValidFirstBall(req.Value)
	case 2:
		resp.Valid = bowling.IsValidSecondBall(req.Value, balls[0], req.Frame)
	case 3:
		resp.Valid = bowling.IsValidThirdBall(req.Value, balls[0], balls[1])
	}
	if !resp.Valid {
		resp.Reason = bowling.ErrIllegalBall.Error()
	}

	s.logger.DebugContext(ctx, "Ball checked",
		"frame", req.Frame,
		"ball", req.Ball,
		"value", req.Value,
		"valid", resp.Valid,
	)
	return resp
}
