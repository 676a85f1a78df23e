package bowling

import "fmt"

const (
	// FrameCount is the number of frames in a game.
	FrameCount = 10
	// MaxPins is the number of pins in a rack.
	MaxPins = 10
	// LastFrame is the ordinal of the tenth frame.
	LastFrame = FrameCount
)

// BallsIn returns how many ball slots a frame has (1-based ordinal).
func BallsIn(frame int) int {
	if frame == LastFrame {
		return 3
	}
	return 2
}

// Frames is one player's raw snapshot. Index 0 holds frame 1.
type Frames [FrameCount][]RawBall

// ParseFrames builds a snapshot from raw tokens, one slice per frame. Missing frames
// and missing balls are treated as empty.
func ParseFrames(tokens [][]string) (Frames, error) {
	var f Frames
	if len(tokens) > FrameCount {
		return f, fmt.Errorf("%w: got %d", ErrTooManyFrames, len(tokens))
	}
	for i, frame := range tokens {
		if len(frame) > BallsIn(i+1) {
			return f, fmt.Errorf("%w: frame %d has %d balls", ErrTooManyBalls, i+1, len(frame))
		}
		balls := make([]RawBall, len(frame))
		for j, tok := range frame {
			balls[j] = ParseRaw(tok)
		}
		f[i] = balls
	}
	return f, nil
}

// Ball returns the raw ball at the 1-based frame and ball position, or an empty ball.
func (f Frames) Ball(frame, ball int) RawBall {
	if frame < 1 || frame > FrameCount || ball < 1 || ball > len(f[frame-1]) {
		return RawBall{}
	}
	return f[frame-1][ball-1]
}

// Tokens renders the snapshot back to canonical tokens.
func (f Frames) Tokens() [][]string {
	out := make([][]string, FrameCount)
	for i, frame := range f {
		row := make([]string, BallsIn(i+1))
		for j := 0; j < len(frame) && j < len(row); j++ {
			row[j] = frame[j].String()
		}
		out[i] = row
	}
	return out
}

// Clone returns a deep copy so callers can edit without touching the original.
func (f Frames) Clone() Frames {
	var out Frames
	for i, frame := range f {
		if frame == nil {
			continue
		}
		out[i] = append([]RawBall(nil), frame...)
	}
	return out
}

// resolveFrame resolves the balls of one frame left to right.
func resolveFrame(frame int, balls []RawBall) []ResolvedBall {
	n := min(len(balls), BallsIn(frame))
	out := make([]ResolvedBall, BallsIn(frame))
	prior := Unknown
	for i := 0; i < n; i++ {
		out[i] = Resolve(balls[i], prior)
		prior = out[i]
	}
	return out
}
