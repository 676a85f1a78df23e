package bowling

import "fmt"

// fullRack reports a first ball that took every pin, whether typed as X or 10.
func fullRack(r RawBall) bool {
	return r.Kind == KindStrike || (r.Kind == KindCount && r.Count == MaxPins)
}

// pinsOf is the pin count a raw ball contributes on its own. Spares and unusable tokens
// have no standalone count.
func pinsOf(r RawBall) (int, bool) {
	switch r.Kind {
	case KindMiss:
		return 0, true
	case KindStrike:
		return MaxPins, true
	case KindCount:
		return r.Count, true
	}
	return 0, false
}

func inRange(n int) bool { return n >= 0 && n <= MaxPins }

// IsValidFirstBall reports whether raw may open a frame. Empty is allowed so the bowler
// can keep typing.
func IsValidFirstBall(raw string) bool {
	return validFirst(ParseRaw(raw))
}

func validFirst(r RawBall) bool {
	switch r.Kind {
	case KindEmpty, KindMiss, KindStrike:
		return true
	case KindCount:
		return inRange(r.Count)
	}
	return false
}

// IsValidSecondBall reports whether raw may follow firstRaw as the second ball of frame.
// In frames 1-9 the two balls may not knock down more than ten pins. In the tenth frame a
// strike on the first ball racks fresh pins for the second.
func IsValidSecondBall(raw, firstRaw string, frame int) bool {
	if frame < 1 || frame > FrameCount {
		return false
	}
	return validSecond(ParseRaw(raw), ParseRaw(firstRaw), frame)
}

func validSecond(r, first RawBall, frame int) bool {
	switch r.Kind {
	case KindEmpty, KindMiss:
		return true
	case KindSpare:
		return first.Present() && validFirst(first) && !fullRack(first)
	case KindStrike:
		return frame == LastFrame
	case KindCount:
		if !inRange(r.Count) {
			return false
		}
		if frame < LastFrame && first.Kind == KindStrike {
			return false
		}
		if frame == LastFrame && fullRack(first) {
			return true
		}
		firstPins, ok := pinsOf(first)
		if !ok {
			return true
		}
		return inRange(firstPins) && r.Count <= MaxPins-firstPins
	}
	return false
}

// IsValidThirdBall reports whether raw may be the bonus ball of the tenth frame. The ball
// must be enabled; after that the pins left standing by the second ball bound the count.
func IsValidThirdBall(raw, firstRaw, secondRaw string) bool {
	return validThird(ParseRaw(raw), ParseRaw(firstRaw), ParseRaw(secondRaw))
}

func validThird(r, first, second RawBall) bool {
	if r.Kind == KindEmpty {
		return true
	}
	if !thirdEnabled(first, second) {
		return false
	}
	b1 := Resolve(first, Unknown)
	b2 := Resolve(second, b1)
	fresh := (isStrike(b1) && isStrike(b2)) || (!isStrike(b1) && isSpare(b1, b2))

	switch r.Kind {
	case KindMiss:
		return true
	case KindStrike:
		return fresh
	case KindSpare:
		return isStrike(b1) && b2.Known && inRange(b2.Pins) && b2.Pins < MaxPins
	case KindCount:
		if !inRange(r.Count) {
			return false
		}
		if fresh {
			return true
		}
		return b2.Known && inRange(b2.Pins) && r.Count <= MaxPins-b2.Pins
	}
	return false
}

func thirdEnabled(first, second RawBall) bool {
	b1 := Resolve(first, Unknown)
	b2 := Resolve(second, b1)
	return isStrike(b1) || isSpare(b1, b2) || second.Kind == KindSpare
}

// NextBallEnabled reports whether the given ball of a frame accepts input, given the raw
// tokens already entered for that frame.
func NextBallEnabled(frame, ballIndex int, frameRawBalls []string) bool {
	if frame < 1 || frame > FrameCount || ballIndex < 1 || ballIndex > BallsIn(frame) {
		return false
	}
	balls := make([]RawBall, BallsIn(frame))
	for i := 0; i < len(frameRawBalls) && i < len(balls); i++ {
		balls[i] = ParseRaw(frameRawBalls[i])
	}
	return enabled(frame, ballIndex, balls)
}

func enabled(frame, ballIndex int, balls []RawBall) bool {
	at := func(i int) RawBall {
		if i < len(balls) {
			return balls[i]
		}
		return RawBall{}
	}
	switch {
	case ballIndex == 1:
		return true
	case frame < LastFrame:
		return ballIndex == 2 && !fullRack(at(0))
	case ballIndex == 2:
		return true
	default:
		return thirdEnabled(at(0), at(1))
	}
}

// EnabledBalls returns the enable mask for every ball slot of a frame.
func EnabledBalls(frame int, frameRawBalls []string) []bool {
	if frame < 1 || frame > FrameCount {
		return nil
	}
	mask := make([]bool, BallsIn(frame))
	for i := range mask {
		mask[i] = NextBallEnabled(frame, i+1, frameRawBalls)
	}
	return mask
}

func validBall(frame, ball int, r RawBall, balls []RawBall) bool {
	at := func(i int) RawBall {
		if i < len(balls) {
			return balls[i]
		}
		return RawBall{}
	}
	switch ball {
	case 1:
		return validFirst(r)
	case 2:
		return validSecond(r, at(0), frame)
	default:
		return validThird(r, at(0), at(1))
	}
}

// EnterBall validates raw for the given slot and returns a new snapshot with the ball
// stored. Later balls of the same frame that become disabled or no longer legal are
// cleared. The input snapshot is never modified.
func EnterBall(frames Frames, frame, ball int, raw string) (Frames, error) {
	if frame < 1 || frame > FrameCount {
		return frames, fmt.Errorf("%w: %d", ErrFrameOutOfRange, frame)
	}
	if ball < 1 || ball > BallsIn(frame) {
		return frames, fmt.Errorf("%w: frame %d ball %d", ErrBallOutOfRange, frame, ball)
	}

	r := ParseRaw(raw)
	balls := make([]RawBall, BallsIn(frame))
	copy(balls, frames[frame-1])

	if !r.IsEmpty() && !enabled(frame, ball, balls) {
		return frames, fmt.Errorf("%w: frame %d ball %d", ErrBallDisabled, frame, ball)
	}
	if !validBall(frame, ball, r, balls) {
		return frames, fmt.Errorf("%w: frame %d ball %d %q", ErrIllegalBall, frame, ball, raw)
	}

	out := frames.Clone()
	balls[ball-1] = r
	for i := ball; i < len(balls); i++ {
		if balls[i].IsEmpty() {
			continue
		}
		if !enabled(frame, i+1, balls) || !validBall(frame, i+1, balls[i], balls) {
			balls[i] = RawBall{}
		}
	}
	out[frame-1] = balls
	return out, nil
}

// IllegalBall is a stored ball that the gate refuses in its position.
type IllegalBall struct {
	Frame int
	Ball  int
	Token string
	Err   error
}

// Audit replays a snapshot through the gate and reports every stored ball EnterBall
// would have refused. The snapshot is not modified and its scores are unaffected.
func Audit(frames Frames) []IllegalBall {
	var out []IllegalBall
	for i := range frames {
		frame := i + 1
		balls := make([]RawBall, BallsIn(frame))
		copy(balls, frames[i])
		for j, r := range balls {
			if r.IsEmpty() {
				continue
			}
			var err error
			switch {
			case !enabled(frame, j+1, balls):
				err = ErrBallDisabled
			case !validBall(frame, j+1, r, balls):
				err = ErrIllegalBall
			default:
				continue
			}
			out = append(out, IllegalBall{Frame: frame, Ball: j + 1, Token: r.String(), Err: err})
		}
	}
	return out
}
