package bowling

import "encoding/json"

// FrameResult is the derived state of one frame.
type FrameResult struct {
	Frame    int            `json:"frame"`
	Balls    []ResolvedBall `json:"balls"`
	Complete bool           `json:"complete"`
	Score    *int           `json:"score"`
}

// Scorecard is the engine output for one player.
type Scorecard struct {
	Frames     [FrameCount]FrameResult `json:"frames"`
	Cumulative [FrameCount]*int        `json:"cumulative"`
}

// Total returns the final score once every frame is complete.
func (s Scorecard) Total() (int, bool) {
	last := s.Cumulative[FrameCount-1]
	if last == nil {
		return 0, false
	}
	return *last, true
}

// Running returns the latest known cumulative score, zero before frame 1 completes.
func (s Scorecard) Running() int {
	total := 0
	for _, c := range s.Cumulative {
		if c == nil {
			break
		}
		total = *c
	}
	return total
}

// MarshalJSON encodes an unknown ball as null.
func (b ResolvedBall) MarshalJSON() ([]byte, error) {
	if !b.Known {
		return []byte("null"), nil
	}
	return json.Marshal(b.Pins)
}

// UnmarshalJSON accepts a pin count or null.
func (b *ResolvedBall) UnmarshalJSON(data []byte) error {
	var pins *int
	if err := json.Unmarshal(data, &pins); err != nil {
		return err
	}
	if pins == nil {
		*b = Unknown
		return nil
	}
	*b = known(*pins)
	return nil
}

// throwLine is every resolved ball in throwing order. A strike in frames 1-9 has no
// second throw, so its second slot never appears in the line.
type throwLine struct {
	throws []ResolvedBall
	start  [FrameCount]int
}

func buildThrowLine(resolved [FrameCount][]ResolvedBall) throwLine {
	var line throwLine
	line.throws = make([]ResolvedBall, 0, 2*FrameCount+1)
	for i, balls := range resolved {
		line.start[i] = len(line.throws)
		if i+1 == LastFrame {
			line.throws = append(line.throws, balls...)
			continue
		}
		line.throws = append(line.throws, balls[0])
		if !isStrike(balls[0]) {
			line.throws = append(line.throws, balls[1])
		}
	}
	return line
}

// nextThrows collects up to count known pin values thrown after the given frame. It stops
// at the first throw that has not been entered, so fewer than count values means the
// bonus is not yet available.
func (l throwLine) nextThrows(frame, count int) []int {
	if frame >= FrameCount {
		return nil
	}
	out := make([]int, 0, count)
	for _, t := range l.throws[l.start[frame]:] {
		if len(out) == count || !t.Known {
			break
		}
		out = append(out, t.Pins)
	}
	return out
}

func isStrike(b ResolvedBall) bool { return b.Known && b.Pins == MaxPins }

func isSpare(b1, b2 ResolvedBall) bool {
	return b1.Known && b2.Known && inRange(b1.Pins) && inRange(b2.Pins) && b1.Pins+b2.Pins == MaxPins
}

// ComputeScores derives every frame result and the running totals from a snapshot.
// It keeps no state between calls.
func ComputeScores(frames Frames) Scorecard {
	var resolved [FrameCount][]ResolvedBall
	for i := range frames {
		resolved[i] = resolveFrame(i+1, frames[i])
	}
	line := buildThrowLine(resolved)

	var card Scorecard
	for i := range resolved {
		var score int
		var ok bool
		if i+1 == LastFrame {
			score, ok = scoreLastFrame(resolved[i])
		} else {
			score, ok = scoreFrame(resolved[i], line, i+1)
		}
		fr := FrameResult{Frame: i + 1, Balls: resolved[i], Complete: ok}
		if ok {
			fr.Score = &score
		}
		card.Frames[i] = fr
	}

	running := 0
	for i, fr := range card.Frames {
		if !fr.Complete {
			break
		}
		running += *fr.Score
		total := running
		card.Cumulative[i] = &total
	}
	return card
}

func scoreFrame(balls []ResolvedBall, line throwLine, frame int) (int, bool) {
	b1, b2 := balls[0], balls[1]
	switch {
	case isStrike(b1):
		bonus := line.nextThrows(frame, 2)
		if len(bonus) < 2 {
			return 0, false
		}
		return MaxPins + bonus[0] + bonus[1], true
	case isSpare(b1, b2):
		bonus := line.nextThrows(frame, 1)
		if len(bonus) < 1 {
			return 0, false
		}
		return MaxPins + bonus[0], true
	case b1.Known && b2.Known:
		return b1.Pins + b2.Pins, true
	}
	return 0, false
}

func scoreLastFrame(balls []ResolvedBall) (int, bool) {
	b1, b2, b3 := balls[0], balls[1], balls[2]
	switch {
	case isStrike(b1), isSpare(b1, b2):
		if !b2.Known || !b3.Known {
			return 0, false
		}
		return b1.Pins + b2.Pins + b3.Pins, true
	case b1.Known && b2.Known:
		return b1.Pins + b2.Pins, true
	}
	return 0, false
}
