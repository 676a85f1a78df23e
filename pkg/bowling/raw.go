package bowling

import (
	"strconv"
	"strings"
)

// Kind classifies a raw ball token.
type Kind int

const (
	KindEmpty Kind = iota
	KindMiss
	KindStrike
	KindSpare
	KindCount
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMiss:
		return "miss"
	case KindStrike:
		return "strike"
	case KindSpare:
		return "spare"
	case KindCount:
		return "count"
	default:
		return "invalid"
	}
}

// RawBall is a parsed ball token as the bowler typed it.
type RawBall struct {
	Kind  Kind
	Count int // only meaningful for KindCount
	Token string
}

// ParseRaw converts a user-entered token into a RawBall.
func ParseRaw(token string) RawBall {
	t := strings.TrimSpace(token)
	switch {
	case t == "":
		return RawBall{Kind: KindEmpty}
	case t == "-":
		return RawBall{Kind: KindMiss, Token: t}
	case strings.EqualFold(t, "x"):
		return RawBall{Kind: KindStrike, Token: "X"}
	case t == "/":
		return RawBall{Kind: KindSpare, Token: t}
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return RawBall{Kind: KindInvalid, Token: t}
	}
	return RawBall{Kind: KindCount, Count: n, Token: t}
}

// IsEmpty reports whether nothing has been entered for the ball.
func (r RawBall) IsEmpty() bool { return r.Kind == KindEmpty }

// Present reports whether the ball holds a usable token.
func (r RawBall) Present() bool { return r.Kind != KindEmpty && r.Kind != KindInvalid }

// String renders the canonical token ("" for an empty ball).
func (r RawBall) String() string {
	switch r.Kind {
	case KindEmpty:
		return ""
	case KindMiss:
		return "-"
	case KindStrike:
		return "X"
	case KindSpare:
		return "/"
	case KindCount:
		return strconv.Itoa(r.Count)
	default:
		return r.Token
	}
}

// ResolvedBall is a pin count, or unknown when there is not enough information.
type ResolvedBall struct {
	Pins  int
	Known bool
}

// Unknown is the zero ResolvedBall.
var Unknown = ResolvedBall{}

func known(pins int) ResolvedBall { return ResolvedBall{Pins: pins, Known: true} }

// Resolve converts a raw ball into pins. prior is the preceding resolved ball in the
// same frame and is only consulted for a spare. Counts are not range checked here.
func Resolve(raw RawBall, prior ResolvedBall) ResolvedBall {
	switch raw.Kind {
	case KindMiss:
		return known(0)
	case KindStrike:
		return known(MaxPins)
	case KindCount:
		return known(raw.Count)
	case KindSpare:
		if !prior.Known {
			return Unknown
		}
		return known(max(0, MaxPins-prior.Pins))
	default:
		return Unknown
	}
}

// RawToPins parses and resolves a token in one step. priorToken is the previous ball of
// the same frame, or "" when there is none.
func RawToPins(token, priorToken string) ResolvedBall {
	prior := Resolve(ParseRaw(priorToken), Unknown)
	return Resolve(ParseRaw(token), prior)
}
