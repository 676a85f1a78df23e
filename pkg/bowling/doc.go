// Package bowling scores ten-pin games from raw ball tokens.
//
// Scoring is a pure function of one player's snapshot: ComputeScores resolves every
// ball, walks the throw line once for strike and spare bonuses, and reports each frame's
// contribution and the running totals. The gate functions (IsValidFirstBall,
// IsValidSecondBall, IsValidThirdBall, NextBallEnabled) decide which keystrokes are
// accepted and which ball slots stay open. EnterBall composes the two for callers that
// hold the mutable snapshot.
package bowling
