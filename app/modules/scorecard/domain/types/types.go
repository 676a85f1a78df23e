// Package scorecardtypes holds the scorecard values shared by the service and its
// transports.
package scorecardtypes

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
)

// PlayerSnapshot is one player's raw balls, one slice per frame.
type PlayerSnapshot struct {
	PlayerID uuid.UUID  `json:"player_id,omitempty"`
	Name     string     `json:"name"`
	Frames   [][]string `json:"frames"`
}

// PlayerScorecard is the derived view of a player: canonical tokens, which ball slots
// accept input and the computed scores. Rejected lists stored balls the input gate
// refuses; they are still scored as given.
type PlayerScorecard struct {
	PlayerID   uuid.UUID             `json:"player_id,omitempty"`
	Name       string                `json:"name"`
	Balls      [][]string            `json:"balls"`
	Enabled    [][]bool              `json:"enabled"`
	Frames     []bowling.FrameResult `json:"frames"`
	Cumulative []*int                `json:"cumulative"`
	Total      *int                  `json:"total"`
	Running    int                   `json:"running"`
	Rejected   []RejectedBall        `json:"rejected,omitempty"`
}

// NewPlayerScorecard scores frames and builds the view.
func NewPlayerScorecard(id uuid.UUID, name string, frames bowling.Frames) PlayerScorecard {
	card := bowling.ComputeScores(frames)
	balls := frames.Tokens()

	enabled := make([][]bool, bowling.FrameCount)
	for i := range balls {
		enabled[i] = bowling.EnabledBalls(i+1, balls[i])
	}

	var total *int
	if t, ok := card.Total(); ok {
		total = &t
	}

	var rejected []RejectedBall
	for _, ib := range bowling.Audit(frames) {
		rejected = append(rejected, RejectedBall{
			Player: name,
			Frame:  ib.Frame,
			Ball:   ib.Ball,
			Value:  ib.Token,
			Reason: fmt.Sprintf("%v: frame %d ball %d", ib.Err, ib.Frame, ib.Ball),
		})
	}

	return PlayerScorecard{
		PlayerID:   id,
		Name:       name,
		Balls:      balls,
		Enabled:    enabled,
		Frames:     card.Frames[:],
		Cumulative: card.Cumulative[:],
		Total:      total,
		Running:    card.Running(),
		Rejected:   rejected,
	}
}

// Complete reports whether every frame is scored.
func (p PlayerScorecard) Complete() bool { return p.Total != nil }

// Player is a bowler in a live game.
type Player struct {
	ID     uuid.UUID
	Name   string
	Frames bowling.Frames
}

// Game is a live multi-player game.
type Game struct {
	ID        uuid.UUID
	Players   []Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone deep copies the game so the copy can leave a lock.
func (g Game) Clone() Game {
	out := g
	out.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Frames = p.Frames.Clone()
		out.Players[i] = p
	}
	return out
}

// Player looks a player up by id.
func (g Game) Player(id uuid.UUID) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// GameView is a game with every player's scorecard.
type GameView struct {
	GameID    uuid.UUID         `json:"game_id"`
	Players   []PlayerScorecard `json:"players"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewGameView scores every player of g.
func NewGameView(g Game) GameView {
	players := make([]PlayerScorecard, len(g.Players))
	for i, p := range g.Players {
		players[i] = NewPlayerScorecard(p.ID, p.Name, p.Frames)
	}
	return GameView{
		GameID:    g.ID,
		Players:   players,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// RejectedBall describes a ball the input gate refused.
type RejectedBall struct {
	Player string `json:"player"`
	Row    int    `json:"row,omitempty"`
	Frame  int    `json:"frame"`
	Ball   int    `json:"ball"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}
