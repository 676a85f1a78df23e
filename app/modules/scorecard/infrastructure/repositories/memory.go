package scorecarddb

import (
	"context"
	"fmt"
	"sync"
	"time"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/google/uuid"
)

// MemoryRepository keeps games in a map guarded by a RWMutex. Games handed out are deep
// copies, so callers never share frames with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*scorecardtypes.Game
	now   func() time.Time
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		games: make(map[uuid.UUID]*scorecardtypes.Game),
		now:   time.Now,
	}
}

func (r *MemoryRepository) CreateGame(_ context.Context, game scorecardtypes.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[game.ID]; ok {
		return fmt.Errorf("%w: %s", ErrGameExists, game.ID)
	}
	g := game.Clone()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = r.now()
	}
	g.UpdatedAt = g.CreatedAt
	r.games[g.ID] = &g
	return nil
}

func (r *MemoryRepository) GetGame(_ context.Context, gameID uuid.UUID) (scorecardtypes.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameID]
	if !ok {
		return scorecardtypes.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g.Clone(), nil
}

// UpdatePlayerFrames runs fn under the write lock so a player's frames change as one
// step.
func (r *MemoryRepository) UpdatePlayerFrames(_ context.Context, gameID, playerID uuid.UUID, fn UpdateFunc) (scorecardtypes.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return scorecardtypes.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	idx := -1
	for i, p := range g.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return scorecardtypes.Game{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	next, err := fn(g.Players[idx].Frames.Clone())
	if err != nil {
		return scorecardtypes.Game{}, err
	}
	g.Players[idx].Frames = next
	g.UpdatedAt = r.now()
	return g.Clone(), nil
}

// DeleteIdleGames drops games not updated since idleSince and reports how many went.
func (r *MemoryRepository) DeleteIdleGames(_ context.Context, idleSince time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, g := range r.games {
		if g.UpdatedAt.Before(idleSince) {
			delete(r.games, id)
			n++
		}
	}
	return n, nil
}
