package scorecarddb

import "errors"

var (
	// ErrGameNotFound indicates no live game has the requested id.
	ErrGameNotFound = errors.New("game not found")

	// ErrPlayerNotFound indicates the game has no player with the requested id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrGameExists indicates a game with the same id is already stored.
	ErrGameExists = errors.New("game already exists")
)
