package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the game's failure modes.
var (
	// ErrStateUnavailable is returned when an action needs a saved game but
	// no game has been started yet.
	ErrStateUnavailable = errors.New("game state unavailable")

	// ErrConfigUnavailable is returned when the tile table or card deck is
	// missing or cannot be parsed.
	ErrConfigUnavailable = errors.New("game configuration unavailable")

	// ErrGameOver is returned when a roll is attempted after a player has
	// already reached the final tile.
	ErrGameOver = errors.New("game is already over")
)
