// Package game implements the Hall Rush turn resolution rules.
//
// Everything in this package is pure: operations take a State by value and
// return a modified clone together with the narration lines they produced.
// Loading, persisting and rendering are left to the caller.
package game

import (
	"errors"
	"fmt"
	"time"
)

// TotalTiles is the index of the final tile. Reaching it wins the game.
const TotalTiles = 45

// MaxPlayers is the number of token colors available on the board.
const MaxPlayers = 4

// playerColors is indexed in parallel with the roster.
var playerColors = []string{"red", "green", "yellow", "blue"}

// ErrInvalidState is returned when a State does not satisfy its invariants.
var ErrInvalidState = errors.New("invalid game state")

// Player is a single seat at the table.
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Roster is the ordered list of players, indexed in parallel with
// State.Positions and State.Skips.
type Roster []Player

// NewRoster builds a roster from display names, assigning token colors by seat.
func NewRoster(names []string) Roster {
	roster := make(Roster, len(names))
	for i, name := range names {
		roster[i] = Player{Name: name, Color: playerColors[i%len(playerColors)]}
	}
	return roster
}

// Name returns the display name for a seat, falling back to a generic label
// when the index is outside the roster.
func (r Roster) Name(i int) string {
	if i < 0 || i >= len(r) {
		return fmt.Sprintf("Player %d", i+1)
	}
	return r[i].Name
}

// State is the mutable game record.
type State struct {
	Positions    []int     `json:"positions"`
	Turn         int       `json:"turn"`
	Skips        []int     `json:"skips"`
	LastCardTime time.Time `json:"last_card_time"`
	// Winner is the seat that reached the final tile, if any.
	Winner *int `json:"winner,omitempty"`
}

// NewState returns a zeroed state for the given number of players.
func NewState(players int, now time.Time) State {
	return State{
		Positions:    make([]int, players),
		Turn:         0,
		Skips:        make([]int, players),
		LastCardTime: now,
	}
}

// PlayerCount returns the number of seats in the game.
func (s State) PlayerCount() int {
	return len(s.Positions)
}

// Finished reports whether a player has already won.
func (s State) Finished() bool {
	return s.Winner != nil
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s State) Clone() State {
	c := s
	c.Positions = append([]int(nil), s.Positions...)
	c.Skips = append([]int(nil), s.Skips...)
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return c
}

// Validate checks the invariants the engine relies on.
func (s State) Validate() error {
	n := len(s.Positions)
	if n == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidState)
	}
	if len(s.Skips) != n {
		return fmt.Errorf("%w: %d positions but %d skip counters", ErrInvalidState, n, len(s.Skips))
	}
	if s.Turn < 0 || s.Turn >= n {
		return fmt.Errorf("%w: turn %d out of range for %d players", ErrInvalidState, s.Turn, n)
	}
	for i, skip := range s.Skips {
		if skip < 0 {
			return fmt.Errorf("%w: player %d has negative skips", ErrInvalidState, i)
		}
	}
	return nil
}

// Session is the persisted record: the game state plus the roster that plays it.
type Session struct {
	GameID string `json:"game_id"`
	Roster Roster `json:"players"`
	State
}

// NewSession creates a fresh session sized to the roster.
func NewSession(gameID string, roster Roster, now time.Time) *Session {
	return &Session{
		GameID: gameID,
		Roster: roster,
		State:  NewState(len(roster), now),
	}
}

// Validate checks the state invariants and that the roster matches them.
func (s *Session) Validate() error {
	if err := s.State.Validate(); err != nil {
		return err
	}
	if len(s.Roster) != s.PlayerCount() {
		return fmt.Errorf("%w: roster has %d players, state has %d", ErrInvalidState, len(s.Roster), s.PlayerCount())
	}
	return nil
}

// WinnerName returns the display name of the winner, or "" while the game is running.
func (s *Session) WinnerName() string {
	if s.Winner == nil {
		return ""
	}
	return s.Roster.Name(*s.Winner)
}
