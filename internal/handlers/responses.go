package handlers

import (
	"time"

	"github.com/nfrund/hallrush/internal/game"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlayerResponse is one seat in a StateResponse.
type PlayerResponse struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
	Skips    int    `json:"skips"`
}

// StateResponse is the JSON snapshot served by /api/state.
type StateResponse struct {
	GameID       string           `json:"game_id"`
	Players      []PlayerResponse `json:"players"`
	Turn         int              `json:"turn"`
	CurrentName  string           `json:"current_player"`
	LastCardTime time.Time        `json:"last_card_time"`
	Winner       string           `json:"winner,omitempty"`
	Log          []string         `json:"log"`
}

// NewStateResponse builds the snapshot from a session and its journal.
func NewStateResponse(session *game.Session, log []string) *StateResponse {
	players := make([]PlayerResponse, len(session.Roster))
	for i, p := range session.Roster {
		players[i] = PlayerResponse{
			Name:     p.Name,
			Color:    p.Color,
			Position: session.Positions[i],
			Skips:    session.Skips[i],
		}
	}
	return &StateResponse{
		GameID:       session.GameID,
		Players:      players,
		Turn:         session.Turn,
		CurrentName:  session.Roster.Name(session.Turn),
		LastCardTime: session.LastCardTime,
		Winner:       session.WinnerName(),
		Log:          log,
	}
}
