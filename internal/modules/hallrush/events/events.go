// Package events holds the payloads published on the Hall Rush topics.
package events

// GameStarted is published when a new game begins.
type GameStarted struct {
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

// TurnResolved is published after every roll, including skipped turns.
type TurnResolved struct {
	GameID  string   `json:"game_id"`
	Player  int      `json:"player"`
	Roll    int      `json:"roll"`
	Outcome string   `json:"outcome"`
	Lines   []string `json:"lines"`
}

// CardDrawn is published after a card has been applied.
type CardDrawn struct {
	GameID string   `json:"game_id"`
	Text   string   `json:"text"`
	Action string   `json:"action,omitempty"`
	Lines  []string `json:"lines"`
}

// GameWon is published when a player reaches the final tile.
type GameWon struct {
	GameID string `json:"game_id"`
	Player int    `json:"player"`
	Name   string `json:"name"`
}

// GameReset is published when the board is cleared.
type GameReset struct {
	GameID string `json:"game_id"`
}

// BoardChanged is published when data files change outside the server.
type BoardChanged struct {
	Path string `json:"path"`
	Op   string `json:"op"`
}
