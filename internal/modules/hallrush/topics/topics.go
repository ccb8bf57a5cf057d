package topics

import (
	"github.com/nfrund/hallrush/internal/modules/hallrush/events"
	"github.com/nfrund/hallrush/internal/pubsub"
)

var (
	// GameStarted is published when the setup form starts a new game.
	GameStarted = pubsub.NewEvent[events.GameStarted]("hallrush.game.started", "A new game was started from the setup form")

	// TurnResolved is published after each roll or skipped turn.
	TurnResolved = pubsub.NewEvent[events.TurnResolved]("hallrush.turn.resolved", "A turn was resolved; carries the narration lines")

	// CardDrawn is published after a Hall Rush card was applied.
	CardDrawn = pubsub.NewEvent[events.CardDrawn]("hallrush.card.drawn", "A Hall Rush card was drawn and applied")

	// GameWon is published when a token reaches the final tile.
	GameWon = pubsub.NewEvent[events.GameWon]("hallrush.game.won", "A player reached the final tile")

	// GameReset is published when the board is reset.
	GameReset = pubsub.NewEvent[events.GameReset]("hallrush.game.reset", "The board was reset for the current roster")

	// BoardChanged is published by the data directory watcher.
	BoardChanged = pubsub.NewEvent[events.BoardChanged]("hallrush.board.changed", "Game data changed on disk outside the server")
)
