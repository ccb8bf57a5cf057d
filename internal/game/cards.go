package game

import (
	"fmt"

	"github.com/nfrund/hallrush/internal/domain"
)

// CardAction identifies the global effect of a Hall Rush card.
type CardAction string

const (
	ActionMoveLeaderBack    CardAction = "move_leader_back"
	ActionMoveAllForward    CardAction = "move_all_forward"
	ActionSkipNextPlayer    CardAction = "skip_next_player"
	ActionResetAllPositions CardAction = "reset_all_positions"
)

// Card is a drawable event card. Cards without an action are pure narration.
type Card struct {
	Text   string     `json:"text" validate:"required"`
	Action CardAction `json:"action,omitempty"`
	Value  int        `json:"value,omitempty" validate:"gte=0"`
}

// Deck is the full list of drawable cards.
type Deck []Card

// CardResult is the outcome of drawing one card.
type CardResult struct {
	State State
	Card  Card
	Lines []string
}

// ResolveCardDraw draws one card uniformly at random and applies its action.
// The turn pointer is never advanced by a card.
func (e *Engine) ResolveCardDraw(s State, roster Roster, deck Deck) (CardResult, error) {
	if len(deck) == 0 {
		return CardResult{}, fmt.Errorf("%w: deck has no cards", domain.ErrConfigUnavailable)
	}
	if err := s.Validate(); err != nil {
		return CardResult{}, err
	}

	card := deck[e.rng.Intn(len(deck))]
	next := s.Clone()
	lines := []string{fmt.Sprintf("🃏 Hall Rush card drawn: \"%s\"", card.Text)}
	n := next.PlayerCount()

	switch card.Action {
	case ActionMoveLeaderBack:
		lead := next.Positions[0]
		for _, pos := range next.Positions[1:] {
			lead = max(lead, pos)
		}
		// Every player tied for the lead moves back.
		for i, pos := range next.Positions {
			if pos != lead {
				continue
			}
			next.Positions[i] = max(0, pos-card.Value)
			lines = append(lines, fmt.Sprintf("%s was in the lead and moved back %d spaces.", roster.Name(i), card.Value))
		}

	case ActionMoveAllForward:
		for i := range next.Positions {
			next.Positions[i] = min(TotalTiles, next.Positions[i]+card.Value)
			lines = append(lines, fmt.Sprintf("%s moved forward %d spaces.", roster.Name(i), card.Value))
		}

	case ActionSkipNextPlayer:
		target := (next.Turn + 1) % n
		next.Skips[target] += card.Value
		lines = append(lines, fmt.Sprintf("%s will skip %d turn(s).", roster.Name(target), card.Value))

	case ActionResetAllPositions:
		for i := range next.Positions {
			next.Positions[i] = 0
		}
		lines = append(lines, "All players returned to the start!")
	}

	return CardResult{State: next, Card: card, Lines: lines}, nil
}
