package game

import (
	"fmt"
	"math/rand"
)

// Randomizer is the source of die rolls and card picks.
type Randomizer interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// globalRand uses the auto-seeded, goroutine-safe math/rand source.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// OutcomeKind tells the caller where control goes after a roll.
type OutcomeKind int

const (
	// OutcomeContinue means the move was committed and the turn advanced.
	OutcomeContinue OutcomeKind = iota
	// OutcomeTurnSkipped means a pending skip was consumed instead of rolling.
	OutcomeTurnSkipped
	// OutcomeDrawCard means the token landed on a question tile. Nothing was
	// committed and the caller must run the card draw next.
	OutcomeDrawCard
	// OutcomeWin means the mover reached the final tile. The turn is not advanced.
	OutcomeWin
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeContinue:
		return "continue"
	case OutcomeTurnSkipped:
		return "turn-skipped"
	case OutcomeDrawCard:
		return "card-draw-triggered"
	case OutcomeWin:
		return "win"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome describes what a roll did.
type Outcome struct {
	Kind OutcomeKind
	// Player is the seat that acted.
	Player int
	// Roll is the die value, or 0 when the turn was skipped.
	Roll int
}

// RollResult carries the next state, the narration, and the outcome of a roll.
type RollResult struct {
	State   State
	Lines   []string
	Outcome Outcome
}

// Engine resolves rolls and card draws.
type Engine struct {
	rng Randomizer
}

// NewEngine creates an engine. A nil randomizer uses math/rand.
func NewEngine(rng Randomizer) *Engine {
	if rng == nil {
		rng = globalRand{}
	}
	return &Engine{rng: rng}
}

func (e *Engine) rollDie() int {
	return e.rng.Intn(6) + 1
}

// ResolveRoll plays one turn for the player whose turn it is.
func (e *Engine) ResolveRoll(s State, roster Roster, tiles TileTable) (RollResult, error) {
	if err := s.Validate(); err != nil {
		return RollResult{}, err
	}
	if len(roster) != s.PlayerCount() {
		return RollResult{}, fmt.Errorf("%w: roster has %d players, state has %d", ErrInvalidState, len(roster), s.PlayerCount())
	}

	current := s.Turn
	name := roster.Name(current)
	next := s.Clone()

	if next.Skips[current] > 0 {
		next.Skips[current]--
		next.Turn = (current + 1) % next.PlayerCount()
		return RollResult{
			State:   next,
			Lines:   []string{fmt.Sprintf("%s had to skip a turn.", name)},
			Outcome: Outcome{Kind: OutcomeTurnSkipped, Player: current},
		}, nil
	}

	roll := e.rollDie()
	pos := min(next.Positions[current]+roll, TotalTiles)
	line := fmt.Sprintf("%s rolled a %d and moved to tile %d", name, roll, pos)

	if effect, ok := tiles.Lookup(pos); ok {
		landing := effect.apply(pos, next.Skips, current)
		line += landing.suffix
		if landing.drawCard {
			// Nothing is committed until the card has been drawn.
			return RollResult{
				State:   s.Clone(),
				Lines:   []string{line},
				Outcome: Outcome{Kind: OutcomeDrawCard, Player: current, Roll: roll},
			}, nil
		}
		pos = landing.position
	}

	next.Positions[current] = pos
	lines := []string{line}

	if pos >= TotalTiles {
		winner := current
		next.Winner = &winner
		lines = append(lines, fmt.Sprintf("🎉 %s wins the game!", name))
		return RollResult{
			State:   next,
			Lines:   lines,
			Outcome: Outcome{Kind: OutcomeWin, Player: current, Roll: roll},
		}, nil
	}

	next.Turn = (current + 1) % next.PlayerCount()
	return RollResult{
		State:   next,
		Lines:   lines,
		Outcome: Outcome{Kind: OutcomeContinue, Player: current, Roll: roll},
	}, nil
}
