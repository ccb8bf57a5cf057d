package game

import "fmt"

// TileType identifies the effect a special tile applies.
type TileType string

const (
	TileWetFloor       TileType = "wet_floor"
	TileHallMonitor    TileType = "hall_monitor"
	TileVendingMachine TileType = "vending_machine"
	TileElevator       TileType = "elevator"
	TileFireDrill      TileType = "fire_drill"
	TileShortcut       TileType = "shortcut"
	TileEnergyDrink    TileType = "energy_drink"
	TileQuestion       TileType = "question_tile"
)

// TileEffect describes what happens when a token lands on a special tile.
// Which parameters matter depends on Type.
type TileEffect struct {
	Type        TileType `json:"type"`
	Effect      int      `json:"effect,omitempty"`
	Destination int      `json:"destination,omitempty"`
	SkipTurns   int      `json:"skip_turns,omitempty" validate:"gte=0"`
}

// TileTable maps a tile number to its effect.
type TileTable map[int]TileEffect

// Lookup returns the effect configured for a tile.
func (t TileTable) Lookup(tile int) (TileEffect, bool) {
	effect, ok := t[tile]
	return effect, ok
}

// tileLanding is the result of applying one tile effect.
type tileLanding struct {
	position int
	suffix   string
	drawCard bool
}

// apply resolves the effect for a token that landed on pos. It may add to
// skips[current]. Positions are deliberately not re-clamped here.
func (e TileEffect) apply(pos int, skips []int, current int) tileLanding {
	switch e.Type {
	case TileWetFloor:
		pos += e.Effect
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Slipped on a wet floor and moved to tile %d", pos)}
	case TileHallMonitor:
		skips[current] += e.SkipTurns
		return tileLanding{position: pos, suffix: ". Got caught by the hall monitor and must skip a turn"}
	case TileVendingMachine:
		pos += e.Effect
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Used a vending machine and ended up on tile %d", pos)}
	case TileElevator:
		pos = e.Destination
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Took the elevator to tile %d", pos)}
	case TileFireDrill:
		pos = e.Destination
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Fire drill! Sent back to tile %d", pos)}
	case TileShortcut:
		// The shortcut target lives in the effect field.
		pos = e.Effect
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Found a shortcut to tile %d", pos)}
	case TileEnergyDrink:
		pos += e.Effect
		return tileLanding{position: pos, suffix: fmt.Sprintf(". Drank an energy drink and sprinted to tile %d", pos)}
	case TileQuestion:
		return tileLanding{position: pos, suffix: ". Landed on a question tile!", drawCard: true}
	default:
		return tileLanding{position: pos}
	}
}
