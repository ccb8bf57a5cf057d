package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the queued values in order. Each value is the raw Intn
// result, so a die roll of r is queued as r-1.
type fixedRand struct {
	values []int
	calls  int
}

func (f *fixedRand) Intn(n int) int {
	if f.calls >= len(f.values) {
		panic("fixedRand: no more values queued")
	}
	v := f.values[f.calls]
	f.calls++
	if v < 0 || v >= n {
		panic("fixedRand: queued value out of range")
	}
	return v
}

func dieRolls(rolls ...int) *fixedRand {
	values := make([]int, len(rolls))
	for i, r := range rolls {
		values[i] = r - 1
	}
	return &fixedRand{values: values}
}

func twoPlayers() Roster {
	return NewRoster([]string{"Ada", "Grace"})
}

func TestResolveRoll_ClampsToFinalTileAndWins(t *testing.T) {
	engine := NewEngine(dieRolls(6))
	state := NewState(2, time.Now())
	state.Positions[0] = 40

	result, err := engine.ResolveRoll(state, twoPlayers(), TileTable{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeWin, result.Outcome.Kind)
	assert.Equal(t, 0, result.Outcome.Player)
	assert.Equal(t, TotalTiles, result.State.Positions[0])
	assert.Equal(t, 0, result.State.Turn, "a win must not advance the turn")
	require.NotNil(t, result.State.Winner)
	assert.Equal(t, 0, *result.State.Winner)
	assert.Equal(t, []string{
		"Ada rolled a 6 and moved to tile 45",
		"🎉 Ada wins the game!",
	}, result.Lines)

	// The input state is left untouched.
	assert.Equal(t, 40, state.Positions[0])
	assert.Nil(t, state.Winner)
}

func TestResolveRoll_WetFloorSlidesBack(t *testing.T) {
	engine := NewEngine(dieRolls(3))
	state := NewState(2, time.Now())
	state.Positions[0] = 10
	tiles := TileTable{13: {Type: TileWetFloor, Effect: -4}}

	result, err := engine.ResolveRoll(state, twoPlayers(), tiles)
	require.NoError(t, err)

	assert.Equal(t, OutcomeContinue, result.Outcome.Kind)
	assert.Equal(t, 9, result.State.Positions[0])
	assert.Equal(t, 1, result.State.Turn)
	assert.Equal(t, []string{"Ada rolled a 3 and moved to tile 13. Slipped on a wet floor and moved to tile 9"}, result.Lines)
}

func TestResolveRoll_SkipConsumesTurnWithoutRolling(t *testing.T) {
	rng := dieRolls()
	engine := NewEngine(rng)
	state := NewState(2, time.Now())
	state.Skips[0] = 2
	state.Positions[0] = 12

	result, err := engine.ResolveRoll(state, twoPlayers(), TileTable{12: {Type: TileElevator, Destination: 30}})
	require.NoError(t, err)

	assert.Equal(t, OutcomeTurnSkipped, result.Outcome.Kind)
	assert.Equal(t, 0, rng.calls, "no die is rolled on a skipped turn")
	assert.Equal(t, 1, result.State.Skips[0])
	assert.Equal(t, 12, result.State.Positions[0])
	assert.Equal(t, 1, result.State.Turn)
	assert.Equal(t, []string{"Ada had to skip a turn."}, result.Lines)
}

func TestResolveRoll_QuestionTileCommitsNothing(t *testing.T) {
	engine := NewEngine(dieRolls(4))
	state := NewState(2, time.Now())
	state.Positions[0] = 4
	tiles := TileTable{8: {Type: TileQuestion}}

	result, err := engine.ResolveRoll(state, twoPlayers(), tiles)
	require.NoError(t, err)

	assert.Equal(t, OutcomeDrawCard, result.Outcome.Kind)
	assert.Equal(t, 4, result.State.Positions[0], "position is not committed before the card draw")
	assert.Equal(t, 0, result.State.Turn, "turn is not committed before the card draw")
	assert.Equal(t, []string{"Ada rolled a 4 and moved to tile 8. Landed on a question tile!"}, result.Lines)
}

func TestResolveRoll_TileEffects(t *testing.T) {
	tests := []struct {
		name      string
		effect    TileEffect
		wantPos   int
		wantSkips int
		wantLine  string
	}{
		{
			name:      "hall monitor adds skips",
			effect:    TileEffect{Type: TileHallMonitor, SkipTurns: 2},
			wantPos:   7,
			wantSkips: 2,
			wantLine:  "Ada rolled a 2 and moved to tile 7. Got caught by the hall monitor and must skip a turn",
		},
		{
			name:     "vending machine is relative",
			effect:   TileEffect{Type: TileVendingMachine, Effect: 3},
			wantPos:  10,
			wantLine: "Ada rolled a 2 and moved to tile 7. Used a vending machine and ended up on tile 10",
		},
		{
			name:     "elevator is absolute",
			effect:   TileEffect{Type: TileElevator, Destination: 20},
			wantPos:  20,
			wantLine: "Ada rolled a 2 and moved to tile 7. Took the elevator to tile 20",
		},
		{
			name:     "fire drill is absolute",
			effect:   TileEffect{Type: TileFireDrill, Destination: 1},
			wantPos:  1,
			wantLine: "Ada rolled a 2 and moved to tile 7. Fire drill! Sent back to tile 1",
		},
		{
			name:     "shortcut reads its target from effect",
			effect:   TileEffect{Type: TileShortcut, Effect: 25, Destination: 99},
			wantPos:  25,
			wantLine: "Ada rolled a 2 and moved to tile 7. Found a shortcut to tile 25",
		},
		{
			name:     "energy drink is relative",
			effect:   TileEffect{Type: TileEnergyDrink, Effect: 5},
			wantPos:  12,
			wantLine: "Ada rolled a 2 and moved to tile 7. Drank an energy drink and sprinted to tile 12",
		},
		{
			name:     "unknown type is ignored",
			effect:   TileEffect{Type: "trampoline", Effect: 10},
			wantPos:  7,
			wantLine: "Ada rolled a 2 and moved to tile 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(dieRolls(2))
			state := NewState(2, time.Now())
			state.Positions[0] = 5

			result, err := engine.ResolveRoll(state, twoPlayers(), TileTable{7: tt.effect})
			require.NoError(t, err)

			assert.Equal(t, OutcomeContinue, result.Outcome.Kind)
			assert.Equal(t, tt.wantPos, result.State.Positions[0])
			assert.Equal(t, tt.wantSkips, result.State.Skips[0])
			assert.Equal(t, []string{tt.wantLine}, result.Lines)
			assert.Equal(t, 1, result.State.Turn)
		})
	}
}

func TestResolveRoll_EffectOnFinalTileIsNotReclamped(t *testing.T) {
	engine := NewEngine(dieRolls(5))
	state := NewState(2, time.Now())
	state.Positions[1] = 42
	state.Turn = 1
	tiles := TileTable{TotalTiles: {Type: TileEnergyDrink, Effect: 3}}

	result, err := engine.ResolveRoll(state, twoPlayers(), tiles)
	require.NoError(t, err)

	assert.Equal(t, OutcomeWin, result.Outcome.Kind)
	assert.Equal(t, 48, result.State.Positions[1])
	assert.Equal(t, 1, result.State.Turn)
}

func TestResolveRoll_EffectCanLeaveFinalTile(t *testing.T) {
	engine := NewEngine(dieRolls(6))
	state := NewState(2, time.Now())
	state.Positions[0] = 43
	tiles := TileTable{TotalTiles: {Type: TileFireDrill, Destination: 30}}

	result, err := engine.ResolveRoll(state, twoPlayers(), tiles)
	require.NoError(t, err)

	assert.Equal(t, OutcomeContinue, result.Outcome.Kind)
	assert.Equal(t, 30, result.State.Positions[0])
	assert.Nil(t, result.State.Winner)
}

func TestResolveRoll_TurnWrapsAround(t *testing.T) {
	engine := NewEngine(dieRolls(1))
	state := NewState(3, time.Now())
	state.Turn = 2

	result, err := engine.ResolveRoll(state, NewRoster([]string{"A", "B", "C"}), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.State.Turn)
	assert.Equal(t, 1, result.State.Positions[2])
}

func TestResolveRoll_RejectsInvalidState(t *testing.T) {
	engine := NewEngine(dieRolls(1))

	t.Run("turn out of range", func(t *testing.T) {
		state := NewState(2, time.Now())
		state.Turn = 2
		_, err := engine.ResolveRoll(state, twoPlayers(), nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("roster mismatch", func(t *testing.T) {
		state := NewState(3, time.Now())
		_, err := engine.ResolveRoll(state, twoPlayers(), nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestResolveRoll_PositionsStayOnBoardWithoutEffects(t *testing.T) {
	rolls := make([]int, 0, 60)
	for i := 0; i < 60; i++ {
		rolls = append(rolls, i%6+1)
	}
	engine := NewEngine(dieRolls(rolls...))
	state := NewState(4, time.Now())
	roster := NewRoster([]string{"A", "B", "C", "D"})

	for i := 0; i < 60 && !state.Finished(); i++ {
		result, err := engine.ResolveRoll(state, roster, nil)
		require.NoError(t, err)
		for _, pos := range result.State.Positions {
			assert.GreaterOrEqual(t, pos, 0)
			assert.LessOrEqual(t, pos, TotalTiles)
		}
		state = result.State
	}
	assert.True(t, state.Finished())
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "continue", OutcomeContinue.String())
	assert.Equal(t, "turn-skipped", OutcomeTurnSkipped.String())
	assert.Equal(t, "card-draw-triggered", OutcomeDrawCard.String())
	assert.Equal(t, "win", OutcomeWin.String())
}
