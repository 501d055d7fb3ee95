package game

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentGame(difficulty Difficulty, b *Board) *Game {
	return &Game{
		Board:      b,
		Status:     Playing,
		Turn:       Human,
		Difficulty: difficulty,
		rnd:        testRand(),
	}
}

func TestFirstRevealScenario(t *testing.T) {
	g, err := NewGame(Params{Rows: 10, Cols: 10, MineCount: 10}, testRand())
	require.NoError(t, err)

	result := g.Apply(Human, Reveal(5, 5))
	require.True(t, result.OK)
	assert.Equal(t, Playing, g.Status)
	assert.GreaterOrEqual(t, g.CellsRevealed(), 1)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			cell, ok := g.Board.CellAt(5+dr, 5+dc)
			require.True(t, ok)
			assert.False(t, cell.Mine)
		}
	}
}

func TestGameConfigRejected(t *testing.T) {
	_, err := NewGame(Params{Rows: 10, Cols: 10, MineCount: 95}, testRand())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLossIsTerminal(t *testing.T) {
	g := fragmentGame(None, fragment(4, 4, Point{2, 2}))

	result := g.Apply(Human, Reveal(2, 2))
	require.True(t, result.OK)
	assert.Equal(t, Lost, result.Status)
	assert.Equal(t, Lost, g.Status)

	assert.False(t, g.Apply(Human, Reveal(0, 0)).OK)
	assert.False(t, g.Apply(Human, Flag(0, 0)).OK)
	cell, _ := g.Board.CellAt(0, 0)
	assert.False(t, cell.Flagged)
}

func TestWinSameCall(t *testing.T) {
	// mines in opposite corners leave no zero cell, so no flood fill
	// interferes with the move order
	g := fragmentGame(None, fragment(2, 3, Point{0, 0}, Point{1, 2}))

	for _, p := range []Point{{0, 1}, {0, 2}, {1, 0}} {
		result := g.Apply(Human, Reveal(p.Row, p.Col))
		require.True(t, result.OK)
		assert.Equal(t, Playing, result.Status)
	}
	result := g.Apply(Human, Reveal(1, 1))
	require.True(t, result.OK)
	assert.Equal(t, Won, result.Status, "status must flip in the winning call")
	assert.Equal(t, Won, g.Status)
	assert.False(t, g.Apply(Human, Flag(0, 0)).OK)
}

func TestTurnAlternation(t *testing.T) {
	g := fragmentGame(Easy, fragment(5, 5, Point{0, 0}))
	require.True(t, g.Alternating())
	require.Equal(t, Human, g.Turn)

	// a rejected move keeps the turn
	assert.False(t, g.Apply(Human, Reveal(9, 9)).OK)
	assert.Equal(t, Human, g.Turn)

	// the solver may not jump the queue
	assert.False(t, g.Apply(AI, Reveal(4, 4)).OK)
	_, _, ok := g.PlayAIMove()
	assert.False(t, ok)

	require.True(t, g.Apply(Human, Flag(0, 0)).OK)
	assert.Equal(t, AI, g.Turn)

	// and the human may not move on the solver's turn
	assert.False(t, g.Apply(Human, Reveal(4, 4)).OK)

	action, result, ok := g.PlayAIMove()
	require.True(t, ok)
	assert.Equal(t, ActionReveal, action.Kind)
	if result.Status == Playing {
		assert.Equal(t, Human, g.Turn)
	}
}

func TestSoloGameHasNoSolverSeat(t *testing.T) {
	g := fragmentGame(None, fragment(4, 4, Point{3, 3}))
	require.False(t, g.Alternating())

	require.True(t, g.Apply(Human, Reveal(0, 0)).OK)
	assert.Equal(t, Human, g.Turn, "turn never passes in a solo game")

	assert.False(t, g.Apply(AI, Reveal(1, 1)).OK)
	_, _, ok := g.PlayAIMove()
	assert.False(t, ok)
}

func TestForfeit(t *testing.T) {
	g := fragmentGame(None, fragment(4, 4, Point{3, 3}))
	require.True(t, g.Apply(Human, Flag(3, 3)).OK)

	g.Forfeit()
	assert.Equal(t, Lost, g.Status)
	assert.False(t, g.Apply(Human, Reveal(0, 0)).OK)

	g.Forfeit() // idempotent on a finished game
	assert.Equal(t, Lost, g.Status)
}

func TestGobRoundTrip(t *testing.T) {
	g, err := NewGame(
		Params{Rows: 10, Cols: 10, MineCount: 10, Difficulty: Medium},
		testRand(),
	)
	require.NoError(t, err)
	require.True(t, g.Apply(Human, Reveal(5, 5)).OK)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(g))

	var restored Game
	require.NoError(t, gob.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&restored))

	assert.Equal(t, g.Status, restored.Status)
	assert.Equal(t, g.Turn, restored.Turn)
	assert.Equal(t, g.Board.Cells, restored.Board.Cells)
	assert.Equal(t, g.Board.RevealedCount, restored.Board.RevealedCount)

	// a decoded game keeps playing: the solver seat recreates its rand
	if restored.Turn == AI {
		_, result, ok := restored.PlayAIMove()
		assert.True(t, ok)
		assert.NotEqual(t, result.Status, Status(-1))
	}
}

func TestFlagsRemainingAccessor(t *testing.T) {
	g := fragmentGame(None, fragment(4, 4, Point{0, 0}, Point{1, 3}))
	assert.Equal(t, 2, g.FlagsRemaining())
	g.Apply(Human, Flag(2, 2))
	assert.Equal(t, 1, g.FlagsRemaining())
	assert.Equal(t, 0, g.CellsRevealed())
}
