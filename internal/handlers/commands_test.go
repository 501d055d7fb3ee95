package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfall/sweeper-server/internal/game"
)

func newTestGame(t *testing.T, difficulty game.Difficulty) *game.Game {
	t.Helper()
	g, err := game.NewGame(game.Params{
		Rows: 10, Cols: 10, MineCount: 10, Difficulty: difficulty,
	}, game.NewRand())
	require.NoError(t, err)
	return g
}

func TestExecuteCommandOpen(t *testing.T) {
	g := newTestGame(t, game.None)
	require.NoError(t, executeCommand(g, "o 4 4"))
	assert.Greater(t, g.CellsRevealed(), 0)
	assert.Equal(t, 1, g.Moves)
}

func TestExecuteCommandFlag(t *testing.T) {
	g := newTestGame(t, game.None)
	require.NoError(t, executeCommand(g, "f 0 0"))
	assert.Equal(t, 9, g.FlagsRemaining())
}

func TestExecuteCommandForfeit(t *testing.T) {
	g := newTestGame(t, game.None)
	require.NoError(t, executeCommand(g, "x"))
	assert.Equal(t, game.Lost, g.Status)
}

func TestExecuteCommandSolverMove(t *testing.T) {
	g := newTestGame(t, game.Easy)
	require.NoError(t, executeCommand(g, "o 4 4"))
	require.Equal(t, game.AI, g.Turn)
	moves := g.Moves
	require.NoError(t, executeCommand(g, "a"))
	assert.Equal(t, moves+1, g.Moves)
}

func TestExecuteCommandRejectsMalformed(t *testing.T) {
	g := newTestGame(t, game.None)
	assert.Error(t, executeCommand(g, "z"))
	assert.Error(t, executeCommand(g, "o 1"))
	assert.Error(t, executeCommand(g, "o one two"))
	assert.Error(t, executeCommand(g, "x 1 2"))
}

func TestExecuteCommandIgnoresIllegalMove(t *testing.T) {
	g := newTestGame(t, game.None)
	require.NoError(t, executeCommand(g, "o 100 100"))
	assert.Equal(t, 0, g.Moves)
	assert.Equal(t, game.Playing, g.Status)
}
