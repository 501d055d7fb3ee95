package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, b *Board, a Action) {
	t.Helper()
	switch a.Kind {
	case ActionReveal:
		require.True(t, b.RevealCell(a.Row, a.Col).OK)
	case ActionFlag:
		require.True(t, b.ToggleFlag(a.Row, a.Col).OK)
	}
}

func TestEasyPicksCoveredCell(t *testing.T) {
	b := fragment(3, 3, Point{0, 0})
	require.True(t, b.RevealCell(2, 2).OK)
	b.ToggleFlag(0, 1)

	solver := Solver{Difficulty: Easy}
	for range 20 {
		action, ok := solver.ChooseMove(b, testRand())
		require.True(t, ok)
		assert.Equal(t, ActionReveal, action.Kind)
		cell, inBounds := b.CellAt(action.Row, action.Col)
		require.True(t, inBounds)
		assert.True(t, cell.Covered())
	}
}

func TestSolverNoLegalMove(t *testing.T) {
	b := fragment(2, 2, Point{0, 0})
	b.ToggleFlag(0, 0)
	for _, p := range []Point{{0, 1}, {1, 0}, {1, 1}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}
	require.Empty(t, b.CoveredCells())

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		_, ok := Solver{Difficulty: d}.ChooseMove(b, testRand())
		assert.False(t, ok, "difficulty %s found a move on a finished board", d)
	}
}

func TestMediumFlagAllRule(t *testing.T) {
	// the three revealed 1s all see the lone covered corner
	b := fragment(2, 2, Point{0, 0})
	for _, p := range []Point{{0, 1}, {1, 0}, {1, 1}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}

	action, ok := Solver{Difficulty: Medium}.ChooseMove(b, testRand())
	require.True(t, ok)
	assert.Equal(t, Flag(0, 0), action)
}

func TestMediumOpenOthersRule(t *testing.T) {
	// a revealed 1 with its mine already flagged: the remaining covered
	// neighbor is provably safe
	b := fragment(2, 2, Point{0, 0})
	require.True(t, b.ToggleFlag(0, 0).OK)
	for _, p := range []Point{{1, 0}, {1, 1}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}

	action, ok := Solver{Difficulty: Medium}.ChooseMove(b, testRand())
	require.True(t, ok)
	assert.Equal(t, Reveal(0, 1), action)
}

func TestMediumFallsBackToRandom(t *testing.T) {
	b := fragment(4, 4, Point{3, 3}) // nothing revealed, no deductions

	action, ok := Solver{Difficulty: Medium}.ChooseMove(b, testRand())
	require.True(t, ok)
	assert.Equal(t, ActionReveal, action.Kind)
	cell, _ := b.CellAt(action.Row, action.Col)
	assert.True(t, cell.Covered())
}

func TestHard121Horizontal(t *testing.T) {
	// canonical fragment:  mines at the outer corners of the hidden row
	//
	//   * . *        row 0, covered
	//   1 2 1        row 1, revealed
	b := fragment(2, 3, Point{0, 0}, Point{0, 2})
	for _, p := range []Point{{1, 0}, {1, 1}, {1, 2}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}

	solver := Solver{Difficulty: Hard}

	// one deduction per call, flags first, then the safe center
	want := []Action{Flag(0, 0), Flag(0, 2), Reveal(0, 1)}
	for _, expected := range want {
		action, ok := solver.ChooseMove(b, testRand())
		require.True(t, ok)
		require.Equal(t, expected, action)

		if expected == want[len(want)-1] {
			// once both mines are flagged the medium tier agrees on
			// the same safe cell
			fromMedium, ok := Solver{Difficulty: Medium}.ChooseMove(b, testRand())
			require.True(t, ok)
			assert.Equal(t, expected, fromMedium)
		}
		apply(t, b, action)
	}

	assert.True(t, b.Won())
}

func TestHard121Vertical(t *testing.T) {
	//   * 1
	//   . 2
	//   * 1
	b := fragment(3, 2, Point{0, 0}, Point{2, 0})
	for _, p := range []Point{{0, 1}, {1, 1}, {2, 1}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}

	solver := Solver{Difficulty: Hard}
	for _, expected := range []Action{Flag(0, 0), Flag(2, 0), Reveal(1, 0)} {
		action, ok := solver.ChooseMove(b, testRand())
		require.True(t, ok)
		require.Equal(t, expected, action)
		apply(t, b, action)
	}

	assert.True(t, b.Won())
}

func TestHardFallsBackToMedium(t *testing.T) {
	b := fragment(2, 2, Point{0, 0})
	for _, p := range []Point{{0, 1}, {1, 0}, {1, 1}} {
		require.True(t, b.RevealCell(p.Row, p.Col).OK)
	}

	action, ok := Solver{Difficulty: Hard}.ChooseMove(b, testRand())
	require.True(t, ok)
	assert.Equal(t, Flag(0, 0), action)
}

func TestHardIgnoresRevealedFlank(t *testing.T) {
	//   * . *        row 0, covered
	//   1 2 1        row 1, revealed
	//   0 0 0        row 2, revealed by flood fill
	//
	// the lower flank is open, so the only deduction comes from the
	// upper one
	b := fragment(3, 3, Point{0, 0}, Point{0, 2})
	require.True(t, b.RevealCell(2, 0).OK)

	action, ok := Solver{Difficulty: Hard}.ChooseMove(b, testRand())
	require.True(t, ok)
	assert.Equal(t, Flag(0, 0), action)
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		input string
		want  Difficulty
	}{
		{"", None},
		{"none", None},
		{"easy", Easy},
		{"Medium", Medium},
		{"HARD", Hard},
	}
	for _, c := range cases {
		got, err := ParseDifficulty(c.input)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := ParseDifficulty("nightmare")
	assert.Error(t, err)
}
