package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type Difficulty int

const (
	None Difficulty = iota // no solver seat
	Easy
	Medium
	Hard
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return None, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "none"
}

type ActionKind int

const (
	ActionReveal ActionKind = iota
	ActionFlag
)

func (k ActionKind) String() string {
	if k == ActionFlag {
		return "flag"
	}
	return "reveal"
}

type Action struct {
	Kind ActionKind
	Row  int
	Col  int
}

func Reveal(row, col int) Action {
	return Action{Kind: ActionReveal, Row: row, Col: col}
}

func Flag(row, col int) Action {
	return Action{Kind: ActionFlag, Row: row, Col: col}
}

// Solver picks one move per call from current board state alone: no
// memory is carried between calls, so every deduction is re-derived.
// The tiers chain explicitly: Hard falls back to Medium, Medium to
// Easy. Easy is the only tier that guesses; Medium and Hard reach its
// random pick only when none of their rules fire.
type Solver struct {
	Difficulty Difficulty
}

// ChooseMove returns false only when the board holds no covered cell.
func (s Solver) ChooseMove(b *Board, rnd *rand.Rand) (Action, bool) {
	switch s.Difficulty {
	case Hard:
		return chooseHard(b, rnd)
	case Medium:
		return chooseMedium(b, rnd)
	default:
		return chooseEasy(b, rnd)
	}
}

// chooseEasy picks a covered cell uniformly at random.
func chooseEasy(b *Board, rnd *rand.Rand) (Action, bool) {
	covered := b.CoveredCells()
	if len(covered) == 0 {
		return Action{}, false
	}
	p := covered[rnd.IntN(len(covered))]
	return Reveal(p.Row, p.Col), true
}

// chooseMedium runs two deduction passes over revealed numbered cells
// in row-major order, flag-all before open-others, and guesses like
// Easy when neither rule fires anywhere.
//
// Flag-all: a number matched exactly by its unrevealed neighbors
// (flagged ones included, they hide mines too) means every one of them
// is a mine. Open-others: a number matched exactly by its flagged
// neighbors means every remaining covered neighbor is safe.
func chooseMedium(b *Board, rnd *rand.Rand) (Action, bool) {
	for row := range b.Rows {
		for col := range b.Cols {
			cell := b.Cells[b.index(row, col)]
			if !cell.Revealed || cell.Adjacent == 0 {
				continue
			}
			hidden := b.HiddenNeighbors(row, col)
			flagged := b.FlaggedNeighbors(row, col)
			if len(hidden) > 0 && cell.Adjacent == len(hidden)+len(flagged) {
				return Flag(hidden[0].Row, hidden[0].Col), true
			}
		}
	}
	for row := range b.Rows {
		for col := range b.Cols {
			cell := b.Cells[b.index(row, col)]
			if !cell.Revealed || cell.Adjacent == 0 {
				continue
			}
			hidden := b.HiddenNeighbors(row, col)
			if len(hidden) > 0 && cell.Adjacent == len(b.FlaggedNeighbors(row, col)) {
				return Reveal(hidden[0].Row, hidden[0].Col), true
			}
		}
	}
	return chooseEasy(b, rnd)
}

// chooseHard scans for the 1-2-1 pattern, horizontal then vertical,
// before handing off to the Medium rules. The two outer 1s each force
// their mine into the flanking corner next to them, which exhausts the
// 2, so the flanking cell over the 2 is safe. One action is emitted
// per call in a fixed order (outer flag, outer flag, center reveal);
// flags persist on the board, so repeated calls walk through the
// remaining deductions of the same pattern.
func chooseHard(b *Board, rnd *rand.Rand) (Action, bool) {
	for row := range b.Rows {
		for col := 0; col+2 < b.Cols; col++ {
			if action, ok := b.deduce121(row, col, 0, 1); ok {
				return action, true
			}
		}
	}
	for col := range b.Cols {
		for row := 0; row+2 < b.Rows; row++ {
			if action, ok := b.deduce121(row, col, 1, 0); ok {
				return action, true
			}
		}
	}
	return chooseMedium(b, rnd)
}

// deduce121 checks a run of three cells starting at (row,col) along
// direction (dr,dc) for revealed counts 1,2,1 and examines both
// flanking lines for an actionable deduction.
func (b *Board) deduce121(row, col, dr, dc int) (Action, bool) {
	counts := [3]int{1, 2, 1}
	for i := range 3 {
		cell, ok := b.CellAt(row+i*dr, col+i*dc)
		if !ok || !cell.Revealed || cell.Adjacent != counts[i] {
			return Action{}, false
		}
	}
	// Flanks run perpendicular to the 1-2-1 line.
	fr, fc := dc, dr
	for _, side := range [2]int{-1, +1} {
		outerA, okA := b.CellAt(row+side*fr, col+side*fc)
		center, okB := b.CellAt(row+dr+side*fr, col+dc+side*fc)
		outerB, okC := b.CellAt(row+2*dr+side*fr, col+2*dc+side*fc)
		if !okA || !okB || !okC {
			continue
		}
		if outerA.Revealed || center.Revealed || outerB.Revealed {
			continue
		}
		if !outerA.Flagged {
			return Flag(row+side*fr, col+side*fc), true
		}
		if !outerB.Flagged {
			return Flag(row+2*dr+side*fr, col+2*dc+side*fc), true
		}
		if !center.Flagged {
			return Reveal(row+dr+side*fr, col+dc+side*fc), true
		}
	}
	return Action{}, false
}
