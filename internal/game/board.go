package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

// ErrConfig is returned when board parameters cannot produce a playable
// game. Wrapped with details by NewBoard.
var ErrConfig = fmt.Errorf("invalid board configuration")

const (
	MinMineCount = 10
	MaxMineCount = 20
)

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type RevealOutcome struct {
	OK      bool
	HitMine bool
	Changed []Point
}

type FlagOutcome struct {
	OK      bool
	Flagged bool
}

// Board owns the grid. Mines are not placed at construction time: the
// first RevealCell call places them so that the revealed cell and its
// neighbors are guaranteed safe.
type Board struct {
	Rows          int
	Cols          int
	MineCount     int
	Cells         []Cell // row-major
	RevealedCount int
	FlagCount     int
	MinesPlaced   bool

	rnd *rand.Rand // lost on gob round-trip, recreated lazily
}

// NewBoard validates params and allocates an unmined grid. MineCount
// must leave at least a 3x3 safe zone for the first reveal, or deferred
// placement could not satisfy the safe-first-click guarantee.
func NewBoard(rows, cols, mineCount int, rnd *rand.Rand) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrConfig, rows, cols)
	}
	if mineCount < MinMineCount {
		return nil, fmt.Errorf(
			"%w: mine count %d below minimum %d",
			ErrConfig, mineCount, MinMineCount,
		)
	}
	if mineCount > rows*cols-9 {
		return nil, fmt.Errorf(
			"%w: %d mines leave no safe first click on a %dx%d grid",
			ErrConfig, mineCount, rows, cols,
		)
	}
	return &Board{
		Rows:      rows,
		Cols:      cols,
		MineCount: mineCount,
		Cells:     make([]Cell, rows*cols),
		rnd:       rnd,
	}, nil
}

func (b *Board) index(row, col int) int {
	return row*b.Cols + col
}

func (b *Board) inBounds(row, col int) bool {
	return 0 <= row && row < b.Rows && 0 <= col && col < b.Cols
}

func (b *Board) random() *rand.Rand {
	if b.rnd == nil {
		b.rnd = NewRand()
	}
	return b.rnd
}

// PlaceMines lays MineCount mines everywhere except the safe cell and
// its in-bounds neighbors, then computes adjacency counts. Calling it
// again once mines are placed is a no-op.
func (b *Board) PlaceMines(safeRow, safeCol int) {
	if b.MinesPlaced || !b.inBounds(safeRow, safeCol) {
		return
	}
	safe := make(map[int]bool, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := safeRow+dr, safeCol+dc
			if b.inBounds(r, c) {
				safe[b.index(r, c)] = true
			}
		}
	}
	rnd := b.random()
	for planted := 0; planted < b.MineCount; {
		i := rnd.IntN(len(b.Cells))
		if safe[i] || b.Cells[i].Mine {
			continue
		}
		b.Cells[i].Mine = true
		planted++
	}
	for row := range b.Rows {
		for col := range b.Cols {
			i := b.index(row, col)
			if !b.Cells[i].Mine {
				b.Cells[i].Adjacent = b.countAdjacentMines(row, col)
			}
		}
	}
	b.MinesPlaced = true
	Log.Debug("mines placed",
		slog.Int("count", b.MineCount),
		slog.Int("safeRow", safeRow),
		slog.Int("safeCol", safeCol),
	)
}

func (b *Board) countAdjacentMines(row, col int) (count int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) && b.Cells[b.index(r, c)].Mine {
				count++
			}
		}
	}
	return
}

// RevealCell opens a cell. Flagged, already-revealed and out-of-bounds
// targets are rejected without mutation. The first reveal of a game
// triggers mine placement, so HitMine can never be true on it. A
// zero-adjacency reveal expands through the connected zero region via
// an explicit worklist: every revealed cell appears in Changed exactly
// once, flagged cells are never auto-revealed.
func (b *Board) RevealCell(row, col int) RevealOutcome {
	if !b.inBounds(row, col) {
		return RevealOutcome{}
	}
	if !b.MinesPlaced {
		b.PlaceMines(row, col)
	}
	cell := &b.Cells[b.index(row, col)]
	if cell.Revealed || cell.Flagged {
		return RevealOutcome{}
	}
	cell.Revealed = true
	b.RevealedCount++
	out := RevealOutcome{
		OK:      true,
		HitMine: cell.Mine,
		Changed: []Point{{row, col}},
	}
	if cell.Mine || cell.Adjacent > 0 {
		return out
	}

	// Flood fill. Only zero-count cells feed the worklist; a cell is
	// marked revealed when enqueued so it cannot be enqueued twice.
	var todo deque.Deque[Point]
	todo.PushBack(Point{row, col})
	for todo.Len() > 0 {
		p := todo.PopFront()
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := p.Row+dr, p.Col+dc
				if !b.inBounds(r, c) {
					continue
				}
				n := &b.Cells[b.index(r, c)]
				if n.Revealed || n.Flagged {
					continue
				}
				n.Revealed = true
				b.RevealedCount++
				out.Changed = append(out.Changed, Point{r, c})
				if n.Adjacent == 0 {
					todo.PushBack(Point{r, c})
				}
			}
		}
	}
	return out
}

// ToggleFlag flips the flag on a covered cell. Revealed cells cannot be
// flagged. Flag placement is permissive: FlagsRemaining may go negative
// when the player plants more flags than there are mines.
func (b *Board) ToggleFlag(row, col int) FlagOutcome {
	if !b.inBounds(row, col) {
		return FlagOutcome{}
	}
	cell := &b.Cells[b.index(row, col)]
	if cell.Revealed {
		return FlagOutcome{}
	}
	cell.Flagged = !cell.Flagged
	if cell.Flagged {
		b.FlagCount++
	} else {
		b.FlagCount--
	}
	return FlagOutcome{OK: true, Flagged: cell.Flagged}
}

func (b *Board) FlagsRemaining() int {
	return b.MineCount - b.FlagCount
}

// Won reports whether every non-mine cell is revealed. Flags play no
// part in the win condition.
func (b *Board) Won() bool {
	return b.RevealedCount == b.Rows*b.Cols-b.MineCount
}

// CoveredCells lists all unrevealed, unflagged cells in row-major order.
func (b *Board) CoveredCells() (cells []Point) {
	for row := range b.Rows {
		for col := range b.Cols {
			if b.Cells[b.index(row, col)].Covered() {
				cells = append(cells, Point{row, col})
			}
		}
	}
	return
}

// HiddenNeighbors lists the unrevealed, unflagged neighbors of a cell.
func (b *Board) HiddenNeighbors(row, col int) (cells []Point) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) && b.Cells[b.index(r, c)].Covered() {
				cells = append(cells, Point{r, c})
			}
		}
	}
	return
}

// FlaggedNeighbors lists the flagged neighbors of a cell.
func (b *Board) FlaggedNeighbors(row, col int) (cells []Point) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) && b.Cells[b.index(r, c)].Flagged {
				cells = append(cells, Point{r, c})
			}
		}
	}
	return
}

// CellAt returns a copy of the cell, false when out of bounds.
func (b *Board) CellAt(row, col int) (Cell, bool) {
	if !b.inBounds(row, col) {
		return Cell{}, false
	}
	return b.Cells[b.index(row, col)], true
}

// RevealMines uncovers every mine after the game is over so the
// presentation layer can show the full field. Counters are untouched.
func (b *Board) RevealMines() {
	for i := range b.Cells {
		if b.Cells[i].Mine && !b.Cells[i].Flagged {
			b.Cells[i].Revealed = true
		}
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Cols {
			sb.WriteRune(b.Cells[b.index(row, col)].Rune())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
