package game

import (
	"fmt"
	"math/rand/v2"
)

type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

type Actor int

const (
	Human Actor = iota
	AI
)

func (a Actor) String() string {
	if a == AI {
		return "ai"
	}
	return "human"
}

type Params struct {
	Rows       int
	Cols       int
	MineCount  int
	Difficulty Difficulty
}

// Game couples a Board with the turn orchestrator. It is the sole
// authority on terminal conditions: every move, human or solver, goes
// through Apply, which re-checks win/loss after the board mutation and
// flips the turn owner while the game is still on.
type Game struct {
	Board      *Board
	Status     Status
	Turn       Actor
	Difficulty Difficulty
	Moves      int

	rnd *rand.Rand
}

func NewGame(params Params, rnd *rand.Rand) (*Game, error) {
	board, err := NewBoard(params.Rows, params.Cols, params.MineCount, rnd)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:      board,
		Status:     Playing,
		Turn:       Human,
		Difficulty: params.Difficulty,
		rnd:        rnd,
	}, nil
}

// Alternating reports whether a solver seat is configured and turns
// pass between the player and the solver.
func (g *Game) Alternating() bool {
	return g.Difficulty != None
}

type MoveResult struct {
	OK      bool
	Status  Status
	Changed []Point
}

// Apply routes one action through the board. Moves are rejected once
// the game is over, and while turns alternate an actor may only move
// on their own turn. Only a successful move passes the turn.
func (g *Game) Apply(actor Actor, action Action) MoveResult {
	if g.Status != Playing {
		return MoveResult{Status: g.Status}
	}
	if g.Alternating() && actor != g.Turn {
		return MoveResult{Status: g.Status}
	}
	if actor == AI && !g.Alternating() {
		return MoveResult{Status: g.Status}
	}

	var result MoveResult
	switch action.Kind {
	case ActionReveal:
		out := g.Board.RevealCell(action.Row, action.Col)
		result = MoveResult{OK: out.OK, Changed: out.Changed}
		if out.HitMine {
			g.Status = Lost
			g.Board.RevealMines()
		} else if out.OK && g.Board.Won() {
			g.Status = Won
		}
	case ActionFlag:
		out := g.Board.ToggleFlag(action.Row, action.Col)
		result = MoveResult{OK: out.OK}
		if out.OK {
			result.Changed = []Point{{action.Row, action.Col}}
		}
	default:
		return MoveResult{Status: g.Status}
	}

	if result.OK {
		g.Moves++
		if g.Status == Playing && g.Alternating() {
			g.Turn = g.nextActor()
		}
	}
	result.Status = g.Status
	return result
}

func (g *Game) nextActor() Actor {
	if g.Turn == Human {
		return AI
	}
	return Human
}

// PlayAIMove asks the configured solver for one move and applies it.
// Returns ok=false when no solver is configured, it is not the solver's
// turn, or no legal move exists (covered cells exhausted).
func (g *Game) PlayAIMove() (Action, MoveResult, bool) {
	if g.Status != Playing || !g.Alternating() || g.Turn != AI {
		return Action{}, MoveResult{Status: g.Status}, false
	}
	solver := Solver{Difficulty: g.Difficulty}
	action, ok := solver.ChooseMove(g.Board, g.random())
	if !ok {
		return Action{}, MoveResult{Status: g.Status}, false
	}
	result := g.Apply(AI, action)
	return action, result, result.OK
}

// Forfeit ends a running game as a loss and uncovers the field.
func (g *Game) Forfeit() {
	if g.Status != Playing {
		return
	}
	g.Status = Lost
	g.Board.RevealMines()
}

func (g *Game) random() *rand.Rand {
	if g.rnd == nil {
		g.rnd = NewRand()
	}
	return g.rnd
}

func (g *Game) FlagsRemaining() int {
	return g.Board.FlagsRemaining()
}

func (g *Game) CellsRevealed() int {
	return g.Board.RevealedCount
}

func (g *Game) String() string {
	return fmt.Sprintf(
		"%dx%d mines=%d status=%s turn=%s revealed=%d",
		g.Board.Rows, g.Board.Cols, g.Board.MineCount,
		g.Status, g.Turn, g.Board.RevealedCount,
	)
}
