package handlers

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gridfall/sweeper-server/internal/game"
	"github.com/gridfall/sweeper-server/internal/repository"
)

// GameSessionDTO is the board snapshot handed to the presentation
// layer. Grid carries one string per row built from display runes, so
// covered cells leak nothing about mine placement.
type GameSessionDTO struct {
	SessionId      string   `json:"session_id"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	MineCount      int      `json:"mine_count"`
	Difficulty     string   `json:"difficulty"`
	Status         string   `json:"status"`
	Turn           string   `json:"turn"`
	FlagsRemaining int      `json:"flags_remaining"`
	CellsRevealed  int      `json:"cells_revealed"`
	Grid           []string `json:"grid"`
	LastMoveOK     bool     `json:"last_move_ok"`
	StartedAt      int64    `json:"started_at"`
	EndedAt        *int64   `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, g *game.Game, lastMoveOK bool,
) GameSessionDTO {
	grid := make([]string, g.Board.Rows)
	for row := range g.Board.Rows {
		runes := make([]rune, g.Board.Cols)
		for col := range g.Board.Cols {
			cell, _ := g.Board.CellAt(row, col)
			runes[col] = cell.Rune()
		}
		grid[row] = string(runes)
	}
	dto := GameSessionDTO{
		SessionId:      strconv.FormatInt(session.GameSessionId, 10),
		Rows:           g.Board.Rows,
		Cols:           g.Board.Cols,
		MineCount:      g.Board.MineCount,
		Difficulty:     g.Difficulty.String(),
		Status:         g.Status.String(),
		Turn:           g.Turn.String(),
		FlagsRemaining: g.FlagsRemaining(),
		CellsRevealed:  g.CellsRevealed(),
		Grid:           grid,
		LastMoveOK:     lastMoveOK,
		StartedAt:      session.StartedAt.Time.UnixMilli(),
	}
	if endedAt := timestamptzMilli(session.EndedAt); endedAt != nil {
		dto.EndedAt = endedAt
	}
	return dto
}

func timestamptzMilli(t pgtype.Timestamptz) *int64 {
	if !t.Valid {
		return nil
	}
	ms := t.Time.UnixMilli()
	return &ms
}
