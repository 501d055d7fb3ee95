package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/gridfall/sweeper-server/internal/game"
)

// solverDelay paces the solver seat so its moves read as turns instead
// of an instant board change.
const solverDelay = 400 * time.Millisecond

type UI struct {
	log    *slog.Logger
	g      *game.Game
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
}

func NewUI(log *slog.Logger, g *game.Game) *UI {
	ui := &UI{
		log:    log,
		g:      g,
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
	}

	ui.table.SetSelectable(true, true)
	ui.table.SetFixed(g.Board.Rows, g.Board.Cols)
	ui.table.SetInputCapture(ui.handleKey)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.table, 0, 1, true).
		AddItem(ui.status, 1, 0, false)
	ui.app.SetRoot(layout, true)

	return ui
}

func (ui *UI) Run() error {
	ui.draw()
	return ui.app.Run()
}

func (ui *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	row, col := ui.table.GetSelection()

	switch event.Key() {
	case tcell.KeyEnter:
		ui.humanMove(game.Reveal(row, col))
		return event
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			ui.humanMove(game.Reveal(row, col))
		case 'f', 'F':
			ui.humanMove(game.Flag(row, col))
		case 'x', 'X':
			ui.g.Forfeit()
			ui.draw()
		case 'q', 'Q':
			ui.app.Stop()
		}
	}
	return event
}

func (ui *UI) humanMove(action game.Action) {
	result := ui.g.Apply(game.Human, action)
	ui.log.Debug("human move",
		slog.String("kind", action.Kind.String()),
		slog.Int("row", action.Row),
		slog.Int("col", action.Col),
		slog.Bool("ok", result.OK),
	)
	ui.draw()
	ui.scheduleSolver()
}

// scheduleSolver plays the solver seat after a short delay. The move is
// applied inside QueueUpdateDraw, so it never races the key handler.
func (ui *UI) scheduleSolver() {
	if ui.g.Status != game.Playing ||
		!ui.g.Alternating() || ui.g.Turn != game.AI {
		return
	}
	go func() {
		time.Sleep(solverDelay)
		ui.app.QueueUpdateDraw(func() {
			action, result, ok := ui.g.PlayAIMove()
			if ok {
				ui.log.Debug("solver move",
					slog.String("kind", action.Kind.String()),
					slog.Int("row", action.Row),
					slog.Int("col", action.Col),
					slog.String("status", result.Status.String()),
				)
			}
			ui.draw()
		})
	}()
}

func (ui *UI) draw() {
	b := ui.g.Board
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			cell, _ := b.CellAt(row, col)
			ui.table.SetCell(row, col,
				tview.NewTableCell(string(cell.Rune())).
					SetAlign(tview.AlignCenter).
					SetTextColor(cellColor(cell)))
		}
	}
	ui.status.SetText(ui.statusLine())
}

func cellColor(cell game.Cell) tcell.Color {
	switch {
	case cell.Flagged && !cell.Revealed:
		return tcell.ColorRed
	case !cell.Revealed:
		return tcell.ColorGray
	case cell.Mine:
		return tcell.ColorRed
	case cell.Adjacent == 0:
		return tcell.ColorWhite
	default:
		return tcell.ColorAqua
	}
}

func (ui *UI) statusLine() string {
	g := ui.g
	switch g.Status {
	case game.Won:
		return "you won! press q to quit"
	case game.Lost:
		return "game over, press q to quit"
	}
	line := fmt.Sprintf("flags left: %d  revealed: %d",
		g.FlagsRemaining(), g.CellsRevealed())
	if g.Alternating() {
		line += "  turn: " + g.Turn.String()
	}
	return line
}
