package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gridfall/sweeper-server/internal/game"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // open row col
	"f": 2, // flag row col
	"a": 0, // solver move
	"x": 0, // forfeit
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand applies one text command to the game. A malformed
// command is an error; a legal command that the engine rejects (wrong
// turn, revealed cell) is not, the caller sees the unchanged state.
func executeCommand(g *game.Game, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "o":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		g.Apply(game.Human, game.Reveal(row, col))
		return nil
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		g.Apply(game.Human, game.Flag(row, col))
		return nil
	case "a":
		g.PlayAIMove()
		return nil
	case "x":
		g.Forfeit()
		return nil
	}
	return errors.New("invalid command")
}
