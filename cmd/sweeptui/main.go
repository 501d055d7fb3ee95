package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gridfall/sweeper-server/internal/game"
)

var (
	rows       = flag.Int("rows", 10, "board rows")
	cols       = flag.Int("cols", 10, "board columns")
	mines      = flag.Int("mines", 10, "mine count")
	difficulty = flag.String("difficulty", "none",
		"solver seat: none, easy, medium or hard")
	logPath = flag.String("log", "", "write a JSON log to this file")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, nil))
	}
	game.Log = logger

	tier, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g, err := game.NewGame(game.Params{
		Rows:       *rows,
		Cols:       *cols,
		MineCount:  *mines,
		Difficulty: tier,
	}, game.NewRand())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ui := NewUI(logger, g)
	if err := ui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
