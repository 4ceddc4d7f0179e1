package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/game"
)

func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fen := fs.String("fen", board.StartFEN, "position to search")
	depth := fs.Int("depth", 4, "search depth")
	divide := fs.Bool("divide", false, "print the node count below each root move")
	viaGame := fs.Bool("game", false, "generate through the player legal filter instead of the board")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	start := time.Now()
	var nodes uint64
	switch {
	case *viaGame:
		g, err := game.NewFromFEN(*fen, game.Options{})
		if err != nil {
			return err
		}
		if nodes, err = g.Perft(*depth); err != nil {
			return err
		}
	case *divide:
		for _, e := range board.Divide(pos, *depth) {
			fmt.Printf("%s: %s\n", e.Move, humanize.Comma(int64(e.Nodes)))
			nodes += e.Nodes
		}
	default:
		nodes = board.Perft(pos, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %s\n", humanize.Comma(int64(nodes)))
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("NPS: %s\n", humanize.Comma(int64(nps)))
	}
	return nil
}
