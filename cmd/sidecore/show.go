package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/game"
	"github.com/hailam/sidecore/internal/render"
	"github.com/hailam/sidecore/internal/storage"
)

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fen := fs.String("fen", board.StartFEN, "position to draw")
	id := fs.String("game", "", "draw the final position of an archived game")
	out := fs.String("out", "", "output file, .svg or .png (default SVG on stdout)")
	size := fs.Int("size", 512, "PNG edge in pixels")
	flip := fs.Bool("flip", false, "draw from Black's side")
	coords := fs.Bool("coords", true, "label files and ranks in SVG output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := render.Options{Flip: *flip, Coordinates: *coords, Check: true}
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}
	if *id != "" {
		g, err := loadArchived(*id)
		if err != nil {
			return err
		}
		pos = g.Board()
		if m := g.History().Last(); m != nil {
			opts.LastMove = m.BoardMove()
		}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if strings.EqualFold(filepath.Ext(*out), ".png") {
		return render.PNG(w, pos, *size, opts)
	}
	return render.SVG(w, pos, opts)
}

func loadArchived(id string) (*game.Game, error) {
	store, err := storage.NewStorage()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rec, err := store.LoadGame(id)
	if err != nil {
		return nil, err
	}
	return rec.Replay(game.Options{})
}
