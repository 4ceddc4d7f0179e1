package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/sidecore/internal/game"
	"github.com/hailam/sidecore/internal/storage"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	mode := fs.String("mode", envOr(modeEnv, ""), "standard or chess960 (default from preferences)")
	white := fs.String("white", "", "white intelligence: human or computer")
	black := fs.String("black", "", "black intelligence: human or computer")
	games := fs.Int("games", 1, "number of games to play")
	seed := fs.Uint64("seed", 0, "random seed, 0 for a random one")
	plies := fs.Int("plies", 300, "stop a game after this many plies")
	save := fs.Bool("save", false, "archive finished games and update statistics")
	verbose := fs.Bool("v", false, "print every move")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store *storage.Storage
	prefs := storage.DefaultPreferences()
	if *save {
		var err error
		if store, err = storage.NewStorage(); err != nil {
			return err
		}
		defer store.Close()
		if prefs, err = store.LoadPreferences(); err != nil {
			return err
		}
	}
	if *mode != "" {
		prefs.Mode = *mode
	}
	if *white != "" {
		prefs.White = *white
	}
	if *black != "" {
		prefs.Black = *black
	}

	opts, err := prefs.Options()
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(s, s>>1|1))

	for i := 0; i < *games; i++ {
		opts.Seed = s + uint64(i)
		g, err := game.New(opts)
		if err != nil {
			return err
		}
		outcome, method, err := selfPlay(g, rng, *plies, *verbose)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}

		fmt.Printf("%s %s %s %s in %d plies (%s)\n",
			g.ID, g.Mode(), outcome, method, g.History().Len(), g.StartFEN())

		if store == nil {
			continue
		}
		rec := storage.NewGameRecord(g, outcome, method)
		if err := store.SaveGame(rec); err != nil {
			return err
		}
		stats, err := store.RecordGame(rec.Result())
		if err != nil {
			return err
		}
		log.Printf("saved %s, %s games recorded", g.ID, humanize.Comma(int64(stats.GamesPlayed)))
	}

	if store != nil {
		prefs.LastPlayed = time.Now()
		return store.SavePreferences(prefs)
	}
	return nil
}

// selfPlay plays g until it ends or maxPlies is reached.
func selfPlay(g *game.Game, rng *rand.Rand, maxPlies int, verbose bool) (game.Outcome, game.Method, error) {
	for g.History().Len() < maxPlies {
		outcome, method, err := g.Outcome()
		if err != nil || outcome != game.NoOutcome {
			return outcome, method, err
		}
		m, err := bestMove(g, rng)
		if err != nil {
			return game.NoOutcome, game.NoMethod, err
		}
		var san string
		if verbose {
			san = m.BoardMove().ToSAN(g.Board())
		}
		if err := g.Play(m); err != nil {
			return game.NoOutcome, game.NoMethod, err
		}
		if verbose {
			fmt.Printf("%3d. %-7s %s\n", g.History().Len(), san, m)
		}
	}
	return g.Outcome()
}

// bestMove returns the legal move with the highest score for the side to
// move one ply ahead. Ties are broken at random.
func bestMove(g *game.Game, rng *rand.Rand) (*game.Move, error) {
	p := g.PlayerToPlay()
	moves, err := p.GenerateLegalMoves(nil)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, game.ErrIllegalMove
	}

	var best []*game.Move
	var bestScore int64
	for _, m := range moves {
		if err := g.Play(m); err != nil {
			return nil, err
		}
		score, err := p.Score()
		if _, uerr := g.Undo(); uerr != nil {
			return nil, uerr
		}
		if err != nil {
			return nil, err
		}
		switch {
		case len(best) == 0 || score > bestScore:
			best, bestScore = append(best[:0], m), score
		case score == bestScore:
			best = append(best, m)
		}
	}
	return best[rng.IntN(len(best))], nil
}
