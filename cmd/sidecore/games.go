package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/hailam/sidecore/internal/storage"
)

func runGames(args []string) error {
	fs := flag.NewFlagSet("games", flag.ContinueOnError)
	limit := fs.Int("n", 20, "show at most this many games, 0 for all")
	del := fs.String("delete", "", "delete the archived game with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	if *del != "" {
		return store.DeleteGame(*del)
	}

	records, err := store.ListGames()
	if err != nil {
		return err
	}
	if *limit > 0 && len(records) > *limit {
		records = records[:*limit]
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODE\tRESULT\tMETHOD\tPLIES\tFINISHED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Mode, r.Outcome, r.Method, len(r.Moves), humanize.Time(r.FinishedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("\n%s games: %d white, %d black, %d drawn (%.1f%%), %s plies, %v total\n",
		humanize.Comma(int64(stats.GamesPlayed)), stats.WhiteWins, stats.BlackWins,
		stats.Draws, stats.DrawRate(), humanize.Comma(int64(stats.TotalPlies)), stats.TotalTime)
	for method, n := range stats.ByMethod {
		fmt.Printf("  %-22s %d\n", method, n)
	}
	return nil
}
