package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// modeEnv overrides the default game mode of the play subcommand.
const modeEnv = "SIDECORE_MODE"

const usage = `usage: sidecore <command> [flags]

commands:
  perft   count legal move tree nodes
  play    run self-play games
  show    render a position as SVG or PNG
  games   list archived games and statistics
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("sidecore: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "perft":
		err = runPerft(args)
	case "play":
		err = runPlay(args)
	case "show":
		err = runShow(args)
	case "games":
		err = runGames(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
