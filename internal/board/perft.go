package board

import (
	"slices"
	"strings"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs Perft below every legal root move, sorted by move text.
func Divide(p *Position, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	moves := p.GenerateLegalMoves()
	out := make([]DivideEntry, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		out = append(out, DivideEntry{Move: m, Nodes: Perft(p, depth-1)})
		p.UnmakeMove(m, undo)
	}
	slices.SortFunc(out, func(a, b DivideEntry) int {
		return strings.Compare(a.Move.String(), b.Move.String())
	})
	return out
}
