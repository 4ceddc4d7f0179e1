package board

import "testing"

// walkHashes checks after every make and unmake that the incremental hash
// pair matches a full recomputation.
func walkHashes(t *testing.T, p *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	moves := p.GenerateLegalMoves()
	for _, m := range moves.Slice() {
		before := p.ToFEN()
		undo := p.MakeMove(m)
		if a, b := p.ComputeHashes(); a != p.HashA || b != p.HashB {
			t.Fatalf("hash mismatch after %v from %s", m, before)
		}
		walkHashes(t, p, depth-1)
		p.UnmakeMove(m, undo)
		if a, b := p.ComputeHashes(); a != p.HashA || b != p.HashB {
			t.Fatalf("hash mismatch after undoing %v from %s", m, before)
		}
	}
}

func TestIncrementalHash(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
		"8/P6k/8/3pP3/8/8/6Kp/8 w - d6 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		walkHashes(t, pos, 3)
	}
}

func TestHashHalvesIndependent(t *testing.T) {
	pos := NewPosition()
	if pos.HashA == pos.HashB {
		t.Fatal("hash halves should use different keys")
	}

	// Same placement reached by transposition hashes identically.
	a := NewPosition()
	for _, s := range []string{"g1f3", "g8f6", "b1c3", "b8c6"} {
		m, _ := ParseMove(s, a)
		a.MakeMove(m)
	}
	b := NewPosition()
	for _, s := range []string{"b1c3", "b8c6", "g1f3", "g8f6"} {
		m, _ := ParseMove(s, b)
		b.MakeMove(m)
	}
	if a.HashA != b.HashA || a.HashB != b.HashB {
		t.Error("transposed positions hash differently")
	}

	// Side to move is part of the hash.
	c := a.Copy()
	c.SideToMove = Black
	c.HashA, c.HashB = c.ComputeHashes()
	if c.HashA == a.HashA || c.HashB == a.HashB {
		t.Error("side to move not hashed")
	}
}
