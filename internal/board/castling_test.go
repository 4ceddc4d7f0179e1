package board

import "testing"

func applyUCI(t *testing.T, pos *Position, s string) (Move, UndoInfo) {
	t.Helper()
	m, err := ParseMove(s, pos)
	if err != nil {
		t.Fatalf("ParseMove(%s): %v", s, err)
	}
	if !pos.GenerateLegalMoves().Contains(m) {
		t.Fatalf("%s (%v) is not legal in %s", s, m, pos.ToFEN())
	}
	undo := pos.MakeMove(m)
	if !undo.Valid {
		t.Fatalf("MakeMove(%s) rejected", s)
	}
	return m, undo
}

func TestStandardCastling(t *testing.T) {
	pos, _ := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m, undo := applyUCI(t, pos, "e1g1")
	if !m.IsCastling() || m.To() != H1 || m.String() != "e1g1" || m.RookNotation() != "e1h1" {
		t.Fatalf("unexpected castling encoding %v / %s", m, m.RookNotation())
	}
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook || !pos.IsEmpty(H1) || !pos.IsEmpty(E1) {
		t.Errorf("wrong placement after O-O:%v", pos)
	}
	if pos.CastlingRights != BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("castling rights = %v", pos.CastlingRights)
	}
	pos.UnmakeMove(m, undo)
	if pos.ToFEN() != "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1" {
		t.Errorf("undo left %s", pos.ToFEN())
	}

	applyUCI(t, pos, "e1c1")
	if pos.PieceAt(C1) != WhiteKing || pos.PieceAt(D1) != WhiteRook || !pos.IsEmpty(A1) {
		t.Errorf("wrong placement after O-O-O:%v", pos)
	}
}

func TestCastlingBlocked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1"},
		{"path attacked", "5rk1/8/8/8/8/8/8/R3K2R w K - 0 1"},
		{"occupied", "6k1/8/8/8/8/8/8/R3KB1R w K - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			for _, m := range pos.GenerateLegalMoves().Slice() {
				if m.IsCastling() && m.CastleWing() == KingSide {
					t.Errorf("castling %v should not be generated", m)
				}
			}
		})
	}
}

func TestChess960Castling(t *testing.T) {
	// Rooks on b1 and g1, king e1.
	fen := "r3k2r/8/8/8/8/8/8/1R2K1R1 w GB - 0 1"

	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	m, undo := applyUCI(t, pos, "e1g1")
	if !m.IsCastling() || m.To() != G1 {
		t.Fatalf("e1g1 should castle with the g1 rook, got %v", m)
	}
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook || !pos.IsEmpty(E1) {
		t.Errorf("wrong placement:%v", pos)
	}
	pos.UnmakeMove(m, undo)

	m, _ = applyUCI(t, pos, "e1b1")
	if !m.IsCastling() || m.CastleWing() != QueenSide {
		t.Fatalf("e1b1 should castle queenside, got %v", m)
	}
	if pos.PieceAt(C1) != WhiteKing || pos.PieceAt(D1) != WhiteRook || !pos.IsEmpty(B1) {
		t.Errorf("wrong placement:%v", pos)
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("castling rights = %v, want none", pos.CastlingRights)
	}
}

func TestChess960CastlingKingStays(t *testing.T) {
	// King already on g1: castling only swaps the rook to f1.
	pos, err := ParseFEN("6k1/8/8/8/8/8/8/6KR w H - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m, _ := applyUCI(t, pos, "g1h1")
	if !m.IsCastling() {
		t.Fatalf("g1h1 should castle, got %v", m)
	}
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook || !pos.IsEmpty(H1) {
		t.Errorf("wrong placement:%v", pos)
	}
}

func TestRookMoveDropsRight(t *testing.T) {
	pos, _ := ParseFEN("r3k2r/8/8/8/8/8/8/1R2K1R1 w GB - 0 1")
	applyUCI(t, pos, "g1g2")
	if pos.CastlingRights.CanCastle(White, KingSide) {
		t.Error("moving the g1 rook should drop the kingside right")
	}
	if !pos.CastlingRights.CanCastle(White, QueenSide) {
		t.Error("queenside right should remain")
	}
}
