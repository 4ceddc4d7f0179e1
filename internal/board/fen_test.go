package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 3 40",
		// Chess960 with an inner rook: the outer one keeps the KQ letter
		"1r2k1r1/8/8/8/8/8/8/RR2K1R1 w Bk - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENCastlingLetters(t *testing.T) {
	tests := []struct {
		fen      string
		castling string
		rooks    [2][2]Square
	}{
		{StartFEN, "KQkq", [2][2]Square{{H1, A1}, {H8, A8}}},
		{"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9", "KQkq", [2][2]Square{{H1, F1}, {H8, F8}}},
		{"4k3/8/8/8/8/8/8/R3K2R w K - 0 1", "K", [2][2]Square{{H1, NoSquare}, {NoSquare, NoSquare}}},
		{"1r2k1r1/8/8/8/8/8/8/RR2K1R1 w Bg - 0 1", "Bk", [2][2]Square{{NoSquare, B1}, {G8, NoSquare}}},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
		}
		if got := pos.castlingFEN(); got != tc.castling {
			t.Errorf("%s: castling = %s, want %s", tc.fen, got, tc.castling)
		}
		if pos.CastleRook != tc.rooks {
			t.Errorf("%s: castle rooks = %v, want %v", tc.fen, pos.CastleRook, tc.rooks)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq -",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}
