package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/sidecore/internal/board"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func newTestGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewFromFEN(fen, Options{Seed: 1})
	require.NoError(t, err)
	return g
}

func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, uci := range moves {
		_, err := g.MakeMove(uci)
		require.NoError(t, err, uci)
	}
}

// requireConsistent checks the piece index against the board.
func requireConsistent(t *testing.T, g *Game) {
	t.Helper()
	for sq := board.A1; sq <= board.H8; sq++ {
		bp := g.board.PieceAt(sq)
		pc := g.squares[sq]
		if bp == board.NoPiece {
			require.Nil(t, pc, "square %v", sq)
			continue
		}
		require.NotNil(t, pc, "square %v", sq)
		require.Equal(t, bp, pc.BoardPiece(), "square %v", sq)
		require.Equal(t, sq, pc.Square)
	}
	for _, p := range g.players {
		pawns, material := 0, 0
		for _, pc := range p.pieces {
			switch pc.Kind {
			case board.Pawn:
				pawns++
			case board.King:
			default:
				material++
			}
		}
		require.Equal(t, pawns, p.PawnCount(), "%v pawns", p.color)
		require.Equal(t, material, p.MaterialCount(), "%v material", p.color)
	}
}

func TestNewStandardGame(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)

	assert.Equal(t, board.StartFEN, g.StartFEN())
	assert.NotEmpty(t, g.ID)
	requireConsistent(t, g)

	white := g.PlayerToPlay()
	assert.Equal(t, board.White, white.Color())
	assert.Equal(t, Human, white.Intelligence)
	assert.Equal(t, Computer, white.Opponent().Intelligence)
	assert.Equal(t, 7, white.MaterialCount())
	assert.Equal(t, 8, white.PawnCount())
	assert.Len(t, white.PieceTypes(), 6)
	assert.True(t, white.HasPieceName(board.Queen))

	moves, err := white.GenerateLegalMoves(nil)
	require.NoError(t, err)
	assert.Len(t, moves, 20)

	canMove, err := white.CanMove()
	require.NoError(t, err)
	assert.True(t, canMove)

	status, err := white.Status()
	require.NoError(t, err)
	assert.Equal(t, Normal, status)

	score, err := white.Score()
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestFoolsMate(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	white := g.PlayerToPlay()
	mate, err := white.IsInCheckMate()
	require.NoError(t, err)
	assert.True(t, mate)

	moves, err := white.GenerateLegalMoves(nil)
	require.NoError(t, err)
	assert.Empty(t, moves)

	status, err := white.Status()
	require.NoError(t, err)
	assert.Equal(t, InCheckMate, status)

	outcome, method, err := g.Outcome()
	require.NoError(t, err)
	assert.Equal(t, BlackWon, outcome)
	assert.Equal(t, Checkmate, method)

	points, err := white.PositionPoints()
	require.NoError(t, err)
	assert.Less(t, points, int64(-900_000_000))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"start", board.StartFEN, Normal},
		{"check", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", InCheck},
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/K2R4 b - - 0 1", Normal},
		{"mated", "3R2k1/5ppp/8/8/8/8/8/K7 b - - 0 1", InCheckMate},
		{"stalemate", "7k/5Q2/8/8/8/8/8/K7 b - - 0 1", InStalemate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.fen)
			p := g.PlayerToPlay()
			got, err := p.Status()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			moves, err := p.GenerateLegalMoves(nil)
			require.NoError(t, err)
			inCheck, err := p.IsInCheck()
			require.NoError(t, err)
			switch got {
			case InCheckMate:
				assert.Empty(t, moves)
				assert.True(t, inCheck)
			case InStalemate:
				assert.Empty(t, moves)
				assert.False(t, inCheck)
			default:
				assert.NotEmpty(t, moves)
			}
		})
	}
}

func TestStalemateOutcome(t *testing.T) {
	g := newTestGame(t, "7k/5Q2/8/8/8/8/8/K7 b - - 0 1")
	outcome, method, err := g.Outcome()
	require.NoError(t, err)
	assert.Equal(t, Draw, outcome)
	assert.Equal(t, Stalemate, method)
}

func TestGamePerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"start", board.StartFEN, 3, 8902},
		{"kiwipete", kiwipete, 2, 2039},
		{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"chess960", "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9", 2, 528},
	}
	if testing.Short() {
		tests = tests[:2]
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.fen)
			before := g.board.ToFEN()
			a, b := g.board.HashA, g.board.HashB

			nodes, err := g.Perft(tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, nodes)

			assert.Equal(t, before, g.board.ToFEN())
			assert.Equal(t, a, g.board.HashA)
			assert.Equal(t, b, g.board.HashB)
			assert.Zero(t, g.history.Len())
			requireConsistent(t, g)
		})
	}
}

func TestLegalMovesKeepKingSafe(t *testing.T) {
	g := newTestGame(t, kiwipete)
	p := g.PlayerToPlay()
	hashA, hashB := g.board.HashA, g.board.HashB
	fen := g.board.ToFEN()
	moves, err := p.GenerateLegalMoves(nil)
	require.NoError(t, err)
	assert.Equal(t, hashA, g.board.HashA)
	assert.Equal(t, hashB, g.board.HashB)
	assert.Equal(t, fen, g.board.ToFEN())
	assert.Zero(t, g.History().Len())

	for _, m := range moves {
		require.NoError(t, g.apply(m))
		assert.False(t, g.board.KingAttacked(p.color), m.String())
		g.undo(m)
	}
	requireConsistent(t, g)
}

func TestGenerateLegalMovesAppends(t *testing.T) {
	g := newTestGame(t, board.StartFEN)
	white := g.Player(board.White)

	lazy := white.GenerateLazyMoves(nil, board.CapturesAndPromotions)
	assert.Empty(t, lazy)

	moves, err := white.GenerateLegalMoves(make([]*Move, 2))
	require.NoError(t, err)
	assert.Len(t, moves, 22)
	assert.Nil(t, moves[0])
}

func TestCaptureAndPromotionCounters(t *testing.T) {
	g := newTestGame(t, "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	white, black := g.Player(board.White), g.Player(board.Black)
	fen, a := g.board.ToFEN(), g.board.HashA

	m, err := g.MakeMove("b7a8q")
	require.NoError(t, err)
	assert.Equal(t, PawnPromotion, m.Name)
	assert.True(t, m.IsPawnMove())
	requireConsistent(t, g)

	assert.Equal(t, 0, white.PawnCount())
	assert.Equal(t, 1, white.MaterialCount())
	assert.Equal(t, 0, black.MaterialCount())
	assert.Equal(t, 500, white.CapturedEnemyPiecesTotalBasicValue())

	q := g.PieceAt(board.A8)
	require.NotNil(t, q)
	assert.Equal(t, board.Queen, q.Kind)
	assert.True(t, q.HasBeenPromoted())

	_, err = g.Undo()
	require.NoError(t, err)
	requireConsistent(t, g)
	assert.Equal(t, fen, g.board.ToFEN())
	assert.Equal(t, a, g.board.HashA)
	assert.Equal(t, 1, white.PawnCount())
	assert.Equal(t, 0, white.MaterialCount())
	assert.Equal(t, 1, black.MaterialCount())
	assert.Empty(t, white.CapturedEnemyPieces())
	assert.False(t, g.PieceAt(board.B7).HasBeenPromoted())
}

func TestEnPassantCapture(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	m, err := g.MakeMove("e5d6")
	require.NoError(t, err)
	assert.Equal(t, EnPassant, m.Name)
	require.NotNil(t, m.Captured)
	assert.Equal(t, board.D5, m.Captured.Square)
	assert.Nil(t, g.PieceAt(board.D5))
	assert.Equal(t, 0, g.Player(board.Black).PawnCount())
	requireConsistent(t, g)

	_, err = g.Undo()
	require.NoError(t, err)
	assert.Equal(t, m.Captured, g.PieceAt(board.D5))
	requireConsistent(t, g)
}

func TestDemoteAllPieces(t *testing.T) {
	g := newTestGame(t, "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	white := g.Player(board.White)
	playMoves(t, g, "b7b8r")
	require.Equal(t, 1, white.MaterialCount())

	white.DemoteAllPieces()
	assert.Equal(t, 1, white.PawnCount())
	assert.Equal(t, 0, white.MaterialCount())
	assert.Equal(t, board.NewPiece(board.Pawn, board.White), g.board.PieceAt(board.B8))
	assert.False(t, white.HasPieceName(board.Rook))
}

func TestCaptureAllPieces(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	white, black := g.Player(board.White), g.Player(board.Black)

	black.CaptureAllPieces()
	assert.Empty(t, black.Pieces())
	assert.Nil(t, black.King())
	assert.Zero(t, black.MaterialCount())
	assert.Zero(t, black.PawnCount())
	assert.Len(t, white.CapturedEnemyPieces(), 16)
	assert.Equal(t, 8*100+2*320+2*330+2*500+900+20000, white.CapturedEnemyPiecesTotalBasicValue())

	_, err = black.IsInCheck()
	assert.ErrorIs(t, err, ErrNoKing)
	_, err = black.Status()
	assert.ErrorIs(t, err, ErrNoKing)
	_, err = white.Score()
	assert.ErrorIs(t, err, ErrNoKing)
}

func TestSetupOnce(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	for c := board.White; c <= board.Black; c++ {
		assert.ErrorIs(t, g.Player(c).SetPiecesAtStartingPositions(), ErrSetupDone)
		assert.Len(t, g.Player(c).Pieces(), 16)
	}
}

func TestCheckTableCaching(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	white := g.Player(board.White)

	inCheck, err := white.IsInCheck()
	require.NoError(t, err)
	require.True(t, inCheck)
	stats := g.checks.Stats()

	again, err := white.IsInCheck()
	require.NoError(t, err)
	assert.Equal(t, inCheck, again)
	after := g.checks.Stats()
	assert.Equal(t, stats.Hits+1, after.Hits)
	assert.Equal(t, stats.Records, after.Records)
}

func TestPawnStructureCache(t *testing.T) {
	calls := map[board.Color]int{}
	g, err := New(Options{OnPawnStructureEval: func(c board.Color) { calls[c]++ }})
	require.NoError(t, err)
	white := g.Player(board.White)

	first, err := white.PositionPoints()
	require.NoError(t, err)
	second, err := white.PositionPoints()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls[board.White])
	assert.Zero(t, calls[board.Black])

	playMoves(t, g, "e2e4")
	_, err = white.PositionPoints()
	require.NoError(t, err)
	assert.Equal(t, 2, calls[board.White])
}

func TestScoreSymmetry(t *testing.T) {
	fens := []string{
		board.StartFEN,
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		g := newTestGame(t, fen)
		w, err := g.Player(board.White).Score()
		require.NoError(t, err)
		b, err := g.Player(board.Black).Score()
		require.NoError(t, err)
		assert.Equal(t, w, -b, fen)
	}
}

func TestCastlingPoints(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	g := newTestGame(t, fen)
	white := g.Player(board.White)
	assert.Zero(t, white.castlingPoints())

	m, err := g.MakeMove("e1g1")
	require.NoError(t, err)
	assert.Equal(t, CastleKingSide, m.Name)
	assert.True(t, white.HasCastled)
	assert.Equal(t, int64(castledBonus), white.castlingPoints())
	requireConsistent(t, g)

	_, err = g.Undo()
	require.NoError(t, err)
	assert.False(t, white.HasCastled)
	assert.False(t, g.PieceAt(board.H1).HasMoved())
	requireConsistent(t, g)

	playMoves(t, g, "h1h2")
	assert.Equal(t, int64(rookMovedPenalty), white.castlingPoints())
	_, err = g.Undo()
	require.NoError(t, err)

	playMoves(t, g, "e1e2")
	assert.Equal(t, int64(kingMovedPenalty), white.castlingPoints())

	// Rook notation for castling.
	g = newTestGame(t, fen)
	m, err = g.MakeMove("e1a1")
	require.NoError(t, err)
	assert.Equal(t, CastleQueenSide, m.Name)
	assert.Equal(t, board.C1, g.Player(board.White).King().Square)
	assert.Equal(t, board.Rook, g.PieceAt(board.D1).Kind)
}

func TestMakeMoveErrors(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)

	_, err = g.Undo()
	assert.ErrorIs(t, err, ErrNoMoveToUndo)

	_, err = g.MakeMove("e2e5")
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = g.MakeMove("e7e5")
	assert.ErrorIs(t, err, ErrIllegalMove)

	black := g.Player(board.Black)
	moves := black.GenerateLazyMoves(nil, board.AllMoves)
	require.NotEmpty(t, moves)
	assert.ErrorIs(t, g.Play(moves[0]), ErrIllegalMove)

	_, err = NewFromFEN("4k3/8/8/8/8/8/8/8 w - - 0 1", Options{})
	assert.Error(t, err)
}

func TestPlayRejectsSelfCheck(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	byName := map[string]*Move{}
	for _, m := range g.PlayerToPlay().GenerateLazyMoves(nil, board.AllMoves) {
		byName[m.String()] = m
	}
	require.Contains(t, byName, "e1d2")
	require.Contains(t, byName, "e1e2")

	assert.ErrorIs(t, g.Play(byName["e1d2"]), ErrIllegalMove)
	assert.Zero(t, g.History().Len())
	requireConsistent(t, g)

	require.NoError(t, g.Play(byName["e1e2"]))
	assert.Len(t, g.Player(board.White).CapturedEnemyPieces(), 1)
	assert.Equal(t, board.Black, g.PlayerToPlay().Color())
}

func TestNewFromFENRoles(t *testing.T) {
	g := newTestGame(t, kiwipete)
	white := g.Player(board.White)

	assert.Equal(t, KingID, white.King().ID)
	assert.False(t, white.King().HasMoved())
	assert.Equal(t, QueensRookID, g.PieceAt(board.A1).ID)
	assert.Equal(t, KingsRookID, g.PieceAt(board.H1).ID)
	assert.False(t, g.PieceAt(board.H1).HasMoved())
	assert.True(t, g.PieceAt(board.E4).HasMoved())
	assert.Equal(t, Standard, g.Mode())

	g = newTestGame(t, "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9")
	assert.Equal(t, Chess960, g.Mode())
	assert.Equal(t, QueensRookID, g.PieceAt(board.F1).ID)
	assert.Equal(t, KingsRookID, g.PieceAt(board.H1).ID)
}

func TestPlayRejectsStaleMove(t *testing.T) {
	g := newTestGame(t, board.StartFEN)
	var stale *Move
	for _, m := range g.PlayerToPlay().GenerateLazyMoves(nil, board.AllMoves) {
		if m.String() == "g1f3" {
			stale = m
		}
	}
	require.NotNil(t, stale)
	require.Nil(t, stale.Captured)

	// Black's knight lands on f3 with check.
	playMoves(t, g, "a2a3", "g8f6", "a3a4", "f6e4", "b2b3", "e4g5", "c2c3", "g5f3")
	black := g.Player(board.Black)
	material := black.MaterialCount()

	assert.ErrorIs(t, g.Play(stale), ErrIllegalMove)
	assert.Equal(t, 8, g.History().Len())
	assert.Equal(t, material, black.MaterialCount())
	requireConsistent(t, g)

	m, err := g.MakeMove("g1f3")
	require.NoError(t, err)
	require.NotNil(t, m.Captured)
	assert.Equal(t, board.Knight, m.Captured.Kind)
	assert.Equal(t, material-1, black.MaterialCount())
	requireConsistent(t, g)
	for _, pc := range black.Pieces() {
		assert.NotEqual(t, board.F3, pc.Square)
	}
}

func TestPlayRejectsMoveNoLongerPseudoLegal(t *testing.T) {
	g := newTestGame(t, board.StartFEN)
	var stale *Move
	for _, m := range g.PlayerToPlay().GenerateLazyMoves(nil, board.AllMoves) {
		if m.String() == "e2e4" {
			stale = m
		}
	}
	require.NotNil(t, stale)

	playMoves(t, g, "g1f3", "e7e5", "f3g1", "e5e4")
	assert.ErrorIs(t, g.Play(stale), ErrIllegalMove)
	requireConsistent(t, g)
}
