package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/sidecore/internal/board"
)

var knightShuffle = []string{"g1f3", "g8f6", "f3g1", "f6g8"}

func TestThreefoldRepetition(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	white := g.Player(board.White)

	playMoves(t, g, knightShuffle...)
	rep, err := white.CanClaimThreeMoveRepetitionDraw()
	require.NoError(t, err)
	assert.False(t, rep, "start position seen twice")
	rep, err = white.CanClaimMoveRepetitionDraw(2)
	require.NoError(t, err)
	assert.True(t, rep)

	playMoves(t, g, knightShuffle...)
	rep, err = white.CanClaimThreeMoveRepetitionDraw()
	require.NoError(t, err)
	assert.True(t, rep)
	assert.True(t, g.History().Last().IsThreeMoveRepetition)

	outcome, method, err := g.Outcome()
	require.NoError(t, err)
	assert.Equal(t, Draw, outcome)
	assert.Equal(t, ThreefoldRepetition, method)

	// Only the human side is rewarded for the repetition.
	human, err := white.PositionPoints()
	require.NoError(t, err)
	computer, err := g.Player(board.Black).PositionPoints()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, human, int64(repetitionBonus-10_000))
	assert.Less(t, computer, int64(10_000))

	_, err = g.Undo()
	require.NoError(t, err)
	assert.False(t, g.History().Last().IsThreeMoveRepetition)
}

func TestRepetitionAfterPawnMove(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	black := g.Player(board.Black)

	playMoves(t, g, "e2e4", "e7e5")
	playMoves(t, g, knightShuffle...)
	rep, err := black.CanClaimThreeMoveRepetitionDraw()
	require.NoError(t, err)
	assert.False(t, rep)

	playMoves(t, g, knightShuffle...)
	rep, err = black.CanClaimThreeMoveRepetitionDraw()
	require.NoError(t, err)
	assert.True(t, rep, "position after e7e5 counts")
}

func TestRepetitionResetByPawnMove(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	white := g.Player(board.White)

	playMoves(t, g, knightShuffle...)
	playMoves(t, g, "e2e4", "e7e5")
	playMoves(t, g, knightShuffle...)
	playMoves(t, g, knightShuffle...)

	// Three times after e7e5, but the start position is behind the pawn moves.
	rep, err := white.CanClaimThreeMoveRepetitionDraw()
	require.NoError(t, err)
	assert.True(t, rep)
	rep, err = white.CanClaimMoveRepetitionDraw(4)
	require.NoError(t, err)
	assert.False(t, rep)
}

func TestRepetitionWalk(t *testing.T) {
	cur := position{a: 1, b: 2}
	other := position{a: 3, b: 4}
	mv := func(p position) *Move { return &Move{HashA: p.a, HashB: p.b} }

	tests := []struct {
		name  string
		moves []*Move
		start position
		n     int
		want  bool
	}{
		{"empty", nil, cur, 1, false},
		{"self", []*Move{mv(cur)}, other, 1, true},
		{"opposite parity ignored", []*Move{mv(cur), mv(cur), mv(other), mv(cur)}, other, 3, false},
		{"same parity", []*Move{mv(other), mv(cur), mv(other), mv(cur), mv(other), mv(cur)}, other, 3, true},
		{"start anchor", []*Move{mv(other), mv(other), mv(other), mv(cur)}, cur, 2, true},
		{"without block", []*Move{mv(cur), mv(other), mv(other), mv(other), mv(cur)}, other, 2, true},
		{"start anchor odd length", []*Move{mv(other), mv(other), mv(cur)}, cur, 2, false},
		{
			"capture blocks",
			[]*Move{mv(cur), mv(other), {HashA: other.a, HashB: other.b, Captured: &Piece{}}, mv(other), mv(cur)},
			other, 2, false,
		},
		{
			"pawn move blocks",
			[]*Move{mv(cur), mv(other), {HashA: other.a, HashB: other.b, pawnMove: true}, mv(other), mv(cur)},
			other, 2, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &History{moves: tt.moves}
			got, err := canClaimMoveRepetitionDraw(h, tt.start, cur, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := canClaimMoveRepetitionDraw(&History{}, cur, cur, 0)
	assert.ErrorIs(t, err, ErrInvalidRepetitionCount)

	g, err := New(Options{})
	require.NoError(t, err)
	_, err = g.Player(board.White).CanClaimMoveRepetitionDraw(-1)
	assert.ErrorIs(t, err, ErrInvalidRepetitionCount)
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"king and bishop", "8/8/8/4k3/8/8/8/2B1K3 w - - 0 1", true},
		{"king and knight", "8/8/8/4k3/8/8/8/1N2K3 b - - 0 1", true},
		{"king and rook", "8/8/8/4k3/8/8/8/R3K3 w - - 0 1", false},
		{"king and pawn", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"bishop each", "8/8/8/3bk3/8/8/8/2B1K3 w - - 0 1", false},
		{"two knights", "8/8/8/4k3/8/8/8/1NN1K3 w - - 0 1", false},
		{"start", board.StartFEN, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.fen)
			assert.Equal(t, tt.want, g.Player(board.White).CanClaimInsufficientMaterialDraw())
			assert.Equal(t, tt.want, g.Player(board.Black).CanClaimInsufficientMaterialDraw())

			if tt.want {
				outcome, method, err := g.Outcome()
				require.NoError(t, err)
				assert.Equal(t, Draw, outcome)
				assert.Equal(t, InsufficientMaterial, method)
			}
		})
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	g := newTestGame(t, "8/8/8/4k3/8/8/8/R3K3 w - - 99 80")
	white := g.Player(board.White)
	assert.False(t, white.CanClaimFiftyMoveDraw())

	playMoves(t, g, "a1a2")
	assert.True(t, white.CanClaimFiftyMoveDraw())
	assert.Equal(t, 100, g.History().Last().HalfMoveClock)

	outcome, method, err := g.Outcome()
	require.NoError(t, err)
	assert.Equal(t, Draw, outcome)
	assert.Equal(t, FiftyMoveRule, method)

	_, err = g.Undo()
	require.NoError(t, err)
	playMoves(t, g, "e1e2")
	assert.True(t, white.CanClaimFiftyMoveDraw())

	g = newTestGame(t, "8/8/8/4k3/8/8/8/R3K3 w - - 100 80")
	assert.True(t, g.Player(board.Black).CanClaimFiftyMoveDraw())
}

func TestParseOutcomeAndMethod(t *testing.T) {
	for _, o := range []Outcome{NoOutcome, WhiteWon, BlackWon, Draw} {
		got, err := ParseOutcome(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOutcome("2-0")
	assert.Error(t, err)

	for m := NoMethod; m <= InsufficientMaterial; m++ {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err = ParseMethod("Resignation")
	assert.Error(t, err)
}
