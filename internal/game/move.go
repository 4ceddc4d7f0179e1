package game

import "github.com/hailam/sidecore/internal/board"

// MoveName classifies a move.
type MoveName uint8

const (
	StandardMove MoveName = iota
	CastleKingSide
	CastleQueenSide
	EnPassant
	PawnPromotion
)

func (n MoveName) String() string {
	switch n {
	case CastleKingSide:
		return "O-O"
	case CastleQueenSide:
		return "O-O-O"
	case EnPassant:
		return "en passant"
	case PawnPromotion:
		return "promotion"
	}
	return "standard"
}

// Move is one entry of the game history. The hash pair, half-move clock and
// draw flags describe the position after the move and are filled in when
// the move is applied.
type Move struct {
	Piece    *Piece
	Name     MoveName
	From     board.Square
	To       board.Square
	Captured *Piece

	HashA, HashB          uint64
	HalfMoveClock         int
	IsFiftyMoveDraw       bool
	IsThreeMoveRepetition bool

	bm       board.Move
	pawnMove bool
	rook     *Piece

	undo          board.UndoInfo
	capturedIndex int
	prevCastled   bool
}

// newMove wraps a pseudo-legal board move for the piece on its from square.
func (g *Game) newMove(bm board.Move) *Move {
	pc := g.squares[bm.From()]
	m := &Move{
		Piece:    pc,
		From:     bm.From(),
		To:       bm.KingTo(),
		bm:       bm,
		pawnMove: pc.Kind == board.Pawn,
	}

	switch {
	case bm.IsCastling():
		m.rook = g.squares[bm.To()]
		m.Name = CastleQueenSide
		if bm.CastleWing() == board.KingSide {
			m.Name = CastleKingSide
		}
	case bm.IsEnPassant():
		m.Name = EnPassant
		m.Captured = g.squares[board.NewSquare(bm.To().File(), bm.From().Rank())]
	default:
		m.Captured = g.squares[bm.To()]
		if bm.IsPromotion() {
			m.Name = PawnPromotion
		}
	}
	return m
}

// BoardMove returns the board encoding of the move.
func (m *Move) BoardMove() board.Move {
	return m.bm
}

// IsPawnMove reports whether a pawn made the move. A promotion counts as a
// pawn move even though the piece is no longer a pawn afterwards.
func (m *Move) IsPawnMove() bool {
	return m.pawnMove
}

// IsCastle reports whether the move is castling.
func (m *Move) IsCastle() bool {
	return m.Name == CastleKingSide || m.Name == CastleQueenSide
}

// Promotion returns the promoted-to kind, or NoPieceType.
func (m *Move) Promotion() board.PieceType {
	if !m.bm.IsPromotion() {
		return board.NoPieceType
	}
	return m.bm.Promotion()
}

// String returns the move in UCI form.
func (m *Move) String() string {
	return m.bm.String()
}
