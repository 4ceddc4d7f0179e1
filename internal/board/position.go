package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// Wing selects the castling side.
type Wing uint8

const (
	KingSide Wing = iota
	QueenSide
)

// CastleRight returns the single right bit for a color and wing.
func CastleRight(c Color, w Wing) CastlingRights {
	return WhiteKingSideCastle << (uint(c)*2 + uint(w))
}

// String returns the castling rights in KQkq form.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle on the given wing.
func (cr CastlingRights) CanCastle(c Color, w Wing) bool {
	return cr&CastleRight(c, w) != 0
}

// Castling destinations are the same in standard chess and Chess960.
var (
	castleKingFile = [2]int{6, 2} // [Wing]
	castleRookFile = [2]int{5, 3}
)

// CastleTargets returns where the king and rook of color c end up after
// castling on wing w.
func CastleTargets(c Color, w Wing) (kingTo, rookTo Square) {
	rank := HomeRank(c)
	return NewSquare(castleKingFile[w], rank), NewSquare(castleRookFile[w], rank)
}

// HomeRank returns the back rank of color c.
func HomeRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// Position represents a complete chess position.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]Bitboard

	// Occupancy bitboards (cached for efficiency)
	Occupied    [2]Bitboard // All pieces of each color
	AllOccupied Bitboard    // All pieces on the board

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// CastleRook holds the starting square of each castling rook, NoSquare
	// where no right was ever granted. [Color][Wing]
	CastleRook [2][2]Square

	// Two-part Zobrist hash
	HashA uint64
	HashB uint64

	// King positions (cached for check detection)
	KingSquare [2]Square

	// Checkers bitboard (pieces giving check to the side to move)
	Checkers Bitboard
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// NewEmptyPosition returns an empty board with white to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}

	c := White
	if p.Occupied[White]&bb == 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// setPiece places a piece on a square (does not update hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb

	if pt == King {
		p.KingSquare[c] = sq
	}
}

// removePiece removes a piece from a square (does not update hash).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	c := piece.Color()
	bb := SquareBB(sq)
	p.Pieces[c][piece.Type()] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
	return piece
}

// movePiece moves a piece from one square to another (does not update hash).
func (p *Position) movePiece(from, to Square) {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return
	}

	c := piece.Color()
	pt := piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)

	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB

	if pt == King {
		p.KingSquare[c] = to
	}
}

// Put places a piece on sq, replacing whatever was there. Derived state is
// not updated until Refresh is called.
func (p *Position) Put(piece Piece, sq Square) {
	p.removePiece(sq)
	p.setPiece(piece, sq)
}

// Remove empties sq. Derived state is not updated until Refresh is called.
func (p *Position) Remove(sq Square) Piece {
	return p.removePiece(sq)
}

// SetCastling grants the castling right for c on wing w with the rook
// starting on rookSq.
func (p *Position) SetCastling(c Color, w Wing, rookSq Square) {
	p.CastleRook[c][w] = rookSq
	p.CastlingRights |= CastleRight(c, w)
}

// Refresh recomputes occupancy, king squares, hashes and checkers after the
// position was edited with Put, Remove or SetCastling.
func (p *Position) Refresh() {
	p.updateOccupied()
	p.findKings()
	p.HashA, p.HashB = p.ComputeHashes()
	p.UpdateCheckers()
}

// updateOccupied recalculates occupancy bitboards from piece bitboards.
func (p *Position) updateOccupied() {
	p.Occupied[White] = Empty
	p.Occupied[Black] = Empty

	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}

	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// findKings locates and caches the king positions.
func (p *Position) findKings() {
	p.KingSquare[White] = p.Pieces[White][King].LSB()
	p.KingSquare[Black] = p.Pieces[Black][King].LSB()
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingFEN())
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x:%016x\n", p.HashA, p.HashB)
	return sb.String()
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	p.KingSquare = [2]Square{NoSquare, NoSquare}
	p.CastleRook = [2][2]Square{{NoSquare, NoSquare}, {NoSquare, NoSquare}}
}

// Validate checks if the position is valid.
func (p *Position) Validate() error {
	if p.Pieces[White][King].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	if p.KingAttacked(p.SideToMove.Other()) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}
