package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position. The castling field
// accepts KQkq, X-FEN (KQkq naming the outermost rook) and Shredder file
// letters (HAha), so Chess960 positions load as well.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := NewEmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}
	pos.updateOccupied()
	pos.findKings()

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		pos.EnPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	pos.Refresh()
	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
// Placement must already be parsed so the rooks can be located.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, ch := range castling {
		c := White
		if ch >= 'a' {
			c = Black
		}
		ksq := pos.KingSquare[c]
		if ksq == NoSquare || ksq.Rank() != HomeRank(c) {
			return fmt.Errorf("castling right %c without a king on the back rank", ch)
		}

		var rsq Square
		switch lower := byte(ch) | 0x20; {
		case lower == 'k':
			rsq = pos.outermostRook(c, KingSide)
		case lower == 'q':
			rsq = pos.outermostRook(c, QueenSide)
		case lower >= 'a' && lower <= 'h':
			rsq = NewSquare(int(lower-'a'), HomeRank(c))
		default:
			return fmt.Errorf("invalid castling character: %c", ch)
		}
		if rsq == NoSquare || pos.PieceAt(rsq) != NewPiece(Rook, c) {
			return fmt.Errorf("castling right %c has no rook", ch)
		}

		w := QueenSide
		if rsq.File() > ksq.File() {
			w = KingSide
		}
		pos.SetCastling(c, w, rsq)
	}

	return nil
}

// outermostRook finds the rook of color c furthest from the king on wing w.
func (p *Position) outermostRook(c Color, w Wing) Square {
	ksq := p.KingSquare[c]
	rank := HomeRank(c)
	rook := NewPiece(Rook, c)
	if w == KingSide {
		for f := 7; f > ksq.File(); f-- {
			if sq := NewSquare(f, rank); p.PieceAt(sq) == rook {
				return sq
			}
		}
		return NoSquare
	}
	for f := 0; f < ksq.File(); f++ {
		if sq := NewSquare(f, rank); p.PieceAt(sq) == rook {
			return sq
		}
	}
	return NoSquare
}

// castlingFEN writes the castling field. KQkq is used whenever it names the
// right rook; otherwise the Shredder file letter is used.
func (p *Position) castlingFEN() string {
	var sb strings.Builder
	for c := White; c <= Black; c++ {
		for w := KingSide; w <= QueenSide; w++ {
			if !p.CastlingRights.CanCastle(c, w) {
				continue
			}
			rsq := p.CastleRook[c][w]
			var ch byte
			if p.KingSquare[c] != NoSquare && p.outermostRook(c, w) == rsq {
				ch = "KQ"[w]
			} else {
				ch = 'A' + byte(rsq.File())
			}
			if c == Black {
				ch |= 0x20
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingFEN())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
