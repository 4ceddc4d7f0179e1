package board

// Ray directions for sliding pieces. The first four increase the square
// index, the last four decrease it.
const (
	dirNorth = iota
	dirEast
	dirNorthEast
	dirNorthWest
	dirSouth
	dirWest
	dirSouthEast
	dirSouthWest
	numDirs
)

var dirStep = [numDirs][2]int{ // file, rank
	{0, 1}, {1, 0}, {1, 1}, {-1, 1},
	{0, -1}, {-1, 0}, {1, -1}, {-1, -1},
}

// Pre-computed attack tables
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
	rays          [numDirs][64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<17)&NotFileA | (bb<<15)&NotFileH |
			(bb>>17)&NotFileH | (bb>>15)&NotFileA |
			(bb<<10)&NotFileAB | (bb<<6)&NotFileGH |
			(bb>>10)&NotFileGH | (bb>>6)&NotFileAB

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()

		for d := 0; d < numDirs; d++ {
			f, r := sq.File()+dirStep[d][0], sq.Rank()+dirStep[d][1]
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				rays[d][sq] |= SquareBB(NewSquare(f, r))
				f += dirStep[d][0]
				r += dirStep[d][1]
			}
		}
	}
}

// slide returns the attacks along one ray, stopping at (and including) the
// first occupied square.
func slide(d int, sq Square, occupied Bitboard) Bitboard {
	ray := rays[d][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var first Square
	if d < dirSouth {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray ^ rays[d][first]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(dirNorthEast, sq, occupied) | slide(dirNorthWest, sq, occupied) |
		slide(dirSouthEast, sq, occupied) | slide(dirSouthWest, sq, occupied)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(dirNorth, sq, occupied) | slide(dirEast, sq, occupied) |
		slide(dirSouth, sq, occupied) | slide(dirWest, sq, occupied)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns a bitboard of pieces of the given color attacking a square.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// KingAttacked reports whether c's king is attacked. A side without a king
// is never in check as far as the board is concerned.
func (p *Position) KingAttacked(c Color) bool {
	kingBB := p.Pieces[c][King]
	if kingBB == 0 {
		return false
	}
	return p.IsSquareAttacked(kingBB.LSB(), c.Other())
}

// UpdateCheckers updates the Checkers bitboard for the side to move.
func (p *Position) UpdateCheckers() {
	us := p.SideToMove
	kingBB := p.Pieces[us][King]
	if kingBB == 0 {
		p.Checkers = 0
		return
	}
	p.Checkers = p.AttackersByColor(kingBB.LSB(), us.Other(), p.AllOccupied)
}
