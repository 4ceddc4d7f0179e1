package board

// HashA and HashB are computed from two independent Zobrist key sets. Two
// positions are treated as equal only when both halves match.
type zobristKeys struct {
	piece      [2][6][64]uint64 // [Color][PieceType][Square]
	enPassant  [8]uint64        // One per file
	castling   [16]uint64       // All 16 castling combinations
	sideToMove uint64           // XOR when black to move
}

var zobrist [2]zobristKeys

func init() {
	zobrist[0].fill(newPRNG(0x98F107A2BEEF1234))
	zobrist[1].fill(newPRNG(0x5D2C41E7A9034B6F))
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func (z *zobristKeys) fill(rng *prng) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				z.piece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		z.enPassant[file] = rng.next()
	}
	for i := range z.castling {
		z.castling[i] = rng.next()
	}
	z.sideToMove = rng.next()
}

// Incremental helpers; each toggles the same feature in both hash halves.

func (p *Position) hashPiece(c Color, pt PieceType, sq Square) {
	p.HashA ^= zobrist[0].piece[c][pt][sq]
	p.HashB ^= zobrist[1].piece[c][pt][sq]
}

func (p *Position) hashCastling(cr CastlingRights) {
	p.HashA ^= zobrist[0].castling[cr]
	p.HashB ^= zobrist[1].castling[cr]
}

func (p *Position) hashEnPassant(sq Square) {
	if sq == NoSquare {
		return
	}
	p.HashA ^= zobrist[0].enPassant[sq.File()]
	p.HashB ^= zobrist[1].enPassant[sq.File()]
}

func (p *Position) hashSide() {
	p.HashA ^= zobrist[0].sideToMove
	p.HashB ^= zobrist[1].sideToMove
}

// ComputeHashes computes both hash halves for the position from scratch.
func (p *Position) ComputeHashes() (uint64, uint64) {
	var h [2]uint64
	for i := range zobrist {
		z := &zobrist[i]
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt <= King; pt++ {
				bb := p.Pieces[c][pt]
				for bb != 0 {
					h[i] ^= z.piece[c][pt][bb.PopLSB()]
				}
			}
		}
		if p.SideToMove == Black {
			h[i] ^= z.sideToMove
		}
		h[i] ^= z.castling[p.CastlingRights]
		if p.EnPassant != NoSquare {
			h[i] ^= z.enPassant[p.EnPassant.File()]
		}
	}
	return h[0], h[1]
}
