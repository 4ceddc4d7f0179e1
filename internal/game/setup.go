package game

import (
	"log"
	"slices"

	"github.com/hailam/sidecore/internal/board"
)

// DebugSetup logs the back rank chosen for each side.
var DebugSetup = false

// backRank holds the piece placement of one home rank, indexed by file.
type backRank struct {
	kinds [8]board.PieceType
	ids   [8]Identifier
}

var standardBackRank = backRank{
	kinds: [8]board.PieceType{
		board.Rook, board.Knight, board.Bishop, board.Queen,
		board.King, board.Bishop, board.Knight, board.Rook,
	},
	ids: [8]Identifier{
		QueensRookID, QueensKnightID, QueensBishopID, QueenID,
		KingID, KingsBishopID, KingsKnightID, KingsRookID,
	},
}

// SetPiecesAtStartingPositions places the side's sixteen pieces on its home
// and pawn ranks and grants castling on both wings. In Chess960 mode the
// back rank is drawn once per game and mirrored for both sides. It may run
// only once per side.
func (p *Player) SetPiecesAtStartingPositions() error {
	if p.setupDone {
		return ErrSetupDone
	}
	p.setupDone = true

	br := standardBackRank
	if p.game.mode == Chess960 {
		br = p.game.chess960BackRank()
	}
	if DebugSetup {
		log.Printf("setup %v %v: %v", p.color, p.game.mode, br)
	}

	home, pawns := p.HomeRank(), p.PawnRank()
	for file := 0; file < 8; file++ {
		sq := board.NewSquare(file, home)
		p.addPiece(newPiece(p, br.kinds[file], br.ids[file], sq))
		switch br.ids[file] {
		case QueensRookID:
			p.rookHomes[board.QueenSide] = sq
		case KingsRookID:
			p.rookHomes[board.KingSide] = sq
		}
	}
	for file := 0; file < 8; file++ {
		sq := board.NewSquare(file, pawns)
		p.addPiece(newPiece(p, board.Pawn, Pawn1ID+Identifier(file), sq))
	}
	p.materialCount = initialMaterialCount
	p.pawnCount = initialPawnCount

	pos := p.game.board
	pos.SetCastling(p.color, board.KingSide, p.rookHomes[board.KingSide])
	pos.SetCastling(p.color, board.QueenSide, p.rookHomes[board.QueenSide])
	pos.Refresh()
	return nil
}

// chess960BackRank draws a random Chess960 back rank on first use and
// returns the same rank afterwards.
func (g *Game) chess960BackRank() backRank {
	if g.backRank != nil {
		return *g.backRank
	}

	var br backRank
	place := func(file int, kind board.PieceType, id Identifier) {
		br.kinds[file] = kind
		br.ids[file] = id
	}
	free := []int{0, 1, 2, 3, 4, 5, 6, 7}
	take := func(file int) {
		free = slices.DeleteFunc(free, func(f int) bool { return f == file })
	}
	pick := func() int {
		f := free[g.rng.IntN(len(free))]
		take(f)
		return f
	}

	// Even and odd files have opposite square colors on a home rank.
	even := g.rng.IntN(4) * 2
	odd := g.rng.IntN(4)*2 + 1
	take(even)
	take(odd)
	place(even, board.Bishop, QueensBishopID)
	place(odd, board.Bishop, KingsBishopID)
	if odd < even {
		place(odd, board.Bishop, QueensBishopID)
		place(even, board.Bishop, KingsBishopID)
	}

	place(pick(), board.Queen, QueenID)

	n1, n2 := pick(), pick()
	if n2 < n1 {
		n1, n2 = n2, n1
	}
	place(n1, board.Knight, QueensKnightID)
	place(n2, board.Knight, KingsKnightID)

	// Three files remain; the king takes the middle one.
	slices.Sort(free)
	place(free[0], board.Rook, QueensRookID)
	place(free[1], board.King, KingID)
	place(free[2], board.Rook, KingsRookID)

	g.backRank = &br
	return br
}

func (br backRank) String() string {
	b := make([]byte, 8)
	for i, k := range br.kinds {
		b[i] = k.Char() - 'a' + 'A'
	}
	return string(b)
}
