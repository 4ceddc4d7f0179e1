package game

import (
	"fmt"

	"github.com/hailam/sidecore/internal/board"
)

// Identifier names a piece by the role it started the game in.
type Identifier uint8

const (
	KingID Identifier = iota
	QueenID
	QueensRookID
	KingsRookID
	QueensBishopID
	KingsBishopID
	QueensKnightID
	KingsKnightID
	Pawn1ID
	Pawn2ID
	Pawn3ID
	Pawn4ID
	Pawn5ID
	Pawn6ID
	Pawn7ID
	Pawn8ID
	// ExtraID marks pieces loaded from a FEN that fit no starting role.
	ExtraID
)

var identifierNames = [...]string{
	"King", "Queen", "QueensRook", "KingsRook", "QueensBishop", "KingsBishop",
	"QueensKnight", "KingsKnight", "Pawn1", "Pawn2", "Pawn3", "Pawn4",
	"Pawn5", "Pawn6", "Pawn7", "Pawn8", "Extra",
}

func (id Identifier) String() string {
	if int(id) < len(identifierNames) {
		return identifierNames[id]
	}
	return "Unknown"
}

// Piece is one piece owned by a Player.
type Piece struct {
	Kind   board.PieceType
	ID     Identifier
	Square board.Square

	// MoveCount is how many of this piece's moves are currently on the
	// history; it drops back on undo.
	MoveCount int

	promoted bool
	player   *Player
}

func newPiece(p *Player, kind board.PieceType, id Identifier, sq board.Square) *Piece {
	return &Piece{Kind: kind, ID: id, Square: sq, player: p}
}

// Color returns the owner's color.
func (pc *Piece) Color() board.Color {
	return pc.player.color
}

// Player returns the owning side.
func (pc *Piece) Player() *Player {
	return pc.player
}

// HasMoved reports whether the piece has moved.
func (pc *Piece) HasMoved() bool {
	return pc.MoveCount > 0
}

// HasBeenPromoted reports whether the piece started out as a pawn.
func (pc *Piece) HasBeenPromoted() bool {
	return pc.promoted
}

// BoardPiece returns the board encoding of the piece.
func (pc *Piece) BoardPiece() board.Piece {
	return board.NewPiece(pc.Kind, pc.Color())
}

// Value returns the material value of the piece.
func (pc *Piece) Value() int {
	return board.PieceValue[pc.Kind]
}

func (pc *Piece) String() string {
	return fmt.Sprintf("%s%s@%s", pc.Color(), pc.ID, pc.Square)
}

// PositionalPoints returns the placement score of the piece, excluding its
// material value. Kings switch to the endgame table once the opponent is
// short of material; pawns add structure terms.
func (pc *Piece) PositionalPoints() int {
	c := pc.Color()
	idx := pstIndex(c, pc.Square)

	switch pc.Kind {
	case board.King:
		if pc.player.opponent().MaterialCount() < endgameMaterial {
			return kingEndgamePST[idx]
		}
		return kingMidgamePST[idx]
	case board.Pawn:
		return pawnPST[idx] + pc.pawnStructure()
	}
	return psts[pc.Kind][idx]
}

// pawnStructure scores isolation, doubling and passed status of a pawn.
func (pc *Piece) pawnStructure() int {
	pos := pc.player.game.board
	c := pc.Color()
	own := pos.Pieces[c][board.Pawn]
	enemy := pos.Pieces[c.Other()][board.Pawn]

	score := 0
	if own&board.AdjacentFiles(pc.Square.File()) == 0 {
		score += isolatedPawnPenalty
	}

	fwd := pc.player.PawnForwardOffset()
	for _, step := range [2]int{fwd, -fwd} {
		sq := pc.Square.Offset(step)
		for sq != board.NoSquare && !own.IsSet(sq) {
			sq = sq.Offset(step)
		}
		if sq != board.NoSquare {
			score += doubledPawnPenalty
			break
		}
	}

	if board.FrontSpan(c, pc.Square)&enemy == 0 {
		score += passedPawnBonus[pc.Square.RelativeRank(c)]
	}
	return score
}
