package game

import (
	"slices"

	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/hashtable"
)

// Initial counter values for a full set of pieces.
const (
	initialMaterialCount = 7
	initialPawnCount     = 8
)

// Player is one side of the game: its pieces, the pieces it has captured and
// the counters derived from them. It answers legality, status, evaluation
// and draw questions for its color against the shared game board.
type Player struct {
	game         *Game
	color        board.Color
	Intelligence Intelligence

	king     *Piece
	pieces   []*Piece
	captured []*Piece

	materialCount int
	pawnCount     int
	HasCastled    bool

	// rookHomes are the squares the castling rooks started on. [board.Wing]
	rookHomes [2]board.Square
	setupDone bool

	pieceTypes []board.PieceType
}

func newPlayer(g *Game, c board.Color, in Intelligence) *Player {
	return &Player{
		game:          g,
		color:         c,
		Intelligence:  in,
		materialCount: initialMaterialCount,
		pawnCount:     initialPawnCount,
		rookHomes:     [2]board.Square{board.NoSquare, board.NoSquare},
	}
}

// Color returns the side's color.
func (p *Player) Color() board.Color {
	return p.color
}

func (p *Player) opponent() *Player {
	return p.game.players[p.color.Other()]
}

// Opponent returns the other side.
func (p *Player) Opponent() *Player {
	return p.opponent()
}

// King returns the side's king, or nil once it has been captured.
func (p *Player) King() *Piece {
	return p.king
}

// Pieces returns the pieces in play. The slice must not be modified.
func (p *Player) Pieces() []*Piece {
	return p.pieces
}

// CapturedEnemyPieces returns the opponent pieces this side has taken.
func (p *Player) CapturedEnemyPieces() []*Piece {
	return p.captured
}

// CapturedEnemyPiecesTotalBasicValue sums the material value of captured pieces.
func (p *Player) CapturedEnemyPiecesTotalBasicValue() int {
	v := 0
	for _, pc := range p.captured {
		v += pc.Value()
	}
	return v
}

// MaterialCount is the number of non-pawn, non-king pieces in play.
func (p *Player) MaterialCount() int { return p.materialCount }

// PawnCount is the number of pawns in play.
func (p *Player) PawnCount() int { return p.pawnCount }

func (p *Player) IncreaseMaterialCount() { p.materialCount++ }
func (p *Player) DecreaseMaterialCount() { p.materialCount-- }
func (p *Player) IncreasePawnCount()     { p.pawnCount++ }
func (p *Player) DecreasePawnCount()     { p.pawnCount-- }

// PawnForwardOffset is the square offset of a single pawn push.
func (p *Player) PawnForwardOffset() int { return geometries[p.color].forward }

// PawnAttackLeftOffset is the square offset of a capture toward the a-file
// from White's view.
func (p *Player) PawnAttackLeftOffset() int { return geometries[p.color].attackLeft }

// PawnAttackRightOffset is the square offset of a capture toward the h-file
// from White's view.
func (p *Player) PawnAttackRightOffset() int { return geometries[p.color].attackRight }

// HomeRank is the rank the side's pieces start on.
func (p *Player) HomeRank() int { return geometries[p.color].homeRank }

// PawnRank is the rank the side's pawns start on.
func (p *Player) PawnRank() int { return geometries[p.color].pawnRank }

// HasPieceName reports whether the side still has a piece of the given kind.
func (p *Player) HasPieceName(kind board.PieceType) bool {
	if kind == board.Pawn && p.pawnCount > 0 {
		return true
	}
	for _, pc := range p.pieces {
		if pc.Kind == kind {
			return true
		}
	}
	return false
}

// PieceTypes returns the distinct kinds in play, in piece order. The list is
// rebuilt on every call and reused between calls.
func (p *Player) PieceTypes() []board.PieceType {
	p.pieceTypes = p.pieceTypes[:0]
	for _, pc := range p.pieces {
		if !slices.Contains(p.pieceTypes, pc.Kind) {
			p.pieceTypes = append(p.pieceTypes, pc.Kind)
		}
	}
	return p.pieceTypes
}

// TotalPieceValue sums the material value of the pieces in play.
func (p *Player) TotalPieceValue() int64 {
	var v int64
	for _, pc := range p.pieces {
		v += int64(pc.Value())
	}
	return v
}

func (p *Player) cacheKey() hashtable.Key {
	pos := p.game.board
	return hashtable.Key{A: pos.HashA, B: pos.HashB, Color: p.color}
}

// addPiece registers a new piece on the board and the square index.
func (p *Player) addPiece(pc *Piece) {
	p.pieces = append(p.pieces, pc)
	if pc.Kind == board.King {
		p.king = pc
	}
	p.game.squares[pc.Square] = pc
	p.game.board.Put(pc.BoardPiece(), pc.Square)
}

// removePiece drops pc from the pieces in play and returns its index.
func (p *Player) removePiece(pc *Piece) int {
	i := slices.Index(p.pieces, pc)
	if i < 0 {
		return -1
	}
	p.pieces = slices.Delete(p.pieces, i, i+1)
	if pc == p.king {
		p.king = nil
	}
	return i
}

// restorePiece puts pc back at index i of the pieces in play.
func (p *Player) restorePiece(pc *Piece, i int) {
	if i < 0 || i > len(p.pieces) {
		i = len(p.pieces)
	}
	p.pieces = slices.Insert(p.pieces, i, pc)
	if pc.Kind == board.King {
		p.king = pc
	}
}

func (p *Player) countRemoved(pc *Piece) {
	switch pc.Kind {
	case board.Pawn:
		p.DecreasePawnCount()
	case board.King:
	default:
		p.DecreaseMaterialCount()
	}
}

func (p *Player) countRestored(pc *Piece) {
	switch pc.Kind {
	case board.Pawn:
		p.IncreasePawnCount()
	case board.King:
	default:
		p.IncreaseMaterialCount()
	}
}

// CaptureAllPieces removes every piece of this side from the board, the
// king included, handing them to the opponent's captured pieces.
func (p *Player) CaptureAllPieces() {
	opp := p.opponent()
	for i := len(p.pieces) - 1; i >= 0; i-- {
		pc := p.pieces[i]
		p.removePiece(pc)
		p.countRemoved(pc)
		opp.captured = append(opp.captured, pc)
		p.game.squares[pc.Square] = nil
		p.game.board.Remove(pc.Square)
	}
	p.game.board.Refresh()
}

// DemoteAllPieces turns every promoted piece back into a pawn.
func (p *Player) DemoteAllPieces() {
	changed := false
	for i := len(p.pieces) - 1; i >= 0; i-- {
		pc := p.pieces[i]
		if !pc.promoted {
			continue
		}
		pc.demote()
		p.game.board.Put(pc.BoardPiece(), pc.Square)
		changed = true
	}
	if changed {
		p.game.board.Refresh()
	}
}

func (pc *Piece) promote(kind board.PieceType) {
	pc.Kind = kind
	pc.promoted = true
	pc.player.DecreasePawnCount()
	pc.player.IncreaseMaterialCount()
}

func (pc *Piece) demote() {
	pc.Kind = board.Pawn
	pc.promoted = false
	pc.player.IncreasePawnCount()
	pc.player.DecreaseMaterialCount()
}
