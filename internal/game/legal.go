package game

import (
	"fmt"
	"log"

	"github.com/hailam/sidecore/internal/board"
)

// DebugLegalMoves logs every candidate rejected by the legal filter.
var DebugLegalMoves = false

// Status is the check state of a side.
type Status uint8

const (
	Normal Status = iota
	InCheck
	InStalemate
	InCheckMate
)

func (s Status) String() string {
	switch s {
	case InCheck:
		return "in check"
	case InStalemate:
		return "stalemate"
	case InCheckMate:
		return "checkmate"
	}
	return "normal"
}

// GenerateLazyMoves appends the pseudo-legal moves of every piece the side
// owns to moves and returns the extended slice.
func (p *Player) GenerateLazyMoves(moves []*Move, kind board.MoveKind) []*Move {
	ml := board.NewMoveList()
	for _, pc := range p.pieces {
		ml.Clear()
		p.game.board.GenerateMovesFrom(pc.Square, kind, ml)
		for i := 0; i < ml.Len(); i++ {
			moves = append(moves, p.game.newMove(ml.Get(i)))
		}
	}
	return moves
}

// GenerateLegalMoves appends the side's legal moves to moves. Every
// candidate is applied, tested for leaving the own king attacked and undone
// before the next one; rejected candidates are removed after the scan.
func (p *Player) GenerateLegalMoves(moves []*Move) ([]*Move, error) {
	base := len(moves)
	moves = p.GenerateLazyMoves(moves, board.AllMoves)

	var drop []int
	for i := len(moves) - 1; i >= base; i-- {
		m := moves[i]
		if err := p.game.apply(m); err != nil {
			drop = append(drop, i)
			continue
		}
		inCheck, err := p.IsInCheck()
		p.game.undo(m)
		if err != nil {
			return moves[:base], err
		}
		if inCheck {
			if DebugLegalMoves {
				log.Printf("legal: %v %v leaves king attacked", p.color, m)
			}
			drop = append(drop, i)
		}
	}

	// drop is in descending index order.
	for _, i := range drop {
		moves = append(moves[:i], moves[i+1:]...)
	}
	return moves, nil
}

// IsInCheck reports whether the side's king is attacked. The answer is
// served from the check table when the current position was seen before.
func (p *Player) IsInCheck() (bool, error) {
	if p.king == nil {
		log.Printf("game: %v has no king on %s", p.color, p.game.board.ToFEN())
		return false, fmt.Errorf("%v: %w", p.color, ErrNoKing)
	}

	key := p.cacheKey()
	if inCheck, ok := p.game.checks.Probe(key); ok {
		return inCheck, nil
	}
	inCheck := p.game.board.IsSquareAttacked(p.king.Square, p.color.Other())
	p.game.checks.Record(key, inCheck)
	return inCheck, nil
}

// IsInCheckMate reports whether the side is in check with no legal reply.
func (p *Player) IsInCheckMate() (bool, error) {
	inCheck, err := p.IsInCheck()
	if err != nil || !inCheck {
		return false, err
	}
	moves, err := p.GenerateLegalMoves(nil)
	if err != nil {
		return false, err
	}
	return len(moves) == 0, nil
}

// CanMove reports whether the side has at least one legal move.
func (p *Player) CanMove() (bool, error) {
	ml := board.NewMoveList()
	for _, pc := range p.pieces {
		ml.Clear()
		p.game.board.GenerateMovesFrom(pc.Square, board.AllMoves, ml)
		for i := 0; i < ml.Len(); i++ {
			ok, err := p.isLegal(p.game.newMove(ml.Get(i)))
			if err != nil || ok {
				return ok, err
			}
		}
	}
	return false, nil
}

func (p *Player) isLegal(m *Move) (bool, error) {
	if err := p.game.apply(m); err != nil {
		return false, nil
	}
	inCheck, err := p.IsInCheck()
	p.game.undo(m)
	return err == nil && !inCheck, err
}

// Status resolves checkmate, stalemate and check, in that order.
func (p *Player) Status() (Status, error) {
	mate, err := p.IsInCheckMate()
	if err != nil {
		return Normal, err
	}
	if mate {
		return InCheckMate, nil
	}
	canMove, err := p.CanMove()
	if err != nil {
		return Normal, err
	}
	if !canMove {
		return InStalemate, nil
	}
	inCheck, err := p.IsInCheck()
	if err != nil {
		return Normal, err
	}
	if inCheck {
		return InCheck, nil
	}
	return Normal, nil
}
