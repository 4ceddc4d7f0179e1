package game

import "github.com/hailam/sidecore/internal/board"

// Draw detection works on explicit inputs so it can be exercised without a
// running game.

// position identifies a board configuration by its hash pair.
type position struct {
	a, b uint64
}

// canClaimFiftyMoveDraw reports the fifty-move flag of the last move, or
// for an empty history whether the starting half-move clock reached 100.
func canClaimFiftyMoveDraw(h *History, startHalfMoves int) bool {
	if last := h.Last(); last != nil {
		return last.IsFiftyMoveDraw
	}
	return startHalfMoves >= 100
}

// canClaimMoveRepetitionDraw walks the history backwards two plies at a
// time, so only positions with the same side to move are compared, and
// reports whether current has occurred n times. The walk stops at the first
// pawn move or capture. If it runs off the start of the history, the
// starting position is checked as one more entry.
func canClaimMoveRepetitionDraw(h *History, start, current position, n int) (bool, error) {
	if n < 1 {
		return false, ErrInvalidRepetitionCount
	}
	if h.Len() == 0 {
		return false, nil
	}

	count := 1
	i := h.Len() - 1
	for ; i >= 0; i -= 2 {
		m := h.At(i)
		if m.HashA == current.a && m.HashB == current.b {
			if count >= n {
				return true, nil
			}
			count++
		}
		if m.IsPawnMove() || m.Captured != nil {
			return false, nil
		}
	}

	if i == -1 && start == current && count >= n {
		return true, nil
	}
	return false, nil
}

// canClaimInsufficientMaterialDraw covers K v K, K+B v K and K+N v K.
func canClaimInsufficientMaterialDraw(white, black []*Piece) bool {
	if len(white) > 2 || len(black) > 2 {
		return false
	}
	if len(white) == 2 && len(black) == 2 {
		return false
	}
	if len(white) == 1 && len(black) == 1 {
		return true
	}

	two := white
	if len(black) == 2 {
		two = black
	}
	if len(two) != 2 {
		return false
	}
	other := two[0]
	if other.Kind == board.King {
		other = two[1]
	}
	return other.Kind == board.Bishop || other.Kind == board.Knight
}

// CanClaimFiftyMoveDraw reports whether fifty moves passed without a pawn
// move or capture.
func (p *Player) CanClaimFiftyMoveDraw() bool {
	return canClaimFiftyMoveDraw(&p.game.history, p.game.startHalfMoves)
}

// CanClaimInsufficientMaterialDraw reports whether neither side can mate.
func (p *Player) CanClaimInsufficientMaterialDraw() bool {
	g := p.game
	return canClaimInsufficientMaterialDraw(g.players[board.White].pieces, g.players[board.Black].pieces)
}

// CanClaimThreeMoveRepetitionDraw reports a threefold repetition.
func (p *Player) CanClaimThreeMoveRepetitionDraw() (bool, error) {
	return p.CanClaimMoveRepetitionDraw(3)
}

// CanClaimMoveRepetitionDraw reports whether the current position occurred
// n times since the last pawn move or capture.
func (p *Player) CanClaimMoveRepetitionDraw(n int) (bool, error) {
	g := p.game
	return canClaimMoveRepetitionDraw(&g.history, g.start, g.current(), n)
}
