package game

import (
	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/hashtable"
)

// Evaluation terms. The dominant terms stay far below the int64 range even
// when added to every ordinary term of both sides.
const (
	bishopPairBonus  = 500
	rookPairBonus    = 100
	castledBonus     = 117
	kingMovedPenalty = -247
	rookMovedPenalty = -107
	repetitionBonus  = 1_000_000_000
	checkmatePenalty = -999_999_999
)

// Points is the side's total evaluation: placement plus material.
func (p *Player) Points() (int64, error) {
	pos, err := p.PositionPoints()
	if err != nil {
		return 0, err
	}
	return pos + p.TotalPieceValue(), nil
}

// Score is Points relative to the opponent; positive favors this side.
func (p *Player) Score() (int64, error) {
	own, err := p.Points()
	if err != nil {
		return 0, err
	}
	opp, err := p.opponent().Points()
	if err != nil {
		return 0, err
	}
	return own - opp, nil
}

// PositionPoints scores the side's position excluding material value.
func (p *Player) PositionPoints() (int64, error) {
	points := int64(p.pawnPoints())

	bishops, rooks := 0, 0
	for i := len(p.pieces) - 1; i >= 0; i-- {
		pc := p.pieces[i]
		if pc.Kind == board.Pawn {
			continue
		}
		points += int64(pc.PositionalPoints())
		switch pc.Kind {
		case board.Bishop:
			bishops++
		case board.Rook:
			rooks++
		}
	}
	if bishops >= 2 {
		points += bishopPairBonus
	}
	if rooks >= 2 {
		points += rookPairBonus
	}

	// A repetition is scored high for a human side only, steering the
	// computer away from repeating against it.
	if last := p.game.history.Last(); last != nil && last.IsThreeMoveRepetition && p.Intelligence == Human {
		points += repetitionBonus
	}

	points += p.castlingPoints()

	mate, err := p.IsInCheckMate()
	if err != nil {
		return 0, err
	}
	if mate {
		points += checkmatePenalty
	}
	return points, nil
}

// pawnPoints sums the positional value of the side's pawns, cached per
// position. The table is written only when the score was recomputed.
func (p *Player) pawnPoints() int {
	key := p.cacheKey()
	if v := p.game.pawns.Probe(key); v != hashtable.NotFound {
		return int(v)
	}

	if p.game.onPawnEval != nil {
		p.game.onPawnEval(p.color)
	}
	score := 0
	for i := len(p.pieces) - 1; i >= 0; i-- {
		if pc := p.pieces[i]; pc.Kind == board.Pawn {
			score += pc.PositionalPoints()
		}
	}
	p.game.pawns.Record(key, int32(score))
	return score
}

func (p *Player) castlingPoints() int64 {
	if p.HasCastled {
		return castledBonus
	}
	if p.king != nil && p.king.HasMoved() {
		return kingMovedPenalty
	}

	var points int64
	for _, sq := range p.rookHomes {
		if !p.rookAtHome(sq) {
			points += rookMovedPenalty
		}
	}
	return points
}

// rookAtHome reports whether an unmoved rook of this side stands on sq.
func (p *Player) rookAtHome(sq board.Square) bool {
	if sq == board.NoSquare {
		return false
	}
	pc := p.game.squares[sq]
	return pc != nil && pc.Kind == board.Rook && pc.player == p && !pc.HasMoved()
}
