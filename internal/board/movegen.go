package board

import "log"

// DebugMoveValidation logs inconsistencies found while making moves.
var DebugMoveValidation = false

// GenerateMovesFrom appends the pseudo-legal moves of the piece on sq to ml.
// The piece need not belong to the side to move; en passant is only
// offered to the side to move. Captures of a king are never generated.
func (p *Position) GenerateMovesFrom(sq Square, kind MoveKind, ml *MoveList) {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return
	}
	us := piece.Color()
	them := us.Other()
	enemies := p.Occupied[them] &^ p.Pieces[them][King]

	targets := ^p.Occupied[us] &^ p.Pieces[them][King]
	if kind == CapturesAndPromotions {
		targets = enemies
	}

	switch piece.Type() {
	case Pawn:
		p.generatePawnMovesFrom(ml, sq, us, kind, enemies)
	case Knight:
		addMoves(ml, sq, KnightAttacks(sq)&targets)
	case Bishop:
		addMoves(ml, sq, BishopAttacks(sq, p.AllOccupied)&targets)
	case Rook:
		addMoves(ml, sq, RookAttacks(sq, p.AllOccupied)&targets)
	case Queen:
		addMoves(ml, sq, QueenAttacks(sq, p.AllOccupied)&targets)
	case King:
		addMoves(ml, sq, KingAttacks(sq)&targets)
		if kind == AllMoves {
			p.generateCastlingMoves(ml, us)
		}
	}
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	return p.generate(AllMoves)
}

// GenerateLegalMoves generates all legal moves for the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.filterLegalMoves(p.generate(AllMoves))
}

// GenerateCaptures generates all legal captures and promotions.
func (p *Position) GenerateCaptures() *MoveList {
	return p.filterLegalMoves(p.generate(CapturesAndPromotions))
}

func (p *Position) generate(kind MoveKind) *MoveList {
	ml := NewMoveList()
	own := p.Occupied[p.SideToMove]
	for own != 0 {
		p.GenerateMovesFrom(own.PopLSB(), kind, ml)
	}
	return ml
}

func addMoves(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// generatePawnMovesFrom generates the moves of the pawn on from.
func (p *Position) generatePawnMovesFrom(ml *MoveList, from Square, us Color, kind MoveKind, enemies Bitboard) {
	forward := 8
	if us == Black {
		forward = -8
	}
	lastRank := HomeRank(us.Other())
	if from.Rank() == lastRank {
		return
	}

	push := Square(int(from) + forward)
	if p.IsEmpty(push) {
		if push.Rank() == lastRank {
			addPromotions(ml, from, push)
		} else if kind == AllMoves {
			ml.Add(NewMove(from, push))
			if from.RelativeRank(us) == 1 {
				double := Square(int(push) + forward)
				if p.IsEmpty(double) {
					ml.Add(NewMove(from, double))
				}
			}
		}
	}

	attacks := PawnAttacks(from, us)
	captures := attacks & enemies
	for captures != 0 {
		to := captures.PopLSB()
		if to.Rank() == lastRank {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to))
		}
	}

	if p.EnPassant != NoSquare && us == p.SideToMove && attacks.IsSet(p.EnPassant) {
		ml.Add(NewEnPassant(from, p.EnPassant))
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// rankSpan returns the squares of one rank from a to b inclusive.
func rankSpan(a, b Square) Bitboard {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb Bitboard
	for sq := lo; sq <= hi; sq++ {
		bb |= SquareBB(sq)
	}
	return bb
}

// generateCastlingMoves generates castling moves for standard and Chess960
// setups. Every square the king or rook crosses must be empty apart from
// the two castling pieces, and no square on the king's path may be attacked.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	ksq := p.KingSquare[us]
	if ksq == NoSquare || ksq.Rank() != HomeRank(us) {
		return
	}

	for w := KingSide; w <= QueenSide; w++ {
		if !p.CastlingRights.CanCastle(us, w) {
			continue
		}
		rsq := p.CastleRook[us][w]
		if rsq == NoSquare || p.PieceAt(rsq) != NewPiece(Rook, us) {
			continue
		}

		kingTo, rookTo := CastleTargets(us, w)
		kingPath := rankSpan(ksq, kingTo)
		crossed := (kingPath | rankSpan(rsq, rookTo)) &^ (SquareBB(ksq) | SquareBB(rsq))
		if crossed&p.AllOccupied != 0 {
			continue
		}

		safe := true
		for path := kingPath; path != 0; {
			if p.IsSquareAttacked(path.PopLSB(), them) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(NewCastling(ksq, rsq))
		}
	}
}

// filterLegalMoves keeps the moves that do not leave the mover's king in
// check, using make/unmake.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			result.Add(ml.Get(i))
		}
	}
	return result
}

// IsLegal returns true if the move can be made and does not leave the
// mover's king in check.
func (p *Position) IsLegal(m Move) bool {
	mover := p.PieceAt(m.From()).Color()
	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	attacked := p.KingAttacked(mover)
	p.UnmakeMove(m, undo)
	return !attacked
}

// MakeMove applies a move to the position and returns undo information.
// The mover is the piece on the from square; the side to move afterwards is
// its opponent.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CapturedSquare: NoSquare,
		SideToMove:     p.SideToMove,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		HashA:          p.HashA,
		HashB:          p.HashB,
		Checkers:       p.Checkers,
		KingSquare:     p.KingSquare,
		Pieces:         p.Pieces,
		Occupied:       p.Occupied,
		AllOccupied:    p.AllOccupied,
	}

	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		if DebugMoveValidation {
			log.Printf("MAKEMOVE: no piece on %v for move %v hash=%x", from, m, p.HashA)
		}
		return undo
	}

	us := piece.Color()
	them := us.Other()
	pt := piece.Type()

	if m.IsCastling() && (pt != King || p.PieceAt(to) != NewPiece(Rook, us)) {
		if DebugMoveValidation {
			log.Printf("MAKEMOVE: malformed castling %v hash=%x", m, p.HashA)
		}
		return undo
	}
	if captured := p.PieceAt(to); !m.IsCastling() && captured != NoPiece && captured.Color() == us {
		if DebugMoveValidation {
			log.Printf("MAKEMOVE: %v would capture own %v on %v hash=%x", m, captured, to, p.HashA)
		}
		return undo
	}
	undo.Valid = true

	p.hashCastling(p.CastlingRights)
	p.hashEnPassant(p.EnPassant)
	p.EnPassant = NoSquare

	switch {
	case m.IsCastling():
		w := m.CastleWing()
		kingTo, rookTo := CastleTargets(us, w)
		p.removePiece(from)
		p.removePiece(to)
		p.setPiece(NewPiece(King, us), kingTo)
		p.setPiece(NewPiece(Rook, us), rookTo)
		p.hashPiece(us, King, from)
		p.hashPiece(us, King, kingTo)
		p.hashPiece(us, Rook, to)
		p.hashPiece(us, Rook, rookTo)

	default:
		capSq := to
		if m.IsEnPassant() {
			capSq = NewSquare(to.File(), from.Rank())
		}
		if captured := p.removePiece(capSq); captured != NoPiece {
			undo.CapturedPiece = captured
			undo.CapturedSquare = capSq
			p.hashPiece(them, captured.Type(), capSq)
		}

		p.movePiece(from, to)
		p.hashPiece(us, pt, from)
		p.hashPiece(us, pt, to)

		if m.IsPromotion() {
			promo := m.Promotion()
			p.Pieces[us][Pawn] &^= SquareBB(to)
			p.Pieces[us][promo] |= SquareBB(to)
			p.hashPiece(us, Pawn, to)
			p.hashPiece(us, promo, to)
		}

		if pt == Pawn && abs(int(to)-int(from)) == 16 {
			p.EnPassant = Square((int(from) + int(to)) / 2)
			p.hashEnPassant(p.EnPassant)
		}
	}

	// Castling rights
	if pt == King {
		p.CastlingRights &^= CastleRight(us, KingSide) | CastleRight(us, QueenSide)
	}
	for c := White; c <= Black; c++ {
		for w := KingSide; w <= QueenSide; w++ {
			if rsq := p.CastleRook[c][w]; rsq == from || rsq == to {
				p.CastlingRights &^= CastleRight(c, w)
			}
		}
	}
	p.hashCastling(p.CastlingRights)

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	if p.SideToMove != them {
		p.hashSide()
		p.SideToMove = them
	}
	p.UpdateCheckers()

	return undo
}

// UnmakeMove undoes a move using the stored undo information.
// Uses full position restoration to avoid issues with movePiece failures.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	if !undo.Valid {
		return
	}
	p.SideToMove = undo.SideToMove
	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.FullMoveNumber = undo.FullMoveNumber
	p.HashA = undo.HashA
	p.HashB = undo.HashB
	p.Checkers = undo.Checkers
	p.KingSquare = undo.KingSquare
	p.Pieces = undo.Pieces
	p.Occupied = undo.Occupied
	p.AllOccupied = undo.AllOccupied
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
