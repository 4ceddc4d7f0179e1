package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder

	if m.IsCastling() {
		if m.CastleWing() == KingSide {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(getDisambiguation(pos, m, pt))
		}

		if m.IsCapture(pos) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	next := pos.Copy()
	next.MakeMove(m)
	if next.IsCheckmate() {
		sb.WriteByte('#')
	} else if next.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

// getDisambiguation returns the disambiguation string needed for a move.
func getDisambiguation(pos *Position, m Move, pt PieceType) string {
	from := m.From()
	to := m.To()
	pieces := pos.Pieces[pos.PieceAt(from).Color()][pt]

	var candidates []Square
	allMoves := pos.GenerateLegalMoves()
	for _, move := range allMoves.Slice() {
		if move.To() != to || move.From() == from || move.IsCastling() {
			continue
		}
		if pieces.IsSet(move.From()) {
			candidates = append(candidates, move.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string('a' + byte(from.File()))
	}
	if !sameRank {
		return string('1' + byte(from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the corresponding legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")
	san := s

	moves := pos.GenerateLegalMoves()

	switch s {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		w := KingSide
		if len(s) == 5 {
			w = QueenSide
		}
		for _, m := range moves.Slice() {
			if m.IsCastling() && m.CastleWing() == w {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("castling not legal: %s", s)
	}

	// Promotion
	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		promoPiece = PieceTypeFromChar(s[idx+1])
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = PieceTypeFromChar(s[0])
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: missing destination")
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	for _, m := range moves.Slice() {
		if m.IsCastling() || m.To() != dest {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promoPiece != NoPieceType && (!m.IsPromotion() || m.Promotion() != promoPiece) {
			continue
		}
		if promoPiece == NoPieceType && m.IsPromotion() {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches %q", san)
}

// MovesToSAN converts a slice of moves to SAN notation.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
