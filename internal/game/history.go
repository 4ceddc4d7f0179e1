package game

// History is the ordered list of moves played, oldest first.
type History struct {
	moves []*Move
}

// Len returns the number of moves played.
func (h *History) Len() int {
	return len(h.moves)
}

// At returns the i-th move, oldest first.
func (h *History) At(i int) *Move {
	return h.moves[i]
}

// Last returns the most recent move, or nil for an empty history.
func (h *History) Last() *Move {
	if len(h.moves) == 0 {
		return nil
	}
	return h.moves[len(h.moves)-1]
}

// Moves returns a copy of the played moves.
func (h *History) Moves() []*Move {
	return append([]*Move(nil), h.moves...)
}

func (h *History) push(m *Move) {
	h.moves = append(h.moves, m)
}

func (h *History) pop() *Move {
	m := h.moves[len(h.moves)-1]
	h.moves[len(h.moves)-1] = nil
	h.moves = h.moves[:len(h.moves)-1]
	return m
}
