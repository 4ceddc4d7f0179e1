package game

// Perft counts the leaf nodes of the legal move tree to the given depth,
// generating with the side to move's legal filter and playing every move
// through the game. The game is left as it was.
func (g *Game) Perft(depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	moves, err := g.PlayerToPlay().GenerateLegalMoves(nil)
	if err != nil {
		return 0, err
	}
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		if err := g.apply(m); err != nil {
			return nodes, err
		}
		n, err := g.Perft(depth - 1)
		g.undo(m)
		if err != nil {
			return nodes, err
		}
		nodes += n
	}
	return nodes, nil
}
