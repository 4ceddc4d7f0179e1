package game

import "github.com/hailam/sidecore/internal/board"

// geometry holds the per-color board constants, in board square offsets.
type geometry struct {
	forward     int
	attackLeft  int
	attackRight int
	homeRank    int
	pawnRank    int
}

var geometries = [2]geometry{
	board.White: {forward: 8, attackLeft: 7, attackRight: 9, homeRank: 0, pawnRank: 1},
	board.Black: {forward: -8, attackLeft: -9, attackRight: -7, homeRank: 7, pawnRank: 6},
}
