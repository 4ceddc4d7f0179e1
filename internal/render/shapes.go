package render

import (
	svg "github.com/ajstarks/svgo"

	"github.com/hailam/sidecore/internal/board"
)

type shapeKind uint8

const (
	circle shapeKind = iota
	ellipse
	rect
	polygon
)

// shape is one primitive of a piece glyph in a 100x100 cell.
// circle: cx, cy, r. ellipse: cx, cy, rx, ry. rect: x, y, w, h.
// polygon: x0, y0, x1, y1, ...
type shape struct {
	kind shapeKind
	v    []int
}

var glyphs = [6][]shape{
	board.Pawn: {
		{polygon, []int{30, 85, 70, 85, 62, 58, 38, 58}},
		{circle, []int{50, 40, 14}},
	},
	board.Knight: {
		{polygon, []int{28, 85, 74, 85, 70, 60, 66, 35, 55, 18, 48, 22, 38, 28, 26, 44, 30, 52, 44, 46, 40, 60, 30, 72}},
	},
	board.Bishop: {
		{polygon, []int{30, 85, 70, 85, 64, 72, 36, 72}},
		{ellipse, []int{50, 50, 14, 22}},
		{circle, []int{50, 22, 6}},
	},
	board.Rook: {
		{polygon, []int{
			25, 85, 75, 85, 75, 75, 68, 75, 65, 40, 72, 40, 72, 20, 63, 20, 63, 28, 55, 28,
			55, 20, 45, 20, 45, 28, 37, 28, 37, 20, 28, 20, 28, 40, 35, 40, 32, 75, 25, 75,
		}},
	},
	board.Queen: {
		{polygon, []int{28, 85, 72, 85, 78, 30, 63, 55, 58, 22, 50, 52, 42, 22, 37, 55, 22, 30}},
		{circle, []int{22, 28, 5}},
		{circle, []int{42, 20, 5}},
		{circle, []int{58, 20, 5}},
		{circle, []int{78, 28, 5}},
	},
	board.King: {
		{polygon, []int{28, 85, 72, 85, 68, 45, 32, 45}},
		{rect, []int{46, 12, 8, 30}},
		{rect, []int{36, 20, 28, 8}},
	},
}

// drawPiece draws p into the cell whose top-left corner is (x, y).
func drawPiece(canvas *svg.SVG, p board.Piece, x, y, cell int, style string) {
	if p == board.NoPiece {
		return
	}
	scale := func(v int) int { return v * cell / 100 }
	for _, s := range glyphs[p.Type()] {
		switch s.kind {
		case circle:
			canvas.Circle(x+scale(s.v[0]), y+scale(s.v[1]), scale(s.v[2]), style)
		case ellipse:
			canvas.Ellipse(x+scale(s.v[0]), y+scale(s.v[1]), scale(s.v[2]), scale(s.v[3]), style)
		case rect:
			canvas.Rect(x+scale(s.v[0]), y+scale(s.v[1]), scale(s.v[2]), scale(s.v[3]), style)
		case polygon:
			xs := make([]int, 0, len(s.v)/2)
			ys := make([]int, 0, len(s.v)/2)
			for i := 0; i+1 < len(s.v); i += 2 {
				xs = append(xs, x+scale(s.v[i]))
				ys = append(ys, y+scale(s.v[i+1]))
			}
			canvas.Polygon(xs, ys, style)
		}
	}
}
