// Package render draws board snapshots as SVG and PNG.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/hailam/sidecore/internal/board"
)

// Default colors, in SVG notation.
const (
	DefaultLight     = "#f0d9b5"
	DefaultDark      = "#b58863"
	DefaultHighlight = "#cdd26a"
	DefaultCheck     = "#e84d4d"
)

// svgSize is the edge of the SVG document in user units.
const svgSize = 512

// Options controls what is drawn.
type Options struct {
	// Flip draws the board from Black's side.
	Flip bool
	// LastMove is highlighted unless it is board.NoMove.
	LastMove board.Move
	// Check marks the king of the side to move when it is attacked.
	Check bool
	// Coordinates adds file and rank labels. PNG output omits them.
	Coordinates bool

	Light, Dark, Highlight, CheckColor string
}

func (o Options) withDefaults() Options {
	if o.Light == "" {
		o.Light = DefaultLight
	}
	if o.Dark == "" {
		o.Dark = DefaultDark
	}
	if o.Highlight == "" {
		o.Highlight = DefaultHighlight
	}
	if o.CheckColor == "" {
		o.CheckColor = DefaultCheck
	}
	return o
}

// cellOrigin returns the top-left corner of sq.
func cellOrigin(sq board.Square, cell int, flip bool) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if flip {
		file, rank = 7-file, 7-rank
	}
	return file * cell, rank * cell
}

// SVG writes pos as an SVG document.
func SVG(w io.Writer, pos *board.Position, opts Options) error {
	opts = opts.withDefaults()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	cell := svgSize / 8
	canvas.Start(svgSize, svgSize)

	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := cellOrigin(sq, cell, opts.Flip)
		color := opts.Dark
		if sq.IsLight() {
			color = opts.Light
		}
		canvas.Rect(x, y, cell, cell, "fill:"+color)
	}

	if m := opts.LastMove; m != board.NoMove {
		for _, sq := range [2]board.Square{m.From(), m.KingTo()} {
			x, y := cellOrigin(sq, cell, opts.Flip)
			canvas.Rect(x, y, cell, cell, "fill:"+opts.Highlight+";fill-opacity:0.6")
		}
	}

	if opts.Check && pos.InCheck() {
		if k := pos.KingSquare[pos.SideToMove]; k != board.NoSquare {
			x, y := cellOrigin(k, cell, opts.Flip)
			canvas.Circle(x+cell/2, y+cell/2, cell/2, "fill:"+opts.CheckColor+";fill-opacity:0.7")
		}
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		p := pos.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		x, y := cellOrigin(sq, cell, opts.Flip)
		style := "fill:#ffffff;stroke:#000000;stroke-width:2"
		if p.Color() == board.Black {
			style = "fill:#202020;stroke:#000000;stroke-width:2"
		}
		drawPiece(canvas, p, x, y, cell, style)
	}

	if opts.Coordinates {
		for i := 0; i < 8; i++ {
			file, rank := i, i
			if opts.Flip {
				file, rank = 7-i, 7-i
			}
			style := "font-size:12px;font-family:sans-serif;fill:#000000"
			canvas.Text(i*cell+cell-10, svgSize-4, string(rune('a'+file)), style)
			canvas.Text(3, (7-i)*cell+14, fmt.Sprint(rank+1), style)
		}
	}

	canvas.End()
	_, err := w.Write(buf.Bytes())
	return err
}

// Image rasterizes pos into a size x size image.
func Image(pos *board.Position, size int, opts Options) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid size %d", size)
	}
	opts.Coordinates = false

	var buf bytes.Buffer
	if err := SVG(&buf, pos, opts); err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// Rasterize at twice the target size, then scale down for smooth edges.
	renderSize := size * 2
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))
	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)
	return out, nil
}

// PNG writes pos as a size x size PNG image.
func PNG(w io.Writer, pos *board.Position, size int, opts Options) error {
	img, err := Image(pos, size, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
