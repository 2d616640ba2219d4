// Package term draws simulation frames on a character terminal.
package term

import (
	"image/color"

	"turmites/internal/render"

	"github.com/gdamore/tcell/v2"
)

// upperHalf shows the top pixel as foreground and the bottom one as
// background, packing two grid rows into each terminal row.
const upperHalf = '▀'

// Painter draws w*h RGBA8 frames onto a tcell screen.
type Painter struct {
	screen tcell.Screen
	w, h   int
}

// NewPainter returns a painter for a w*h grid.
func NewPainter(screen tcell.Screen, w, h int) *Painter {
	return &Painter{screen: screen, w: w, h: h}
}

// Rows returns how many terminal rows a full grid occupies.
func (p *Painter) Rows() int { return (p.h + 1) / 2 }

// Draw copies frame onto the screen, clipped to its size.
func (p *Painter) Draw(frame []byte) {
	sw, sh := p.screen.Size()
	cols := min(p.w, sw)
	rows := min(p.Rows(), sh)
	for row := 0; row < rows; row++ {
		y := row * 2
		for x := 0; x < cols; x++ {
			top := render.PixelAt(frame, p.w, x, y)
			var bottom color.RGBA
			if y+1 < p.h {
				bottom = render.PixelAt(frame, p.w, x, y+1)
			}
			p.screen.SetContent(x, row, upperHalf, nil, CellStyle(top.R, top.G, top.B, bottom.R, bottom.G, bottom.B))
		}
	}
}

// CellStyle returns the style for a half-block cell.
func CellStyle(tr, tg, tb, br, bg, bb uint8) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
		Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
}

// DrawText writes s starting at (x, y) and returns the column after it.
func DrawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
