//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter holds the grid texture and draws it scaled.
type GridPainter struct {
	img *ebiten.Image
}

// NewGridPainter allocates a texture for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{img: ebiten.NewImage(w, h)}
}

// Upload replaces the texture contents with an RGBA8 frame.
func (gp *GridPainter) Upload(frame []byte) {
	gp.img.WritePixels(frame)
}

// Blit draws the last uploaded frame onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
