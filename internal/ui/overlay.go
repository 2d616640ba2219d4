//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"turmites/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type markerProvider interface {
	Markers() []image.Point
}

// Overlay draws the status line and optional ant markers over the grid.
type Overlay struct {
	sim         core.Sim
	scale       int
	paused      bool
	showStatus  bool
	showMarkers bool
	pixel       *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showStatus: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update records the pause state and handles the overlay toggles.
func (o *Overlay) Update(paused bool) {
	o.paused = paused
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showStatus = !o.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMarkers = !o.showMarkers
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showMarkers {
		if provider, ok := o.sim.(markerProvider); ok {
			o.drawMarkers(screen, provider.Markers(), scale)
		}
	}
	if o.showStatus {
		o.drawStatus(screen)
	}
}

func (o *Overlay) drawMarkers(screen *ebiten.Image, points []image.Point, scale int) {
	span := max(scale*3, 6)
	for _, p := range points {
		cx := float64(p.X*scale) + float64(scale)/2
		cy := float64(p.Y*scale) + float64(scale)/2
		o.rect(screen, cx-float64(span)/2, cy-0.5, float64(span), 1, color.RGBA{R: 255, A: 255})
		o.rect(screen, cx-0.5, cy-float64(span)/2, 1, float64(span), color.RGBA{R: 255, A: 255})
	}
}

func (o *Overlay) drawStatus(screen *ebiten.Image) {
	line := statusLine(o.sim, o.paused)
	line = fmt.Sprintf("%s  tps %.0f", line, ebiten.ActualTPS())
	face := basicfont.Face7x13
	bounds := text.BoundString(face, line)
	o.rect(screen, 0, 0, float64(bounds.Dx()+8), float64(bounds.Dy()+8), color.RGBA{A: 180})
	text.Draw(screen, line, face, 4, 4-bounds.Min.Y, color.White)
}

func (o *Overlay) rect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
