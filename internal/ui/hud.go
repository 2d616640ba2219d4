//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"turmites/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []controlState
	rects        []controlRects
	intSetter    core.IntParameterSetter
	boolSetter   core.BoolParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

type controlRects struct {
	top    int
	minus  image.Rectangle
	plus   image.Rectangle
	toggle image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = newControlStates(provider.ParameterControls())
		h.layoutControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.boolSetter, _ = sim.(core.BoolParameterSetter)
	return h
}

// Update refreshes the cached control values and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	refresh(h.controls, provider.Parameters())
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		s := &h.controls[i]
		if !s.hasValue {
			continue
		}
		r := h.rects[i]
		switch s.control.Type {
		case core.ParamTypeInt:
			if pointInRect(px, my, r.minus) {
				h.adjust(s, -1)
				return
			}
			if pointInRect(px, my, r.plus) {
				h.adjust(s, 1)
				return
			}
		case core.ParamTypeBool:
			if pointInRect(px, my, r.toggle) && h.boolSetter != nil {
				h.boolSetter.SetBoolParameter(s.control.Key, !s.on)
				return
			}
		}
	}
}

func (h *HUD) adjust(s *controlState, direction int) {
	if h.intSetter == nil {
		return
	}
	target, ok := nextInt(s.control, s.intValue, direction)
	if !ok {
		return
	}
	h.intSetter.SetIntParameter(s.control.Key, target)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, dim)
		return
	}
	for i := range h.controls {
		s := &h.controls[i]
		r := h.rects[i]
		labelY := r.top + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, labelY, bright)

		switch s.control.Type {
		case core.ParamTypeBool:
			h.drawButton(r.toggle, s.value, s.hasValue && h.boolSetter != nil, s.on)
		default:
			valueColor := bright
			if !s.hasValue {
				valueColor = dim
			}
			bounds := text.BoundString(face, s.value)
			text.Draw(h.panel, s.value, face, r.minus.Min.X-buttonGap-bounds.Dx(), labelY, valueColor)
			_, canDown := nextInt(s.control, s.intValue, -1)
			_, canUp := nextInt(s.control, s.intValue, 1)
			enabled := s.hasValue && h.intSetter != nil
			h.drawButton(r.minus, "-", enabled && canDown, false)
			h.drawButton(r.plus, "+", enabled && canUp, false)
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled, active bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	switch {
	case !enabled:
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	case active:
		bg = color.RGBA{R: 46, G: 110, B: 72, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	h.rects = make([]controlRects, len(h.controls))
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		toggle := image.Rect(minus.Min.X, buttonY, plus.Max.X, buttonY+buttonSize)
		h.rects[i] = controlRects{top: top, minus: minus, plus: plus, toggle: toggle}
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
