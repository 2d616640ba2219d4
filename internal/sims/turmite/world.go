package turmite

import (
	"errors"
	"fmt"
	"image"

	"turmites/internal/core"
	"turmites/internal/hsv"
)

// ErrBufferSize is returned by Render when the buffer does not hold exactly
// one RGBA8 pixel per cell.
var ErrBufferSize = errors.New("render buffer size mismatch")

// World owns the shared layers and the ordered ant population.
type World struct {
	name  string
	cfg   Config
	rules Rules

	w, h   int
	layers Layers
	ants   []Ant

	stepsSinceDraw uint32
	reverse        bool
	flipCount      int
	tick           uint64
	frame          uint64

	rng *core.RNG
}

// New returns a turmite world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from cfg with its ants already
// placed from cfg.Seed. cfg is expected to pass Validate.
func NewWithConfig(cfg Config) *World {
	layers := newLayers(cfg.Width, cfg.Height)
	w := &World{
		name:   "turmites",
		cfg:    cfg,
		rules:  NewRules(cfg.Params),
		w:      layers.State.W,
		h:      layers.State.H,
		layers: layers,
		ants:   make([]Ant, cfg.Ants),
	}
	w.Reset(0)
	return w
}

// Name returns the preset the world was built from.
func (w *World) Name() string { return w.name }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Layers exposes the live cell layers.
func (w *World) Layers() *Layers { return &w.layers }

// Ants exposes the live ant population in update order.
func (w *World) Ants() []Ant { return w.ants }

// SetAnts replaces the population, keeping the given order.
func (w *World) SetAnts(ants ...Ant) {
	w.ants = append(w.ants[:0], ants...)
	w.cfg.Ants = len(w.ants)
}

// Markers returns the ant positions in update order.
func (w *World) Markers() []image.Point {
	points := make([]image.Point, len(w.ants))
	for i, a := range w.ants {
		points[i] = image.Pt(a.X, a.Y)
	}
	return points
}

// Reversed reports whether ants currently walk the reverse hue direction.
func (w *World) Reversed() bool { return w.reverse }

// Tick returns the number of Step calls since the last Reset.
func (w *World) Tick() uint64 { return w.tick }

// Frame returns the number of Render calls since the last Reset.
func (w *World) Frame() uint64 { return w.frame }

// StepsSinceDraw returns the countdown that hue2 stamps are derived from.
func (w *World) StepsSinceDraw() uint32 { return w.stepsSinceDraw }

// Hue2Settle returns the shifted hue2 value that cells come to rest at.
func (w *World) Hue2Settle() uint32 { return w.rules.hue2End }

// TicksPerFrame is the number of Step calls frontends run between renders.
func (w *World) TicksPerFrame() int { return w.cfg.Params.RateMul }

// Reset clears every layer and scatters the ants. A zero seed reuses the
// configured seed so Reset(0) is reproducible.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)

	w.layers.State.Clear()
	w.layers.Hue.Clear()
	w.layers.Hue2.Fill(w.rules.hue2End)

	for i := range w.ants {
		w.ants[i].Randomize(w.rng, w.w, w.h)
	}

	w.stepsSinceDraw = w.rules.rateMul
	w.reverse = false
	w.flipCount = 0
	w.tick = 0
	w.frame = 0
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	if w.stepsSinceDraw > 0 {
		w.stepsSinceDraw--
	}
	if !w.reverse {
		for i := range w.ants {
			w.ants[i].Step(&w.layers, &w.rules, w.stepsSinceDraw, w.reverse)
		}
	} else {
		for i := len(w.ants) - 1; i >= 0; i-- {
			w.ants[i].Step(&w.layers, &w.rules, w.stepsSinceDraw, w.reverse)
		}
	}
	w.tick++

	if w.cfg.Params.Reversal {
		w.stepReversal()
	}
}

// stepReversal counts ticks and flips the walking direction every FlipMax.
// Leaving reverse mode also scatters the ants to fresh positions.
func (w *World) stepReversal() {
	w.flipCount++
	if w.flipCount < w.cfg.Params.FlipMax {
		return
	}
	w.flipCount = 0
	w.reverse = !w.reverse
	if !w.reverse {
		for i := range w.ants {
			w.ants[i].Reverse(w.w, w.h)
			w.ants[i].Randomize(w.rng, w.w, w.h)
		}
		return
	}
	for i := len(w.ants) - 1; i >= 0; i-- {
		w.ants[i].Reverse(w.w, w.h)
	}
}

// Render paints the world into buf (RGBA8, row-major) and advances the
// time-driven state: fade counters decay and hue2 rotates toward its
// settling point.
func (w *World) Render(buf []byte) error {
	if want := 4 * w.w * w.h; len(buf) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), want)
	}
	p := w.cfg.Params
	state := w.layers.State.Cells()
	hue := w.layers.Hue.Cells()
	hue2 := w.layers.Hue2.Cells()
	advance := w.rules.colorInc2 * uint64(w.rules.rateMul)

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			idx := w.layers.State.Index(x, y)
			base := idx * 4
			switch {
			case p.ShowAnts && w.antAt(x, y):
				buf[base+0] = 0xff
				buf[base+1] = 0xff
				buf[base+2] = 0xff
			case p.HueSource == HueSourceSecondary:
				buf[base+0], buf[base+1], buf[base+2] = hsv.ToRGB(uint16(hue2[idx]>>w.rules.bitshift), 255, 255)
			default:
				buf[base+0], buf[base+1], buf[base+2] = hsv.ToRGB(hue[idx], 255, 255)
			}
			buf[base+3] = 0xff

			if state[idx] != 0 {
				state[idx]--
			}
			hue2[idx] = w.rules.advanceHue2(hue2[idx], advance)
		}
	}
	w.stepsSinceDraw = w.rules.rateMul
	w.frame++
	return nil
}

// advanceHue2 rotates a hue2 value by delta. Crossing the end hue from at or
// below it clamps there; otherwise the value wraps around the wheel.
func (r *Rules) advanceHue2(old uint32, delta uint64) uint32 {
	next := uint64(old) + delta
	if old <= r.hue2End && next > uint64(r.hue2End) {
		return r.hue2End
	}
	return uint32(next % uint64(r.hue2Mod))
}

func (w *World) antAt(x, y int) bool {
	for i := range w.ants {
		if w.ants[i].X == x && w.ants[i].Y == y {
			return true
		}
	}
	return false
}
