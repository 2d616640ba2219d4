package turmite

import (
	"turmites/internal/core"
	"turmites/internal/hsv"
)

// Layers is the per-cell state shared by every ant of a world. Ants mutate it
// one after another, so later ants observe the flips of earlier ones.
type Layers struct {
	// State holds fade counters: 0 is off, anything else counts down to 0.
	State *core.Grid[uint32]
	// Hue is the primary hue in [0, hsv.HueRange).
	Hue *core.Grid[uint16]
	// Hue2 is the secondary hue scaled up by the color bitshift.
	Hue2 *core.Grid[uint32]
}

func newLayers(w, h int) Layers {
	return Layers{
		State: core.NewGrid[uint32](w, h),
		Hue:   core.NewGrid[uint16](w, h),
		Hue2:  core.NewGrid[uint32](w, h),
	}
}

// Rules is the precomputed integer form of Params used in the hot loops.
type Rules struct {
	fadeCount uint32
	colorInc  int
	colorInc2 uint64
	rateMul   uint32
	bitshift  uint
	hue2Start uint32
	hue2End   uint32
	hue2Mod   uint32
}

// NewRules derives Rules from p. p is expected to pass Validate.
func NewRules(p Params) Rules {
	return Rules{
		fadeCount: uint32(p.FadeCount),
		colorInc:  p.ColorInc,
		colorInc2: uint64(p.ColorInc2),
		rateMul:   uint32(p.RateMul),
		bitshift:  p.ColorBitshift,
		hue2Start: uint32(p.Hue2Start) << p.ColorBitshift,
		hue2End:   uint32(p.Hue2End) << p.ColorBitshift,
		hue2Mod:   uint32(hsv.HueRange) << p.ColorBitshift,
	}
}

// Ant is a single turmite walking the torus.
type Ant struct {
	X, Y int
	Dir  Direction
}

// Step applies one turn, flip, recolor and advance at the ant's cell.
func (a *Ant) Step(l *Layers, r *Rules, stepsSinceDraw uint32, reverse bool) {
	state := l.State.At(a.X, a.Y)

	if *state == 0 {
		a.Dir = a.Dir.Clockwise()
	} else {
		a.Dir = a.Dir.CounterClockwise()
	}

	if *state == 0 {
		*state = r.fadeCount
	} else {
		*state = 0
	}

	a.color(l, r, stepsSinceDraw, reverse)
	a.advance(l.State.W, l.State.H)
}

func (a *Ant) color(l *Layers, r *Rules, stepsSinceDraw uint32, reverse bool) {
	hue := l.Hue.At(a.X, a.Y)
	h := int(*hue)
	if reverse {
		h -= r.colorInc
	} else {
		h += r.colorInc
	}
	h %= hsv.HueRange
	if h < 0 {
		h += hsv.HueRange
	}
	*hue = uint16(h)

	stamp := uint64(r.hue2Start) + r.colorInc2*uint64(stepsSinceDraw)
	*l.Hue2.At(a.X, a.Y) = uint32(stamp % uint64(r.hue2Mod))
}

// advance moves one cell along Dir and wraps around the torus.
func (a *Ant) advance(w, h int) {
	dx, dy := a.Dir.Delta()
	a.X += dx
	a.Y += dy
	if a.X < 0 {
		a.X = w - 1
	}
	if a.Y < 0 {
		a.Y = h - 1
	}
	if a.X >= w {
		a.X = 0
	}
	if a.Y >= h {
		a.Y = 0
	}
}

// Reverse turns the ant around and advances it one cell.
func (a *Ant) Reverse(w, h int) {
	a.Dir = a.Dir.Opposite()
	a.advance(w, h)
}

// Randomize places the ant uniformly on a w*h grid with a random heading.
func (a *Ant) Randomize(rng *core.RNG, w, h int) {
	a.X = rng.IntN(w)
	a.Y = rng.IntN(h)
	a.Dir = Direction(rng.Uint8n(uint8(numDirections)))
}
