package app

import (
	"fmt"

	"turmites/internal/core"
	"turmites/internal/render"
)

// Driver advances a simulation in frames: TicksPerFrame steps followed by
// exactly one render into its frame buffer. Nothing runs while paused unless
// a single step was requested.
type Driver struct {
	sim      core.Sim
	frame    []byte
	paused   bool
	tickOnce bool
}

// NewDriver allocates the frame buffer for sim.
func NewDriver(sim core.Sim) *Driver {
	size := sim.Size()
	return &Driver{sim: sim, frame: render.NewFrame(size.W, size.H)}
}

// Paused reports whether the driver is holding the simulation still.
func (d *Driver) Paused() bool { return d.paused }

// SetPaused pauses or resumes the simulation.
func (d *Driver) SetPaused(p bool) { d.paused = p }

// StepOnce requests a single frame on the next Advance even when paused.
func (d *Driver) StepOnce() { d.tickOnce = true }

// Frame returns the most recently rendered RGBA8 buffer.
func (d *Driver) Frame() []byte { return d.frame }

// Advance runs one frame if the driver is not paused. It reports whether a
// new frame was rendered.
func (d *Driver) Advance() (bool, error) {
	if d.paused && !d.tickOnce {
		return false, nil
	}
	d.tickOnce = false
	for i := TicksPerFrame(d.sim); i > 0; i-- {
		d.sim.Step()
	}
	if err := d.sim.Render(d.frame); err != nil {
		return false, fmt.Errorf("rendering %s: %w", d.sim.Name(), err)
	}
	return true, nil
}
