package app

import (
	"testing"

	"turmites/internal/sims/turmite"
)

func TestDriverPairsTicksWithOneRender(t *testing.T) {
	world := turmite.New(8, 8)
	d := NewDriver(world)

	rendered, err := d.Advance()
	if err != nil || !rendered {
		t.Fatalf("Advance = (%v, %v), want a rendered frame", rendered, err)
	}
	if world.Frame() != 1 || world.Tick() != uint64(world.TicksPerFrame()) {
		t.Fatalf("after one frame: tick %d frame %d", world.Tick(), world.Frame())
	}
	if len(d.Frame()) != 4*8*8 {
		t.Fatalf("frame has %d bytes", len(d.Frame()))
	}
}

func TestDriverPausedFreezesState(t *testing.T) {
	cfg := turmite.DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	world := turmite.NewWithConfig(cfg)
	d := NewDriver(world)
	if _, err := d.Advance(); err != nil {
		t.Fatal(err)
	}

	l := world.Layers()
	state := append([]uint32(nil), l.State.Cells()...)
	hue2 := append([]uint32(nil), l.Hue2.Cells()...)

	d.SetPaused(true)
	for i := 0; i < 5; i++ {
		if rendered, err := d.Advance(); err != nil || rendered {
			t.Fatalf("paused Advance = (%v, %v)", rendered, err)
		}
	}
	if world.Frame() != 1 || world.Tick() != uint64(world.TicksPerFrame()) {
		t.Fatalf("paused driver moved the world: tick %d frame %d", world.Tick(), world.Frame())
	}
	for i := range state {
		if l.State.Cells()[i] != state[i] || l.Hue2.Cells()[i] != hue2[i] {
			t.Fatalf("cell %d changed while paused", i)
		}
	}

	d.StepOnce()
	if rendered, err := d.Advance(); err != nil || !rendered {
		t.Fatalf("single step = (%v, %v)", rendered, err)
	}
	if world.Frame() != 2 {
		t.Fatalf("frame = %d after single step, want 2", world.Frame())
	}
	if rendered, _ := d.Advance(); rendered {
		t.Fatal("single step should not keep running")
	}
}
