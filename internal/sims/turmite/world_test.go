package turmite

import (
	"errors"
	"image"
	"slices"
	"testing"

	"turmites/internal/hsv"
)

func smallWorld(w, h int, mutate func(*Config)) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Ants = 0
	if mutate != nil {
		mutate(&cfg)
	}
	return NewWithConfig(cfg)
}

func TestFourTicksOnFourByFour(t *testing.T) {
	world := smallWorld(4, 4, nil)
	world.SetAnts(Ant{X: 0, Y: 0, Dir: PosX})

	for i := 0; i < 4; i++ {
		world.Step()
	}

	// Every visited cell was off, so the ant turns clockwise each tick:
	// (0,0) -y -> (0,3) -x -> (3,3) +y -> (3,0) +x -> (0,0).
	ant := world.Ants()[0]
	if ant.X != 0 || ant.Y != 0 || ant.Dir != PosX {
		t.Fatalf("ant after 4 ticks = (%d,%d,%v), want (0,0,+x)", ant.X, ant.Y, ant.Dir)
	}
	fade := uint32(world.Config().Params.FadeCount)
	for _, p := range [][2]int{{0, 0}, {0, 3}, {3, 3}, {3, 0}} {
		if got := *world.Layers().State.At(p[0], p[1]); got != fade {
			t.Fatalf("cell %v state = %d, want %d", p, got, fade)
		}
	}

	// Back on a lit cell the ant turns counter-clockwise.
	world.Step()
	ant = world.Ants()[0]
	if ant.X != 0 || ant.Y != 1 || ant.Dir != PosY {
		t.Fatalf("ant after 5 ticks = (%d,%d,%v), want (0,1,+y)", ant.X, ant.Y, ant.Dir)
	}
	if got := *world.Layers().State.At(0, 0); got != 0 {
		t.Fatalf("revisited cell state = %d, want 0", got)
	}
	if world.Tick() != 5 {
		t.Fatalf("Tick = %d, want 5", world.Tick())
	}
}

func TestNewWorldInitialState(t *testing.T) {
	world := NewWithConfig(DefaultConfig())
	size := world.Size()
	if size.W != 128 || size.H != 64 {
		t.Fatalf("size = %+v, want 128x64", size)
	}
	if len(world.Ants()) != 2 {
		t.Fatalf("ants = %d, want 2", len(world.Ants()))
	}
	for _, a := range world.Ants() {
		if a.X < 0 || a.X >= size.W || a.Y < 0 || a.Y >= size.H || a.Dir >= numDirections {
			t.Fatalf("ant out of range: %+v", a)
		}
	}
	end := uint32(900) << 12
	for i, v := range world.Layers().Hue2.Cells() {
		if v != end {
			t.Fatalf("hue2[%d] = %d, want %d", i, v, end)
		}
	}
	for i, v := range world.Layers().State.Cells() {
		if v != 0 {
			t.Fatalf("state[%d] = %d, want 0", i, v)
		}
	}
	if world.StepsSinceDraw() != 4 {
		t.Fatalf("stepsSinceDraw = %d, want 4", world.StepsSinceDraw())
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ants = 8
	world := NewWithConfig(cfg)
	initial := slices.Clone(world.Ants())

	for i := 0; i < 50; i++ {
		world.Step()
	}
	world.Reset(0)
	if !slices.Equal(initial, world.Ants()) {
		t.Fatal("Reset with config seed not deterministic for ant placement")
	}
	if world.Tick() != 0 || world.Frame() != 0 {
		t.Fatalf("Reset left counters at tick=%d frame=%d", world.Tick(), world.Frame())
	}
	for i, v := range world.Layers().State.Cells() {
		if v != 0 {
			t.Fatalf("state[%d] = %d after Reset", i, v)
		}
	}

	world.Reset(777)
	seeded := slices.Clone(world.Ants())
	world.Reset(777)
	if !slices.Equal(seeded, world.Ants()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initial, seeded) {
		t.Fatal("different seeds should produce different placements")
	}
}

func TestStepsSinceDrawSaturates(t *testing.T) {
	world := smallWorld(4, 4, nil)
	for i := 0; i < 6; i++ {
		world.Step()
	}
	if got := world.StepsSinceDraw(); got != 0 {
		t.Fatalf("stepsSinceDraw = %d, want 0", got)
	}
	if err := world.Render(make([]byte, 4*4*4)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := world.StepsSinceDraw(); got != 4 {
		t.Fatalf("stepsSinceDraw after render = %d, want 4", got)
	}
}

func TestHue2StampUsesStepsSinceDraw(t *testing.T) {
	world := smallWorld(4, 4, nil)
	world.SetAnts(Ant{X: 1, Y: 1, Dir: PosX})
	world.Step()
	// The countdown is decremented before ants move: 4 -> 3.
	want := uint32(1400)<<12 + 512*3
	if got := *world.Layers().Hue2.At(1, 1); got != want {
		t.Fatalf("hue2 = %d, want %d", got, want)
	}
}

func TestAgentOrderFollowsReverseFlag(t *testing.T) {
	// Two ants on one off cell: whichever moves first sees it off and turns
	// clockwise; the second sees it lit and turns counter-clockwise.
	world := smallWorld(6, 6, nil)
	world.SetAnts(Ant{X: 2, Y: 2, Dir: PosX}, Ant{X: 2, Y: 2, Dir: PosX})
	world.Step()
	ants := world.Ants()
	if ants[0].Dir != NegY || ants[1].Dir != PosY {
		t.Fatalf("forward order dirs = %v,%v, want -y,+y", ants[0].Dir, ants[1].Dir)
	}

	world = smallWorld(6, 6, nil)
	world.SetAnts(Ant{X: 2, Y: 2, Dir: PosX}, Ant{X: 2, Y: 2, Dir: PosX})
	world.reverse = true
	world.Step()
	ants = world.Ants()
	if ants[0].Dir != PosY || ants[1].Dir != NegY {
		t.Fatalf("reverse order dirs = %v,%v, want +y,-y", ants[0].Dir, ants[1].Dir)
	}
	if got := *world.Layers().Hue.At(2, 2); got != 1534 {
		t.Fatalf("reverse hue = %d, want 1534", got)
	}
}

func TestCellFadesOnePerRender(t *testing.T) {
	world := smallWorld(3, 3, func(c *Config) { c.Params.FadeCount = 40 })
	world.SetAnts(Ant{X: 1, Y: 1, Dir: PosX})
	world.Step()
	world.SetAnts()

	buf := make([]byte, 4*3*3)
	for want := uint32(40); want > 0; want-- {
		if got := *world.Layers().State.At(1, 1); got != want {
			t.Fatalf("state before render = %d, want %d", got, want)
		}
		if err := world.Render(buf); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if got := *world.Layers().State.At(1, 1); got != 0 {
		t.Fatalf("state after fade = %d, want 0", got)
	}
	if err := world.Render(buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := *world.Layers().State.At(1, 1); got != 0 {
		t.Fatalf("faded state went to %d, want 0", got)
	}
}

func TestHue2ClampsAtSettlingPoint(t *testing.T) {
	r := testRules()
	delta := r.colorInc2 * uint64(r.rateMul)
	d := uint32(delta)
	tests := []struct {
		name string
		old  uint32
		want uint32
	}{
		{"just below end", r.hue2End - 1, r.hue2End},
		{"at end", r.hue2End, r.hue2End},
		{"far below end", 0, d},
		{"above end", r.hue2End + 1, r.hue2End + 1 + d},
		{"wraps past top", r.hue2Mod - 100, d - 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.advanceHue2(tt.old, delta); got != tt.want {
				t.Errorf("advanceHue2(%d) = %d, want %d", tt.old, got, tt.want)
			}
		})
	}

	world := smallWorld(2, 1, nil)
	*world.Layers().Hue2.At(0, 0) = r.hue2End - 1
	*world.Layers().Hue2.At(1, 0) = r.hue2End + 10
	if err := world.Render(make([]byte, 8)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := *world.Layers().Hue2.At(0, 0); got != r.hue2End {
		t.Fatalf("rendered hue2 = %d, want clamp to %d", got, r.hue2End)
	}
	if got := *world.Layers().Hue2.At(1, 0); got != r.hue2End+10+d {
		t.Fatalf("rendered hue2 = %d, want %d", got, r.hue2End+10+d)
	}
}

func TestHue2AdvanceDoesNotWrapInThirtyTwoBits(t *testing.T) {
	world := smallWorld(1, 1, func(c *Config) { c.Params.ColorInc2 = 1 << 30 })
	if err := world.Config().Validate(); err != nil {
		t.Fatalf("config should be valid: %v", err)
	}
	start := world.Hue2Settle() + 1
	*world.Layers().Hue2.At(0, 0) = start
	if err := world.Render(make([]byte, 4)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Four ticks of 1<<30 add 1<<32, which a uint32 product would lose.
	const want = (900<<12 + 1 + 1<<32) % (1536 << 12)
	if got := *world.Layers().Hue2.At(0, 0); got != want {
		t.Fatalf("hue2 = %d, want %d", got, want)
	}
}

func TestRenderRejectsWrongBuffer(t *testing.T) {
	world := smallWorld(4, 4, nil)
	for _, n := range []int{0, 4*4*4 - 1, 4*4*4 + 4} {
		buf := make([]byte, n)
		err := world.Render(buf)
		if !errors.Is(err, ErrBufferSize) {
			t.Fatalf("Render(len %d) error = %v, want ErrBufferSize", n, err)
		}
	}
	if world.Frame() != 0 {
		t.Fatalf("rejected renders advanced frame to %d", world.Frame())
	}
}

func TestRenderPaintsSelectedHue(t *testing.T) {
	world := smallWorld(2, 1, func(c *Config) { c.Params.HueSource = HueSourcePrimary })
	*world.Layers().Hue.At(0, 0) = 0
	*world.Layers().Hue.At(1, 0) = 512
	buf := make([]byte, 8)
	if err := world.Render(buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("primary render = %v, want %v", buf, want)
	}

	world = smallWorld(2, 1, nil)
	if err := world.Render(buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, g, b := hsv.ToRGB(900, 255, 255)
	for i := 0; i < 2; i++ {
		px := buf[i*4 : i*4+4]
		if px[0] != r || px[1] != g || px[2] != b || px[3] != 255 {
			t.Fatalf("hue2 pixel %d = %v, want (%d,%d,%d,255)", i, px, r, g, b)
		}
	}
}

func TestRenderShowsAnts(t *testing.T) {
	world := smallWorld(3, 1, func(c *Config) {
		c.Params.ShowAnts = true
		c.Params.HueSource = HueSourcePrimary
	})
	world.SetAnts(Ant{X: 1, Y: 0, Dir: PosX})
	buf := make([]byte, 12)
	if err := world.Render(buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !slices.Equal(buf[4:8], []byte{255, 255, 255, 255}) {
		t.Fatalf("ant pixel = %v, want white", buf[4:8])
	}
	if !slices.Equal(buf[0:4], []byte{255, 0, 0, 255}) {
		t.Fatalf("empty pixel = %v, want red", buf[0:4])
	}
}

func TestRenderIsRowMajor(t *testing.T) {
	world := smallWorld(2, 2, func(c *Config) { c.Params.HueSource = HueSourcePrimary })
	*world.Layers().Hue.At(0, 1) = 1024
	buf := make([]byte, 16)
	if err := world.Render(buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !slices.Equal(buf[8:12], []byte{0, 0, 255, 255}) {
		t.Fatalf("pixel (0,1) = %v, want blue", buf[8:12])
	}
}

func TestReversalDisabledByDefault(t *testing.T) {
	world := smallWorld(8, 8, func(c *Config) { c.Params.FlipMax = 2 })
	world.SetAnts(Ant{X: 1, Y: 1, Dir: PosX})
	for i := 0; i < 10; i++ {
		world.Step()
	}
	if world.Reversed() {
		t.Fatal("reverse toggled with reversal disabled")
	}
}

func TestReversalTogglesEveryFlipMax(t *testing.T) {
	world := smallWorld(8, 8, func(c *Config) {
		c.Params.Reversal = true
		c.Params.FlipMax = 3
	})
	world.SetAnts(Ant{X: 1, Y: 1, Dir: PosX})

	world.Step()
	world.Step()
	if world.Reversed() {
		t.Fatal("reversed before FlipMax ticks")
	}
	before := world.Ants()[0]
	scratch := newScratchLayers(world)
	world.Step()
	if !world.Reversed() {
		t.Fatal("expected reverse after FlipMax ticks")
	}
	// Entering reverse turns the ant around and moves it one extra cell.
	want := before
	want.Step(scratch, &world.rules, 0, false)
	want.Reverse(8, 8)
	if got := world.Ants()[0]; got != want {
		t.Fatalf("ant after reversal = %+v, want %+v", got, want)
	}

	for i := 0; i < 3; i++ {
		world.Step()
	}
	if world.Reversed() {
		t.Fatal("expected forward again after second FlipMax period")
	}
}

// newScratchLayers copies the world's layers so an ant step can be replayed
// without touching the world.
func newScratchLayers(w *World) *Layers {
	l := newLayers(w.w, w.h)
	copy(l.State.Cells(), w.Layers().State.Cells())
	copy(l.Hue.Cells(), w.Layers().Hue.Cells())
	copy(l.Hue2.Cells(), w.Layers().Hue2.Cells())
	return &l
}

func TestMarkersFollowAntOrder(t *testing.T) {
	world := smallWorld(8, 8, nil)
	world.SetAnts(Ant{X: 5, Y: 1}, Ant{X: 2, Y: 7})
	got := world.Markers()
	want := []image.Point{{X: 5, Y: 1}, {X: 2, Y: 7}}
	if !slices.Equal(got, want) {
		t.Fatalf("Markers = %v, want %v", got, want)
	}
}
