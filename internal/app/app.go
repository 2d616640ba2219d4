//go:build ebiten

package app

import (
	"fmt"
	"log/slog"
	"time"

	"turmites/internal/core"
	"turmites/internal/record"
	"turmites/internal/render"
	"turmites/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	driver  *Driver
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	logger  *slog.Logger

	scale    int
	hudWidth int
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *slog.Logger) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		driver:   NewDriver(sim),
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, cfg.HUD),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		logger:   logger,
		scale:    cfg.Scale,
		hudWidth: cfg.HUD,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.logger.Info("reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.driver.SetPaused(!g.driver.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.driver.SetPaused(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.driver.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.toggle("show_ants")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.toggle("hue2")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.screenshot()
	}

	g.overlay.Update(g.driver.Paused())
	g.hud.Update(g.sim.Size().W * g.scale)

	rendered, err := g.driver.Advance()
	if err != nil {
		return err
	}
	if rendered {
		g.painter.Upload(g.driver.Frame())
	}
	return nil
}

func (g *Game) toggle(key string) {
	if value, ok := ToggleBool(g.sim, key); ok {
		g.logger.Debug("toggled parameter", "key", key, "value", value)
	}
}

// screenshot saves the last painted frame at the window scale.
func (g *Game) screenshot() {
	size := g.sim.Size()
	path := fmt.Sprintf("%s-%d.png", g.sim.Name(), time.Now().Unix())
	if err := record.WritePNG(path, g.driver.Frame(), size.W, size.H, g.scale); err != nil {
		g.logger.Error("screenshot failed", "err", err)
		return
	}
	g.logger.Info("saved screenshot", "path", path)
}

// Draw presents the last rendered frame. It never advances the simulation,
// so the refresh rate does not change how fast cells fade or hue2 turns.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
