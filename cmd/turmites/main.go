//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"turmites/internal/app"
	_ "turmites/internal/sims/turmite"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	logger := cfg.Logger(os.Stderr)

	sim, err := app.BuildSim(cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg, logger)
	size := sim.Size()
	logger.Info("starting", "sim", sim.Name(), "w", size.W, "h", size.H, "tps", cfg.TPS)

	ebiten.SetWindowTitle("turmites - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUD, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
