package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"turmites/internal/app"
	"turmites/internal/core"
	_ "turmites/internal/sims/turmite"
	"turmites/internal/term"

	"github.com/gdamore/tcell/v2"
)

type runner struct {
	screen  tcell.Screen
	sim     core.Sim
	driver  *app.Driver
	painter *term.Painter
	clock   *core.FixedStep
	logger  *slog.Logger

	seed int64
}

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.Logger(logOut)

	sim, err := app.BuildSim(cfg)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	size := sim.Size()
	r := &runner{
		screen:  screen,
		sim:     sim,
		driver:  app.NewDriver(sim),
		painter: term.NewPainter(screen, size.W, size.H),
		clock:   core.NewFixedStep(cfg.TPS),
		logger:  logger,
		seed:    cfg.Seed,
	}
	logger.Info("starting", "sim", sim.Name(), "w", size.W, "h", size.H, "tps", cfg.TPS)

	err = r.run()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

func (r *runner) run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(r.clock.Interval() / 2)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !r.handle(ev) {
				return nil
			}
		case <-ticker.C:
			due := r.clock.Due()
			if r.driver.Paused() {
				due = 1
			}
			drew := false
			for i := 0; i < due; i++ {
				rendered, err := r.driver.Advance()
				if err != nil {
					return err
				}
				drew = drew || rendered
			}
			if drew {
				r.draw()
			}
		}
	}
}

func (r *runner) draw() {
	r.screen.Clear()
	r.painter.Draw(r.driver.Frame())
	_, sh := r.screen.Size()
	status := fmt.Sprintf(" %s  [space] pause  [n] step  [r] reset  [s] reseed  [a] ants  [h] hue2  [q] quit", r.sim.Name())
	if r.driver.Paused() {
		status += "  (paused)"
	}
	term.DrawText(r.screen, 0, sh-1, status, tcell.StyleDefault.Reverse(true))
	r.screen.Show()
}

func (r *runner) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			r.driver.SetPaused(!r.driver.Paused())
		case 'n':
			r.driver.StepOnce()
		case 'r':
			r.reset(r.seed)
		case 's':
			r.reset(time.Now().UnixNano())
		case 'a':
			r.toggle("show_ants")
		case 'h':
			r.toggle("hue2")
		}
		r.draw()
	case *tcell.EventResize:
		r.screen.Sync()
		r.draw()
	}
	return true
}

func (r *runner) reset(seed int64) {
	r.seed = seed
	r.sim.Reset(seed)
	r.logger.Info("reset", "seed", seed)
}

func (r *runner) toggle(key string) {
	if value, ok := app.ToggleBool(r.sim, key); ok {
		r.logger.Debug("toggled parameter", "key", key, "value", value)
	}
}
