package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"turmites/internal/app"
	"turmites/internal/core"
	"turmites/internal/record"
	"turmites/internal/render"
	"turmites/internal/sims/turmite"
	"turmites/internal/telemetry"
)

type options struct {
	frames   int
	out      string
	fps      int
	quality  int
	csvPath  string
	pngPath  string
	logEvery int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var opts options
	flag.IntVar(&opts.frames, "frames", 600, "frames to render")
	flag.StringVar(&opts.out, "out", "turmites.avi", "MJPEG AVI output path (empty disables video)")
	flag.IntVar(&opts.fps, "fps", 30, "video frame rate")
	flag.IntVar(&opts.quality, "quality", 90, "JPEG quality 1-100")
	flag.StringVar(&opts.csvPath, "csv", "", "write per-frame stats to this CSV file")
	flag.StringVar(&opts.pngPath, "png", "", "save the last frame as PNG")
	flag.IntVar(&opts.logEvery, "log-every", 100, "log stats every N frames (0 disables)")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	sim, err := app.BuildSim(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(sim, cfg, opts, logger); err != nil {
		log.Fatal(err)
	}
}

func run(sim core.Sim, cfg *app.Config, opts options, logger *slog.Logger) error {
	size := sim.Size()
	frame := render.NewFrame(size.W, size.H)
	world, _ := sim.(*turmite.World)

	var rec *record.Recorder
	if opts.out != "" {
		var err error
		rec, err = record.NewRecorder(opts.out, size.W, size.H, record.Options{Scale: cfg.Scale, FPS: opts.fps, Quality: opts.quality})
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	var stats *telemetry.Writer
	var csvFile *os.File
	if opts.csvPath != "" && world != nil {
		f, err := os.Create(opts.csvPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.csvPath, err)
		}
		defer f.Close()
		csvFile = f
		stats = telemetry.NewWriter(f)
	}

	logger.Info("recording", "sim", sim.Name(), "w", size.W, "h", size.H, "frames", opts.frames, "out", opts.out)
	start := time.Now()
	perFrame := app.TicksPerFrame(sim)
	for i := 0; i < opts.frames; i++ {
		for t := 0; t < perFrame; t++ {
			sim.Step()
		}
		if err := sim.Render(frame); err != nil {
			return err
		}
		if rec != nil {
			if err := rec.AddFrame(frame); err != nil {
				return err
			}
		}
		if world == nil {
			continue
		}
		if stats != nil || (opts.logEvery > 0 && (i+1)%opts.logEvery == 0) {
			s := telemetry.Collect(world)
			if stats != nil {
				if err := stats.Write(s); err != nil {
					return err
				}
			}
			if opts.logEvery > 0 && (i+1)%opts.logEvery == 0 {
				logger.Info("progress", "stats", s)
			}
		}
	}

	if opts.pngPath != "" {
		if err := record.WritePNG(opts.pngPath, frame, size.W, size.H, cfg.Scale); err != nil {
			return err
		}
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			return fmt.Errorf("finalizing %s: %w", opts.out, err)
		}
	}
	if csvFile != nil {
		if err := csvFile.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", opts.csvPath, err)
		}
	}
	logger.Info("done", "frames", opts.frames, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
