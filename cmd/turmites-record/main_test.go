package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"turmites/internal/app"
	"turmites/internal/sims/turmite"
)

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		frames:   5,
		out:      filepath.Join(dir, "run.avi"),
		fps:      10,
		quality:  80,
		csvPath:  filepath.Join(dir, "stats.csv"),
		pngPath:  filepath.Join(dir, "last.png"),
		logEvery: 2,
	}
	cfg := app.NewConfig()
	cfg.Scale = 2
	world := turmite.New(16, 8)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := run(world, cfg, opts, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	if world.Frame() != 5 {
		t.Fatalf("world rendered %d frames, want 5", world.Frame())
	}
	if want := uint64(5 * world.TicksPerFrame()); world.Tick() != want {
		t.Fatalf("world ran %d ticks, want %d", world.Tick(), want)
	}

	data, err := os.ReadFile(opts.csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Fatalf("csv has %d lines, want header plus 5 rows", len(lines))
	}
	for _, path := range []string{opts.out, opts.pngPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("%s missing or empty: %v", path, err)
		}
	}
}
