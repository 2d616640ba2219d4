package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"turmites/internal/render"
	"turmites/internal/sims/turmite"
	"turmites/internal/telemetry"

	"github.com/gocarina/gocsv"
)

type paramSet struct {
	ants     int
	colorInc int
}

type scenarioResult struct {
	params  paramSet
	seed    int64
	final   telemetry.FrameStats
	peakLit int
}

// summary aggregates every seed run for one parameter set.
type summary struct {
	Ants         int     `csv:"ants"`
	ColorInc     int     `csv:"color_inc"`
	Runs         int     `csv:"runs"`
	CoverageMean float64 `csv:"coverage_mean"`
	CoverageStd  float64 `csv:"coverage_std"`
	HueStdMean   float64 `csv:"hue_std_mean"`
	PeakLitMean  float64 `csv:"peak_lit_mean"`
}

func main() {
	frames := flag.Int("frames", 200, "frames to simulate per scenario")
	seeds := flag.Int("seeds", 4, "seeds per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 128, "grid width")
	height := flag.Int("h", 64, "grid height")
	csvPath := flag.String("csv", "", "write the ranked summary to this CSV file")
	flag.Parse()

	base := turmite.DefaultConfig()
	base.Width = *width
	base.Height = *height
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	sets := paramGrid([]int{1, 2, 4, 8}, []int{1, 3, 16, 64})
	fmt.Printf("Sweeping %d parameter sets x %d seeds (%d workers, %d frames)\n", len(sets), *seeds, *workers, *frames)

	type job struct {
		params paramSet
		seed   int64
	}
	jobs := make(chan job)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(base, j.params, j.seed, *frames)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			for s := 1; s <= *seeds; s++ {
				jobs <- job{params: params, seed: int64(s)}
			}
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	ranked := summarize(all)
	elapsed := time.Since(start)

	fmt.Printf("\nRanked by mean coverage (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, s := range ranked {
		fmt.Printf("%2d) ants=%d color_inc=%d coverage=%.3f±%.3f hueStd=%.1f peakLit=%.0f\n",
			i+1, s.Ants, s.ColorInc, s.CoverageMean, s.CoverageStd, s.HueStdMean, s.PeakLitMean)
	}

	if *csvPath != "" {
		if err := writeSummary(*csvPath, ranked); err != nil {
			log.Fatal(err)
		}
	}
}

// writeSummary saves the ranked summaries as CSV.
func writeSummary(path string, ranked []summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gocsv.Marshal(ranked, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func paramGrid(ants, colorIncs []int) []paramSet {
	var sets []paramSet
	for _, a := range ants {
		for _, inc := range colorIncs {
			sets = append(sets, paramSet{ants: a, colorInc: inc})
		}
	}
	return sets
}

func runScenario(base turmite.Config, params paramSet, seed int64, frames int) scenarioResult {
	cfg := base
	cfg.Ants = params.ants
	cfg.Seed = seed
	cfg.Params.ColorInc = params.colorInc

	world := turmite.NewWithConfig(cfg)
	size := world.Size()
	buf := render.NewFrame(size.W, size.H)
	res := scenarioResult{params: params, seed: seed}

	for f := 0; f < frames; f++ {
		for i := 0; i < world.TicksPerFrame(); i++ {
			world.Step()
		}
		// The buffer size always matches the world.
		_ = world.Render(buf)
		s := telemetry.Collect(world)
		if s.Lit > res.peakLit {
			res.peakLit = s.Lit
		}
		res.final = s
	}
	return res
}

// summarize groups results by parameter set and ranks them by mean coverage.
func summarize(results []scenarioResult) []summary {
	grouped := make(map[paramSet][]scenarioResult)
	for _, r := range results {
		grouped[r.params] = append(grouped[r.params], r)
	}

	out := make([]summary, 0, len(grouped))
	for params, runs := range grouped {
		coverage := make([]float64, len(runs))
		hueStd := make([]float64, len(runs))
		peak := make([]float64, len(runs))
		for i, r := range runs {
			coverage[i] = r.final.Coverage
			hueStd[i] = r.final.HueStd
			peak[i] = float64(r.peakLit)
		}
		s := summary{Ants: params.ants, ColorInc: params.colorInc, Runs: len(runs)}
		s.CoverageMean, s.CoverageStd = telemetry.MeanStdDev(coverage)
		s.HueStdMean, _ = telemetry.MeanStdDev(hueStd)
		s.PeakLitMean, _ = telemetry.MeanStdDev(peak)
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CoverageMean != out[j].CoverageMean {
			return out[i].CoverageMean > out[j].CoverageMean
		}
		if out[i].Ants != out[j].Ants {
			return out[i].Ants < out[j].Ants
		}
		return out[i].ColorInc < out[j].ColorInc
	})
	return out
}
