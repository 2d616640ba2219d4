package telemetry

import (
	"log/slog"

	"turmites/internal/sims/turmite"

	"gonum.org/v1/gonum/stat"
)

// FrameStats summarizes the world layers at one render.
type FrameStats struct {
	Frame    uint64 `csv:"frame"`
	Tick     uint64 `csv:"tick"`
	Ants     int    `csv:"ants"`
	Reversed bool   `csv:"reversed"`

	// Cells whose fade counter is still running.
	Lit int `csv:"lit"`
	// Fraction of cells whose primary hue has left zero.
	Coverage float64 `csv:"coverage"`

	// Primary hue spread over painted cells, in hue units.
	HueMean float64 `csv:"hue_mean"`
	HueStd  float64 `csv:"hue_std"`

	// Fraction of cells whose hue2 has come to rest at the settling hue.
	Hue2Settled float64 `csv:"hue2_settled"`
}

// Collect computes FrameStats from the live world.
func Collect(w *turmite.World) FrameStats {
	layers := w.Layers()
	settled := w.Hue2Settle()

	s := FrameStats{
		Frame:    w.Frame(),
		Tick:     w.Tick(),
		Ants:     len(w.Ants()),
		Reversed: w.Reversed(),
	}

	for _, v := range layers.State.Cells() {
		if v != 0 {
			s.Lit++
		}
	}

	hues := layers.Hue.Cells()
	painted := make([]float64, 0, len(hues))
	for _, h := range hues {
		if h != 0 {
			painted = append(painted, float64(h))
		}
	}
	s.HueMean, s.HueStd = MeanStdDev(painted)

	atRest := 0
	hue2 := layers.Hue2.Cells()
	for _, h := range hue2 {
		if h == settled {
			atRest++
		}
	}

	if total := len(hues); total > 0 {
		s.Coverage = float64(len(painted)) / float64(total)
		s.Hue2Settled = float64(atRest) / float64(total)
	}
	return s
}

// MeanStdDev returns the mean and sample standard deviation of values.
// Fewer than two samples report a zero deviation.
func MeanStdDev(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Uint64("tick", s.Tick),
		slog.Int("ants", s.Ants),
		slog.Bool("reversed", s.Reversed),
		slog.Int("lit", s.Lit),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("hue_mean", s.HueMean),
		slog.Float64("hue_std", s.HueStd),
		slog.Float64("hue2_settled", s.Hue2Settled),
	)
}
