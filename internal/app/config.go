package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"turmites/internal/core"
)

// Overrides collects repeatable key=value flags.
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

// Set appends one key=value pair.
func (o *Overrides) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*o = append(*o, value)
	return nil
}

// Map returns the overrides as a key/value map; later pairs win.
func (o Overrides) Map() map[string]string {
	m := make(map[string]string, len(o))
	for _, kv := range o {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

// Config represents the command-line parameters shared by the frontends.
type Config struct {
	Sim        string
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	HUD        int
	Verbose    bool
	Set        Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "turmites", Scale: 4, TPS: 60, Seed: 0, HUD: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation preset to run ("+strings.Join(core.SimNames(), ", ")+")")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML world config merged over the embedded defaults")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for ant placement (0 keeps the configured seed)")
	fs.IntVar(&c.HUD, "hud", c.HUD, "width of the parameter panel in pixels (0 hides it)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "enable debug logging")
	fs.Var(&c.Set, "set", "world parameter override in key=value form (repeatable)")
}

// Logger returns a text logger writing to w at the configured verbosity.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Options merges the flag-level settings into the sim option map.
func (c *Config) Options() map[string]string {
	opts := c.Set.Map()
	if c.ConfigPath != "" {
		opts["config"] = c.ConfigPath
	}
	if c.Seed != 0 {
		opts["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return opts
}

// BuildSim looks up the configured preset and constructs it.
func BuildSim(c *Config) (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %s)", c.Sim, strings.Join(core.SimNames(), ", "))
	}
	sim, err := factory(c.Options())
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", c.Sim, err)
	}
	return sim, nil
}

// TicksPerFrame asks sim how many ticks to run between renders, defaulting
// to one.
func TicksPerFrame(sim core.Sim) int {
	if p, ok := sim.(interface{ TicksPerFrame() int }); ok {
		if n := p.TicksPerFrame(); n > 0 {
			return n
		}
	}
	return 1
}
