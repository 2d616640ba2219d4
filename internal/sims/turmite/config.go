package turmite

import (
	"errors"
	"fmt"
	"strconv"

	"turmites/internal/hsv"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid turmite config")

// Upper bounds keeping the hue2 arithmetic inside 64 bits.
const (
	maxRateMul   = 1 << 16
	maxColorInc2 = int64(1) << 32
)

// HueSource selects which hue layer is painted by Render.
type HueSource string

const (
	// HueSourcePrimary paints the per-visit hue layer.
	HueSourcePrimary HueSource = "hue"
	// HueSourceSecondary paints the time-driven hue2 layer.
	HueSourceSecondary HueSource = "hue2"
)

// Params holds the rates and toggles governing ants, hue fields and fading.
type Params struct {
	// RateMul is the number of ticks the frontends run per frame. hue2 moves
	// ColorInc2*RateMul per render and visits stamp hue2 relative to it.
	RateMul int `yaml:"rate_mul"`
	// ColorBitshift is the extra fixed-point precision carried by hue2.
	ColorBitshift uint `yaml:"color_bitshift"`
	// ColorInc is added to a cell's primary hue on every visit.
	ColorInc int `yaml:"color_inc"`
	// ColorInc2 is the hue2 rate in fixed-point units per tick.
	ColorInc2 int `yaml:"color_inc2"`
	// Hue2Start is the hue (0-1535) a visited cell is stamped with.
	Hue2Start int `yaml:"hue2_start"`
	// Hue2End is the hue (0-1535) where hue2 settles once per revolution.
	Hue2End int `yaml:"hue2_end"`
	// FadeCount is the number of renders a switched-on cell takes to fade out.
	FadeCount int `yaml:"fade_count"`

	ShowAnts  bool      `yaml:"show_ants"`
	HueSource HueSource `yaml:"hue_source"`

	// Reversal enables the periodic direction reversal every FlipMax ticks.
	Reversal bool `yaml:"reversal"`
	FlipMax  int  `yaml:"flip_max"`
}

// Config controls the turmite world dimensions, population and params.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
	Ants   int   `yaml:"ants"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  128,
		Height: 64,
		Seed:   42,
		Ants:   2,
		Params: Params{
			RateMul:       4,
			ColorBitshift: 12,
			ColorInc:      1,
			ColorInc2:     512,
			Hue2Start:     1400,
			Hue2End:       900,
			FadeCount:     2000,
			ShowAnts:      false,
			HueSource:     HueSourceSecondary,
			Reversal:      false,
			FlipMax:       60000,
		},
	}
}

// LangtonConfig is a single visible ant painting the primary hue layer, which
// makes the classic highway pattern easy to follow.
func LangtonConfig() Config {
	c := DefaultConfig()
	c.Ants = 1
	c.Params.ShowAnts = true
	c.Params.HueSource = HueSourcePrimary
	c.Params.ColorInc = 16
	return c
}

// Validate reports the first setting that would break the world invariants.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Ants < 0:
		return fmt.Errorf("%w: ants %d must not be negative", ErrInvalidConfig, c.Ants)
	case p.RateMul <= 0 || p.RateMul > maxRateMul:
		return fmt.Errorf("%w: rate_mul %d outside [1,%d]", ErrInvalidConfig, p.RateMul, maxRateMul)
	case p.ColorBitshift > 16:
		return fmt.Errorf("%w: color_bitshift %d exceeds 16", ErrInvalidConfig, p.ColorBitshift)
	case p.ColorInc < 0 || p.ColorInc >= hsv.HueRange:
		return fmt.Errorf("%w: color_inc %d outside [0,%d)", ErrInvalidConfig, p.ColorInc, hsv.HueRange)
	case p.ColorInc2 < 0 || int64(p.ColorInc2) > maxColorInc2:
		return fmt.Errorf("%w: color_inc2 %d outside [0,%d]", ErrInvalidConfig, p.ColorInc2, maxColorInc2)
	case p.Hue2Start < 0 || p.Hue2Start >= hsv.HueRange:
		return fmt.Errorf("%w: hue2_start %d outside [0,%d)", ErrInvalidConfig, p.Hue2Start, hsv.HueRange)
	case p.Hue2End < 0 || p.Hue2End >= hsv.HueRange:
		return fmt.Errorf("%w: hue2_end %d outside [0,%d)", ErrInvalidConfig, p.Hue2End, hsv.HueRange)
	case p.FadeCount <= 0:
		return fmt.Errorf("%w: fade_count %d must be positive", ErrInvalidConfig, p.FadeCount)
	case p.HueSource != HueSourcePrimary && p.HueSource != HueSourceSecondary:
		return fmt.Errorf("%w: hue_source %q must be %q or %q", ErrInvalidConfig, p.HueSource, HueSourcePrimary, HueSourceSecondary)
	case p.Reversal && p.FlipMax <= 0:
		return fmt.Errorf("%w: flip_max %d must be positive when reversal is enabled", ErrInvalidConfig, p.FlipMax)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of base with the parseable entries of cfg.
// Unknown keys and unparseable values are ignored.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["ants"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Ants = parsed
		}
	}
	if v, ok := cfg["rate_mul"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.RateMul = parsed
		}
	}
	if v, ok := cfg["color_bitshift"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 8); err == nil && parsed <= 16 {
			c.Params.ColorBitshift = uint(parsed)
		}
	}
	if v, ok := cfg["color_inc"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < hsv.HueRange {
			c.Params.ColorInc = parsed
		}
	}
	if v, ok := cfg["color_inc2"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.ColorInc2 = parsed
		}
	}
	if v, ok := cfg["hue2_start"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < hsv.HueRange {
			c.Params.Hue2Start = parsed
		}
	}
	if v, ok := cfg["hue2_end"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < hsv.HueRange {
			c.Params.Hue2End = parsed
		}
	}
	if v, ok := cfg["fade_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.FadeCount = parsed
		}
	}
	if v, ok := cfg["show_ants"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.ShowAnts = parsed
		}
	}
	if v, ok := cfg["hue_source"]; ok {
		switch HueSource(v) {
		case HueSourcePrimary, HueSourceSecondary:
			c.Params.HueSource = HueSource(v)
		}
	}
	if v, ok := cfg["reversal"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Reversal = parsed
		}
	}
	if v, ok := cfg["flip_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.FlipMax = parsed
		}
	}
	return c
}
