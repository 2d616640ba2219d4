package turmite

import (
	"strconv"

	"turmites/internal/core"
	"turmites/internal/hsv"
)

const maxAnts = 256

// Parameters reports the active configuration and the live counters.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("ants", "Ants", len(w.ants)),
			},
		},
		{
			Name: "Timing",
			Params: []core.Parameter{
				intParam("rate_mul", "Ticks per frame", params.RateMul),
				intParam("fade_count", "Fade renders", params.FadeCount),
				boolParam("reversal", "Periodic reversal", params.Reversal),
				intParam("flip_max", "Reversal period", params.FlipMax),
			},
		},
		{
			Name: "Color",
			Params: []core.Parameter{
				intParam("color_bitshift", "Hue2 precision bits", int(params.ColorBitshift)),
				intParam("color_inc", "Hue step per visit", params.ColorInc),
				intParam("color_inc2", "Hue2 step per tick", params.ColorInc2),
				intParam("hue2_start", "Hue2 visit stamp", params.Hue2Start),
				intParam("hue2_end", "Hue2 settling hue", params.Hue2End),
				{
					Key:   "hue_source",
					Label: "Painted layer",
					Type:  core.ParamTypeString,
					Value: string(params.HueSource),
				},
				boolParam("hue2", "Paint hue2", params.HueSource == HueSourceSecondary),
				boolParam("show_ants", "Show ants", params.ShowAnts),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				uint64Param("tick", "Tick", w.tick),
				uint64Param("frame", "Frame", w.frame),
				boolParam("reverse", "Reversed", w.reverse),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters the HUD may adjust while running.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "ants", Label: "Ants", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxAnts, HasMin: true, HasMax: true},
		{Key: "rate_mul", Label: "Ticks/frame", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "color_inc", Label: "Hue step", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: hsv.HueRange - 1, HasMin: true, HasMax: true},
		{Key: "color_inc2", Label: "Hue2 step", Type: core.ParamTypeInt, Step: 64, Min: 0, Max: 8192, HasMin: true, HasMax: true},
		{Key: "hue2", Label: "Paint hue2", Type: core.ParamTypeBool},
		{Key: "show_ants", Label: "Show ants", Type: core.ParamTypeBool},
		{Key: "reversal", Label: "Reversal", Type: core.ParamTypeBool},
	}
}

// SetIntParameter updates an integer parameter. It reports false for unknown
// keys and for values the config would reject.
func (w *World) SetIntParameter(key string, value int) bool {
	if key == "ants" {
		if value < 0 || value > maxAnts {
			return false
		}
		w.resizeAnts(value)
		return true
	}
	next := w.cfg
	p := &next.Params
	switch key {
	case "rate_mul":
		p.RateMul = value
	case "color_inc":
		p.ColorInc = value
	case "color_inc2":
		p.ColorInc2 = value
	case "flip_max":
		if value <= 0 {
			return false
		}
		p.FlipMax = value
	default:
		return false
	}
	if next.Validate() != nil {
		return false
	}
	w.cfg = next
	w.rules = NewRules(next.Params)
	return true
}

// SetBoolParameter toggles a boolean parameter.
func (w *World) SetBoolParameter(key string, value bool) bool {
	p := &w.cfg.Params
	switch key {
	case "show_ants":
		p.ShowAnts = value
	case "hue2":
		if value {
			p.HueSource = HueSourceSecondary
		} else {
			p.HueSource = HueSourcePrimary
		}
	case "reversal":
		if value && p.FlipMax <= 0 {
			return false
		}
		p.Reversal = value
		if !value {
			w.flipCount = 0
			w.reverse = false
		}
	default:
		return false
	}
	return true
}

func (w *World) resizeAnts(n int) {
	for len(w.ants) < n {
		var a Ant
		a.Randomize(w.rng, w.w, w.h)
		w.ants = append(w.ants, a)
	}
	w.ants = w.ants[:n]
	w.cfg.Ants = n
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func uint64Param(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
