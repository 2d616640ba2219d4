package ui

import (
	"strconv"

	"turmites/internal/core"
)

// controlState caches the last value the simulation reported for a control.
type controlState struct {
	control  core.ParameterControl
	value    string
	intValue int
	on       bool
	hasValue bool
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refresh pulls the current value of every control out of snap.
func refresh(states []controlState, snap core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snap.Lookup(s.control.Key)
		if !ok {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			s.intValue = v
			s.value = strconv.Itoa(v)
			s.hasValue = true
		case core.ParamTypeBool:
			v, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			s.on = v
			s.value = "off"
			if v {
				s.value = "on"
			}
			s.hasValue = true
		}
	}
}

// nextInt returns the value one step in direction from current, clamped to
// the control's bounds. ok is false when the value cannot move.
func nextInt(ctrl core.ParameterControl, current, direction int) (int, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := current + direction*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target, target != current
}
