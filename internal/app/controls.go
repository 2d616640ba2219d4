package app

import (
	"strconv"

	"turmites/internal/core"
)

// ToggleBool flips a boolean parameter on sim. It returns the new value and
// whether the sim accepted it.
func ToggleBool(sim core.Sim, key string) (bool, bool) {
	setter, ok := sim.(core.BoolParameterSetter)
	if !ok {
		return false, false
	}
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		return false, false
	}
	param, ok := provider.Parameters().Lookup(key)
	if !ok {
		return false, false
	}
	current, err := strconv.ParseBool(param.Value)
	if err != nil {
		return false, false
	}
	if !setter.SetBoolParameter(key, !current) {
		return current, false
	}
	return !current, true
}
