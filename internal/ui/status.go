package ui

import (
	"strings"

	"turmites/internal/core"
)

// statusLine summarizes the live counters a simulation reports in its
// "State" parameter group.
func statusLine(sim core.Sim, paused bool) string {
	var b strings.Builder
	b.WriteString(sim.Name())
	if provider, ok := sim.(core.ParameterProvider); ok {
		snap := provider.Parameters()
		for _, key := range []string{"tick", "frame"} {
			if p, ok := snap.Lookup(key); ok {
				b.WriteString("  ")
				b.WriteString(key)
				b.WriteByte(' ')
				b.WriteString(p.Value)
			}
		}
		if p, ok := snap.Lookup("reverse"); ok && p.Value == "true" {
			b.WriteString("  reversed")
		}
	}
	if paused {
		b.WriteString("  paused")
	}
	return b.String()
}
