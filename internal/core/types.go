package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract shared by every frontend: advance one tick and paint
// the current state into a caller-owned RGBA8 buffer of 4*W*H bytes.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Render(buf []byte) error
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(opts map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists the registered simulation names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
