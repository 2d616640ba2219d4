package turmite

import "turmites/internal/core"

// Build constructs the named preset from base overridden by opts. The
// "config" option names a YAML file that replaces base before the other
// overrides apply.
func Build(name string, base Config, opts map[string]string) (*World, error) {
	cfg := base
	if path := opts["config"]; path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg = ApplyMap(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := NewWithConfig(cfg)
	w.name = name
	return w, nil
}

func factory(name string, base func() Config) core.Factory {
	return func(opts map[string]string) (core.Sim, error) {
		w, err := Build(name, base(), opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

func init() {
	core.Register("turmites", factory("turmites", DefaultConfig))
	core.Register("langton", factory("langton", LangtonConfig))
}
