package config

import "sort"

// preset builds a named variant of the default configuration.
func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"gyre": preset(func(c *Config) {}),
	"tower": preset(func(c *Config) {
		c.Schemes.Perturbation = "tower"
		c.Schemes.Wind = "calm"
		c.Time.Bursts = 100
		c.Time.StepsPerBurst = 50
	}),
	"ns-front": preset(func(c *Config) {
		c.Schemes.Perturbation = "nsgradient"
		c.Schemes.Wind = "calm"
		c.Schemes.Rotation = "uniform"
		c.Time.Bursts = 200
		c.Time.StepsPerBurst = 100
	}),
	"ew-front": preset(func(c *Config) {
		c.Schemes.Perturbation = "ewgradient"
		c.Schemes.Wind = "calm"
		c.Schemes.Rotation = "uniform"
		c.Schemes.HorizontalWrap = false
		c.Time.Bursts = 200
		c.Time.StepsPerBurst = 100
	}),
	"latitude": preset(func(c *Config) {
		c.Grid.Rows, c.Grid.Cols = 20, 20
		c.Schemes.Rotation = "withlatitude"
		c.Schemes.InterpolateRotation = true
	}),
	"still": preset(func(c *Config) {
		c.Schemes.Wind = "calm"
		c.Physics.Drag = 0
		c.Time.Bursts = 10
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
