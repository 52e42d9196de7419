package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/sim"
)

const (
	DefaultBursts        = 400
	DefaultStepsPerBurst = 1000
	DefaultArrowScale    = 30.0
	DefaultColorLimit    = 0.5
)

type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Time    TimeConfig    `yaml:"time"`
	Physics PhysicsConfig `yaml:"physics"`
	Schemes SchemeConfig  `yaml:"schemes"`
	Render  RenderConfig  `yaml:"render"`
}

type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type TimeConfig struct {
	Dt            float64 `yaml:"dt"`
	Bursts        int     `yaml:"bursts"`
	StepsPerBurst int     `yaml:"steps_per_burst"`
}

type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	Drag         float64 `yaml:"drag"`
	HBackground  float64 `yaml:"h_background"`
	Dx           float64 `yaml:"dx"`
	MeanLatitude float64 `yaml:"mean_latitude"`
}

type SchemeConfig struct {
	Rotation            string `yaml:"rotation"`
	Wind                string `yaml:"wind"`
	Perturbation        string `yaml:"perturbation"`
	HorizontalWrap      bool   `yaml:"horizontal_wrap"`
	InterpolateRotation bool   `yaml:"interpolate_rotation"`
}

type RenderConfig struct {
	ArrowScale float64 `yaml:"arrow_scale"`
	ColorLimit float64 `yaml:"color_limit"`
	Palette    string  `yaml:"palette"`
}

func DefaultConfig() *Config {
	p := ocean.DefaultParams()
	return &Config{
		Grid: GridConfig{Rows: p.Rows, Cols: p.Cols},
		Time: TimeConfig{
			Dt:            p.Dt,
			Bursts:        DefaultBursts,
			StepsPerBurst: DefaultStepsPerBurst,
		},
		Physics: PhysicsConfig{
			Gravity:      p.Gravity,
			Drag:         p.Drag,
			HBackground:  p.HBackground,
			Dx:           p.Dx,
			MeanLatitude: p.MeanLatitude,
		},
		Schemes: SchemeConfig{
			Rotation:            p.Rotation.String(),
			Wind:                p.Wind.String(),
			Perturbation:        p.Perturbation.String(),
			HorizontalWrap:      p.HorizontalWrap,
			InterpolateRotation: p.InterpolateRotation,
		},
		Render: RenderConfig{
			ArrowScale: DefaultArrowScale,
			ColorLimit: DefaultColorLimit,
			Palette:    "viridis",
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config to engine parameters. Scheme names that do not
// parse fall back to the zero schemes.
func (c *Config) Params() ocean.Params {
	return ocean.Params{
		Rows:                c.Grid.Rows,
		Cols:                c.Grid.Cols,
		Dt:                  c.Time.Dt,
		Gravity:             c.Physics.Gravity,
		Drag:                c.Physics.Drag,
		HBackground:         c.Physics.HBackground,
		Dx:                  c.Physics.Dx,
		MeanLatitude:        c.Physics.MeanLatitude,
		Rotation:            ocean.ParseRotationScheme(c.Schemes.Rotation),
		Wind:                ocean.ParseWindScheme(c.Schemes.Wind),
		Perturbation:        ocean.ParsePerturbation(c.Schemes.Perturbation),
		HorizontalWrap:      c.Schemes.HorizontalWrap,
		InterpolateRotation: c.Schemes.InterpolateRotation,
	}
}

func (c *Config) RunConfig() sim.Config {
	return sim.Config{
		Bursts:        c.Time.Bursts,
		StepsPerBurst: c.Time.StepsPerBurst,
		ValidateState: true,
	}
}
