package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/swsim/internal/config"
	"github.com/san-kum/swsim/internal/metrics"
	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/sim"
	"github.com/san-kum/swsim/internal/storage"
)

// Scenario is a scripted list of runs executed in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides only the
// fields it sets.
type ScenarioStep struct {
	Preset        string   `yaml:"preset"`
	Rows          int      `yaml:"rows"`
	Cols          int      `yaml:"cols"`
	Bursts        int      `yaml:"bursts"`
	StepsPerBurst int      `yaml:"steps_per_burst"`
	Drag          *float64 `yaml:"drag"`
	Rotation      string   `yaml:"rotation"`
	Wind          string   `yaml:"wind"`
	Perturbation  string   `yaml:"perturbation"`
	Wrap          *bool    `yaml:"horizontal_wrap"`
	Interpolate   *bool    `yaml:"interpolate_rotation"`
	SaveAs        string   `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Rows > 0 {
		cfg.Grid.Rows = s.Rows
	}
	if s.Cols > 0 {
		cfg.Grid.Cols = s.Cols
	}
	if s.Bursts > 0 {
		cfg.Time.Bursts = s.Bursts
	}
	if s.StepsPerBurst > 0 {
		cfg.Time.StepsPerBurst = s.StepsPerBurst
	}
	if s.Drag != nil {
		cfg.Physics.Drag = *s.Drag
	}
	if s.Rotation != "" {
		cfg.Schemes.Rotation = s.Rotation
	}
	if s.Wind != "" {
		cfg.Schemes.Wind = s.Wind
	}
	if s.Perturbation != "" {
		cfg.Schemes.Perturbation = s.Perturbation
	}
	if s.Wrap != nil {
		cfg.Schemes.HorizontalWrap = *s.Wrap
	}
	if s.Interpolate != nil {
		cfg.Schemes.InterpolateRotation = *s.Interpolate
	}
	return cfg, nil
}

func (s ScenarioStep) label(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes every step and saves each run to st, returning the
// run IDs in step order. It stops at the first failing step.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ids := make([]string, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.label(i)
		log.Info("scenario step", "n", i+1, "of", len(scenario.Steps), "label", label)

		cfg, err := step.Config()
		if err != nil {
			return ids, fmt.Errorf("step %d: %w", i+1, err)
		}
		engine, err := ocean.New(cfg.Params())
		if err != nil {
			return ids, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		runner := sim.New(engine).WithLogger(log)
		for _, m := range metrics.Defaults() {
			runner.AddMetric(m)
		}

		start := time.Now()
		result, err := runner.Run(ctx, cfg.RunConfig())
		if err != nil {
			return ids, fmt.Errorf("step %d run: %w", i+1, err)
		}

		id, err := st.Save(label, cfg, time.Since(start), result)
		if err != nil {
			return ids, fmt.Errorf("step %d save: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
