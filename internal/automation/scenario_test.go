package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/storage"
)

const scenarioYAML = `
name: spin-up
description: tower then a closed basin
steps:
  - preset: tower
    bursts: 2
    steps_per_burst: 5
  - preset: ew-front
    rows: 6
    cols: 8
    bursts: 1
    steps_per_burst: 3
    drag: 0
    interpolate_rotation: true
    save_as: basin
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if sc.Name != "spin-up" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}

	cfg, err := sc.Steps[1].Config()
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Params()
	if p.Rows != 6 || p.Cols != 8 || p.Drag != 0 || !p.InterpolateRotation {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.HorizontalWrap || p.Perturbation != ocean.PerturbEWGradient {
		t.Errorf("preset fields lost: %+v", p)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	ids, err := RunScenario(context.Background(), sc, st, nil)
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}

	second, err := st.Load(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if second.Preset != "basin" || second.Steps != 3 {
		t.Errorf("unexpected second run: preset=%s steps=%d", second.Preset, second.Steps)
	}
}

func TestRunScenarioStopsAtFailure(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Preset: "still", Bursts: 1, StepsPerBurst: 1},
		{Preset: "nope"},
		{Preset: "tower"},
	}}
	st := storage.New(t.TempDir())

	ids, err := RunScenario(context.Background(), sc, st, nil)
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if len(ids) != 1 {
		t.Errorf("got %d completed runs, want 1", len(ids))
	}
}
