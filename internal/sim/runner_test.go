package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/swsim/internal/ocean"
)

type testMetric struct {
	count int
	last  float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s ocean.Snapshot) {
	t.count++
	t.last = s.Time
}
func (t *testMetric) Value() float64 { return t.last }
func (t *testMetric) Reset() {
	t.count = 0
	t.last = 0
}

func newEngine(t *testing.T, mutate func(*ocean.Params)) *ocean.Engine {
	t.Helper()
	p := ocean.DefaultParams()
	p.Perturbation = ocean.PerturbTower
	if mutate != nil {
		mutate(&p)
	}
	e, err := ocean.New(p)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func TestRunnerRun(t *testing.T) {
	r := New(newEngine(t, nil))
	metric := &testMetric{}
	r.AddMetric(metric)

	frames := 0
	r.AddObserver(ObserverFunc(func(s ocean.Snapshot) { frames++ }))

	result, err := r.Run(context.Background(), Config{Bursts: 5, StepsPerBurst: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 6 {
		t.Errorf("expected 6 frames, got %d", len(result.Times))
	}
	if frames != 6 || metric.count != 6 {
		t.Errorf("expected 6 observations, got observer=%d metric=%d", frames, metric.count)
	}
	if result.Steps != 50 || result.Bursts != 5 {
		t.Errorf("expected 50 steps in 5 bursts, got %d in %d", result.Steps, result.Bursts)
	}
	if got := result.Metrics["test"]; got != 50*ocean.DefaultDt {
		t.Errorf("expected final metric %g, got %g", 50*ocean.DefaultDt, got)
	}
	if len(result.Series["test"]) != 6 || result.Series["test"][0] != 0 {
		t.Errorf("unexpected series: %v", result.Series["test"])
	}
	if result.Final.Step != 50 {
		t.Errorf("final snapshot at step %d", result.Final.Step)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(newEngine(t, nil))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero bursts", Config{Bursts: 0, StepsPerBurst: 10}},
		{"negative bursts", Config{Bursts: -1, StepsPerBurst: 10}},
		{"zero steps", Config{Bursts: 1, StepsPerBurst: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCancelBetweenBursts(t *testing.T) {
	r := New(newEngine(t, nil))
	ctx, cancel := context.WithCancel(context.Background())

	bursts := 0
	r.AddObserver(ObserverFunc(func(s ocean.Snapshot) {
		if s.Step > 0 {
			bursts++
		}
		if bursts == 2 {
			cancel()
		}
	}))

	result, err := r.Run(ctx, Config{Bursts: 10, StepsPerBurst: 25})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Bursts != 2 || result.Steps != 50 {
		t.Errorf("bursts must complete whole: got %d bursts, %d steps", result.Bursts, result.Steps)
	}
}

func TestRunnerDetectsDivergence(t *testing.T) {
	e := newEngine(t, func(p *ocean.Params) { p.Drag = -1 })
	r := New(e)

	result, err := r.Run(context.Background(), Config{Bursts: 10, StepsPerBurst: 100, ValidateState: true})
	if !errors.Is(err, ocean.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	var stepErr *ocean.StepError
	if !errors.As(err, &stepErr) || stepErr.Step == 0 {
		t.Errorf("expected a StepError with a step, got %v", err)
	}
	if result == nil || result.Bursts >= 10 {
		t.Error("run should stop early")
	}
}

func TestRunnerWithoutValidation(t *testing.T) {
	e := newEngine(t, func(p *ocean.Params) { p.Drag = -1 })
	r := New(e)

	result, err := r.Run(context.Background(), Config{Bursts: 3, StepsPerBurst: 200})
	if err != nil {
		t.Fatalf("unvalidated run should not fail: %v", err)
	}
	if result.Final.IsFinite() {
		t.Error("expected the diverged state to propagate into the snapshot")
	}
}

func TestSweep(t *testing.T) {
	simple := ocean.DefaultParams()
	simple.Perturbation = ocean.PerturbTower
	interp := simple
	interp.InterpolateRotation = true

	sweep := NewSweep([]ocean.Params{simple, interp}, Config{Bursts: 3, StepsPerBurst: 10}, func() []Metric {
		return []Metric{&testMetric{}}
	})
	results, err := sweep.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Steps != 30 {
			t.Errorf("run %d: expected 30 steps, got %d", i, res.Steps)
		}
	}
}

func TestSweepInvalidGrid(t *testing.T) {
	bad := ocean.DefaultParams()
	bad.Rows = 0

	_, err := NewSweep([]ocean.Params{ocean.DefaultParams(), bad}, Config{Bursts: 1, StepsPerBurst: 1}, nil).Run(context.Background())
	if !errors.Is(err, ocean.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
}
