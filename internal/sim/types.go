package sim

import (
	"fmt"

	"github.com/san-kum/swsim/internal/ocean"
)

// Metric accumulates a scalar from the frames of a run.
type Metric interface {
	Name() string
	Observe(s ocean.Snapshot)
	Value() float64
	Reset()
}

// Observer sees every frame, including the initial one, after its burst
// completes. Observers must not retain the engine; the snapshot is theirs.
type Observer interface {
	OnFrame(s ocean.Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s ocean.Snapshot)

func (f ObserverFunc) OnFrame(s ocean.Snapshot) { f(s) }

type Config struct {
	Bursts        int
	StepsPerBurst int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Bursts:        400,
		StepsPerBurst: 1000,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Bursts < 1 {
		return fmt.Errorf("bursts must be positive, got %d", c.Bursts)
	}
	if c.StepsPerBurst < 1 {
		return fmt.Errorf("steps per burst must be positive, got %d", c.StepsPerBurst)
	}
	return nil
}

type Result struct {
	Times   []float64
	Series  map[string][]float64
	Metrics map[string]float64
	Final   ocean.Snapshot
	Bursts  int
	Steps   int
}
