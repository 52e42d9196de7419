package sim

import (
	"context"
	"log/slog"

	"github.com/san-kum/swsim/internal/ocean"
)

// Runner drives an engine burst by burst and hands each frame to metrics
// and observers. It is the engine's only caller while a run is in progress.
type Runner struct {
	engine    *ocean.Engine
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(engine *ocean.Engine) *Runner {
	return &Runner{
		engine:    engine,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.New(slog.DiscardHandler),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.log = l
	}
	return r
}

func (r *Runner) Engine() *ocean.Engine { return r.engine }

// Run executes cfg.Bursts bursts. Cancellation is honoured between bursts
// only; a partial result is returned alongside ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Bursts+1),
		Series:  make(map[string][]float64, len(r.metrics)),
		Metrics: make(map[string]float64, len(r.metrics)),
	}
	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Bursts+1)
	}

	r.frame(result, r.engine.Snapshot())

	for b := 0; b < cfg.Bursts; b++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.engine.Advance(cfg.StepsPerBurst)
		snap := r.engine.Snapshot()
		result.Bursts++

		if cfg.ValidateState && !snap.IsFinite() {
			err := &ocean.StepError{Step: snap.Step, Time: snap.Time, Wrapped: ocean.ErrUnstable}
			r.log.Warn("non-finite field", "step", snap.Step, "days", snap.Time/86400)
			r.finish(result)
			return result, err
		}

		r.frame(result, snap)
		r.log.Debug("burst", "n", b+1, "step", snap.Step, "days", snap.Time/86400, "ke", snap.KineticEnergy())
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) frame(result *Result, snap ocean.Snapshot) {
	result.Times = append(result.Times, snap.Time)
	result.Final = snap
	for _, m := range r.metrics {
		m.Observe(snap)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
	for _, o := range r.observers {
		o.OnFrame(snap)
	}
}

func (r *Runner) finish(result *Result) {
	result.Steps = r.engine.Steps()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
