package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/swsim/internal/ocean"
)

// Sweep runs independent engines concurrently, one goroutine per parameter
// set. Each engine is still stepped by a single goroutine.
type Sweep struct {
	params  []ocean.Params
	cfg     Config
	metrics func() []Metric
}

// NewSweep prepares a sweep. metrics is called once per run so that no
// Metric is shared between goroutines.
func NewSweep(params []ocean.Params, cfg Config, metrics func() []Metric) *Sweep {
	return &Sweep{params: params, cfg: cfg, metrics: metrics}
}

func (s *Sweep) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(s.params))
	g, ctx := errgroup.WithContext(ctx)

	for i, p := range s.params {
		g.Go(func() error {
			engine, err := ocean.New(p)
			if err != nil {
				return err
			}
			r := New(engine)
			if s.metrics != nil {
				for _, m := range s.metrics() {
					r.AddMetric(m)
				}
			}
			results[i], err = r.Run(ctx, s.cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
