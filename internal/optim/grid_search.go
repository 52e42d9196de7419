package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/swsim/internal/metrics"
	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/sim"
)

// setters name the physical parameters a search may vary.
var setters = map[string]func(*ocean.Params, float64){
	"drag":          func(p *ocean.Params, v float64) { p.Drag = v },
	"gravity":       func(p *ocean.Params, v float64) { p.Gravity = v },
	"dt":            func(p *ocean.Params, v float64) { p.Dt = v },
	"h_background":  func(p *ocean.Params, v float64) { p.HBackground = v },
	"dx":            func(p *ocean.Params, v float64) { p.Dx = v },
	"mean_latitude": func(p *ocean.Params, v float64) { p.MeanLatitude = v },
}

// GridSearch evaluates every combination of parameter values and keeps the
// one with the smallest final metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %q", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// ParseRange reads "name=v1,v2,...".
func ParseRange(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("optim: expected name=v1,v2 in %q", s)
	}
	var vals []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: %s: %w", name, err)
		}
		vals = append(vals, v)
	}
	return strings.TrimSpace(name), vals, nil
}

// Points expands the grid into parameter sets derived from base, in
// row-major order over the ranges.
func (g *GridSearch) Points(base ocean.Params) ([]map[string]float64, []ocean.Params) {
	var points []map[string]float64
	var params []ocean.Params
	g.expand(0, map[string]float64{}, base, &points, &params)
	return points, params
}

func (g *GridSearch) expand(depth int, current map[string]float64, p ocean.Params, points *[]map[string]float64, params *[]ocean.Params) {
	if depth == len(g.paramNames) {
		*points = append(*points, current)
		*params = append(*params, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val
		q := p
		setters[name](&q, val)
		g.expand(depth+1, next, q, points, params)
	}
}

// Search runs the whole grid concurrently. Runs that diverge score +Inf
// rather than aborting the search.
func (g *GridSearch) Search(ctx context.Context, base ocean.Params, cfg sim.Config, metricName string) (map[string]float64, float64, error) {
	points, params := g.Points(base)
	cfg.ValidateState = false

	results, err := sim.NewSweep(params, cfg, metrics.Defaults).Run(ctx)
	if err != nil {
		return nil, 0, err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for i, r := range results {
		val, ok := r.Metrics[metricName]
		if !ok {
			return nil, 0, fmt.Errorf("optim: unknown metric %q", metricName)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		if val < best || bestParams == nil {
			best, bestParams = val, points[i]
		}
	}
	return bestParams, best, nil
}
