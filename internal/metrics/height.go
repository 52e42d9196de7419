package metrics

import (
	"math"

	"github.com/san-kum/swsim/internal/ocean"
	"github.com/san-kum/swsim/internal/sim"
)

// Volume is the sum of the height anomaly. Wrapped domains conserve it up
// to round-off.
type Volume struct {
	value float64
}

func NewVolume() *Volume { return &Volume{} }

func (v *Volume) Name() string             { return "volume" }
func (v *Volume) Observe(s ocean.Snapshot) { v.value = s.Volume() }
func (v *Volume) Value() float64           { return v.value }
func (v *Volume) Reset()                   { v.value = 0 }

// PeakHeight is the largest |H| seen over the run.
type PeakHeight struct {
	max float64
}

func NewPeakHeight() *PeakHeight { return &PeakHeight{} }

func (p *PeakHeight) Name() string { return "peak_height" }

func (p *PeakHeight) Observe(s ocean.Snapshot) {
	lo, hi := s.HeightRange()
	p.max = math.Max(p.max, math.Max(math.Abs(lo), math.Abs(hi)))
}

func (p *PeakHeight) Value() float64 { return p.max }
func (p *PeakHeight) Reset()         { p.max = 0 }

// CenterHeight samples H at the middle cell, where the tower starts. Its
// series is the probe used for spectral analysis.
type CenterHeight struct {
	value float64
}

func NewCenterHeight() *CenterHeight { return &CenterHeight{} }

func (c *CenterHeight) Name() string { return "center_height" }

func (c *CenterHeight) Observe(s ocean.Snapshot) {
	rows, cols := s.Dims()
	mid := cols / 2
	if mid >= rows {
		mid = rows - 1
	}
	c.value = s.H.At(mid, cols/2)
}

func (c *CenterHeight) Value() float64 { return c.value }
func (c *CenterHeight) Reset()         { c.value = 0 }

// Defaults is the metric set attached to CLI runs.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDecay(),
		NewVolume(),
		NewPeakHeight(),
		NewCenterHeight(),
	}
}
