package ocean

import "fmt"

const (
	DefaultSize         = 10
	DefaultDt           = 600.0  // s
	DefaultGravity      = 9.8e-4 // artificially low so a long time step stays stable
	DefaultDrag         = 1e-6   // about ten days decay time
	DefaultHBackground  = 4000.0 // m
	DefaultDx           = 10e3   // m
	DefaultMeanLatitude = 30.0   // degrees

	metersPerDegree = 110e3
)

// Params fixes the grid, physical constants and numerical switches of an Engine.
type Params struct {
	Rows, Cols int

	Dt           float64
	Gravity      float64
	Drag         float64
	HBackground  float64
	Dx           float64
	MeanLatitude float64

	Rotation     RotationScheme
	Wind         WindScheme
	Perturbation Perturbation

	HorizontalWrap      bool
	InterpolateRotation bool
}

func DefaultParams() Params {
	return Params{
		Rows:           DefaultSize,
		Cols:           DefaultSize,
		Dt:             DefaultDt,
		Gravity:        DefaultGravity,
		Drag:           DefaultDrag,
		HBackground:    DefaultHBackground,
		Dx:             DefaultDx,
		MeanLatitude:   DefaultMeanLatitude,
		Rotation:       RotationPlusMinus,
		Wind:           WindCurled,
		HorizontalWrap: true,
	}
}

// Validate rejects grids that cannot hold a single cell. Physical constants
// are not checked: an unstable choice diverges at run time instead.
func (p Params) Validate() error {
	if p.Rows < 1 || p.Cols < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, p.Rows, p.Cols)
	}
	return nil
}
