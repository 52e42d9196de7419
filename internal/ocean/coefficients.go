package ocean

import "math"

const (
	rotationAmplitude = 7e-5 // s-1, twice the planetary rate
	rotationBase      = 3.5e-5
	rotationSpread    = 0.8 // +-40% across the basin
	windAmplitude     = 1e-8

	// The curled profile has always used 3.14 rather than pi; runs are
	// compared against that.
	windHalfTurn = 3.14
)

// rotationCoefficients returns the Coriolis coefficient of every row.
func rotationCoefficients(p Params) []float64 {
	rot := make([]float64, p.Rows)
	n := float64(p.Rows)
	dxDegrees := p.Dx / metersPerDegree
	for i := range rot {
		row := float64(i)
		switch p.Rotation {
		case RotationWithLatitude:
			lat := p.MeanLatitude + (row-n/2)*dxDegrees
			rot[i] = -rotationAmplitude * math.Sin(lat*math.Pi/180)
		case RotationPlusMinus:
			rot[i] = -rotationBase * (1 - rotationSpread*(row-(n-1)/2)/n)
		case RotationUniform:
			rot[i] = -rotationBase
		default:
			rot[i] = 0
		}
	}
	return rot
}

// windForcing returns the zonal wind acceleration of every row.
func windForcing(p Params) []float64 {
	wind := make([]float64, p.Rows)
	n := float64(p.Rows)
	for i := range wind {
		switch p.Wind {
		case WindCurled:
			wind[i] = windAmplitude * math.Sin((float64(i)+0.5)/n*2*windHalfTurn)
		case WindUniform:
			wind[i] = windAmplitude
		default:
			wind[i] = 0
		}
	}
	return wind
}
