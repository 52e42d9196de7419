package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("analysis: series needs at least 4 samples")

// PowerSpectrum returns the magnitude of the first half of the real FFT of
// data, after removing its mean.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, x := range data {
		mean += x
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, x := range data {
		centered[i] = x - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in the units of interval, of the
// strongest non-DC bin of the series.
func DominantPeriod(series []float64, interval float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(series)

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, nil
	}
	return float64(len(series)) * interval / float64(maxIdx), nil
}
