package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns magnitudes of the lower half of the spectrum of a
// sampled series. The mean is removed and a Hann window applied first, so
// bin 0 and edge leakage do not dominate.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}
	window.Apply(centered, window.Hann)

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest
// non-constant component, or 0 if the series is flat.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	if idx == 0 || best < 1e-9 {
		return 0
	}
	return float64(len(data)) / float64(idx)
}
