package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the real FFT of
// data. The series is mean-removed and zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := nextPow2(len(data))
	padded := make([]float64, n)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// SpectralPeriod returns the period of the strongest non-DC component of a
// uniformly sampled series. The peak is refined by parabolic interpolation.
func SpectralPeriod(times, series []float64) (float64, error) {
	if len(series) < 4 || len(times) < len(series) {
		return 0, fmt.Errorf("%w: %d samples", ErrInsufficientData, len(series))
	}
	dt := times[1] - times[0]
	if dt <= 0 {
		return 0, fmt.Errorf("non-increasing sample times")
	}

	ps := PowerSpectrum(series)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, fmt.Errorf("%w: constant series", ErrInsufficientData)
	}

	k := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			k += 0.5 * (a - c) / denom
		}
	}

	n := float64(nextPow2(len(series)))
	return n * dt / k, nil
}

func nextPow2(n int) int {
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
