package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortTrace = errors.New("analysis: trace too short")

// PowerSpectrum returns |X_k| for k in [0, n/2) of the mean-removed trace.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency in cycles per unit time of the
// strongest non-DC bin, refined by parabolic interpolation over its
// neighbours. sampleDt is the time between consecutive samples.
func DominantFrequency(trace []float64, sampleDt float64) (float64, error) {
	if len(trace) < 4 {
		return 0, ErrShortTrace
	}
	ps := PowerSpectrum(trace)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	bin := float64(peak)
	if peak > 0 && peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return bin / (float64(len(trace)) * sampleDt), nil
}

// NormalModeFrequency is the angular frequency of mode (p, q) of a
// free-boundary rows x cols grid with unit masses and spring constant k:
// w^2 = k * (4 sin^2(p*pi/2R) + 4 sin^2(q*pi/2C)).
func NormalModeFrequency(rows, cols int, k float64, p, q int) float64 {
	sr := math.Sin(float64(p) * math.Pi / (2 * float64(rows)))
	sc := math.Sin(float64(q) * math.Pi / (2 * float64(cols)))
	return math.Sqrt(k * (4*sr*sr + 4*sc*sc))
}
