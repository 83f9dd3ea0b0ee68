package dsp

import (
	"math"
	"math/cmplx"
)

// log compression denominator; log10(1+x)/log10(100) maps [0,1] onto
// [0, ~0.15] for small x and 1.0 only at x = 99, flattening peaks.
var logDenom = math.Log10(100)

// Normalize converts one-sided complex bins into a magnitude frame in
// [0,1]. The steps, in order: magnitude, peak normalization, gain,
// log compression, clamp.
//
// Gain is applied after normalization, so it acts as a contrast
// control on the already-normalized spectrum rather than a true
// amplitude gain.
//
// A silent block (peak magnitude zero) produces no frame at all: the
// previous frame stays on screen instead of flashing blank. Returns
// nil, false in that case.
func Normalize(bins []complex128, gain float64) ([]float64, bool) {
	frame := make([]float64, len(bins))

	maxMag := 0.0
	for i, bin := range bins {
		m := cmplx.Abs(bin)
		frame[i] = m
		if m > maxMag {
			maxMag = m
		}
	}
	if maxMag == 0 {
		return nil, false
	}

	for i, m := range frame {
		v := m / maxMag
		v = math.Min(1.0, v*gain)
		v = math.Log10(1+v) / logDenom
		frame[i] = clamp01(v)
	}
	return frame, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
