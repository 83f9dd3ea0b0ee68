// Package utils provides signal generators and inspection helpers
// shared by tests across the repository.
package utils

import "math"

// SineBlock generates size mono float32 samples of a pure sinusoid at
// the given frequency and amplitude, in [-1,1].
func SineBlock(size int, sampleRate, frequency, amplitude float64) []float32 {
	block := make([]float32, size)
	for i := range block {
		t := float64(i) / sampleRate
		block[i] = float32(amplitude * math.Sin(2*math.Pi*frequency*t))
	}
	return block
}

// BinSine generates a sinusoid that lands exactly on FFT bin k for a
// transform of the given size, avoiding spectral leakage beyond the
// window sidelobes.
func BinSine(size, bin int, amplitude float64) []float32 {
	block := make([]float32, size)
	for i := range block {
		block[i] = float32(amplitude * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(size)))
	}
	return block
}

// SilentBlock returns size zero samples.
func SilentBlock(size int) []float32 {
	return make([]float32, size)
}

// PeakBin returns the index of the largest magnitude in frame, or -1
// for an empty frame.
func PeakBin(frame []float64) int {
	if len(frame) == 0 {
		return -1
	}
	peak := 0
	for i, v := range frame {
		if v > frame[peak] {
			peak = i
		}
	}
	return peak
}
