package dsp

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"spectro/pkg/bitint"
)

// Transform computes the one-sided spectrum of fixed-size sample
// blocks. All buffers are pre-allocated in NewTransform; Spectrum is
// allocation free and must only be called from one goroutine at a time
// (the capture loop owns it).
type Transform struct {
	size   int
	fft    *fourier.FFT
	window []float64
	input  []float64
	coeffs []complex128
}

// NewTransform creates a transform for blocks of exactly size samples.
// Size must be a power of 2.
func NewTransform(size int, w Window) (*Transform, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("transform size must be a power of 2, got %d", size)
	}
	return &Transform{
		size:   size,
		fft:    fourier.NewFFT(size),
		window: coefficients(size, w),
		input:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
	}, nil
}

// Size returns the block length N.
func (t *Transform) Size() int { return t.size }

// Bins returns the number of one-sided spectrum bins (N/2).
func (t *Transform) Bins() int { return t.size / 2 }

// BinWidth returns the frequency spacing between bins for the given
// sample rate: bin i covers i * sampleRate / N.
func (t *Transform) BinWidth(sampleRate float64) float64 {
	return sampleRate / float64(t.size)
}

// Spectrum applies the analysis window to block and returns its
// one-sided spectrum as N/2 complex bins. Bin i corresponds to
// frequency i * sampleRate / N; the Nyquist bin is dropped so the
// result length matches the magnitude frame length.
//
// The returned slice aliases internal state and is valid until the
// next call. A block of the wrong length is a programming error and
// panics.
func (t *Transform) Spectrum(block []float32) []complex128 {
	if len(block) != t.size {
		panic(fmt.Sprintf("dsp: block length %d, transform size %d", len(block), t.size))
	}

	for i, s := range block {
		t.input[i] = float64(s) * t.window[i]
	}
	t.fft.Coefficients(t.coeffs, t.input)
	return t.coeffs[:t.size/2]
}
