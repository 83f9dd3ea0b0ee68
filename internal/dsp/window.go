// Package dsp implements the analysis half of the pipeline: windowing,
// the real-valued FFT and magnitude normalization. Everything here is
// pure and allocation-aware; the capture loop calls into it once per
// block.
package dsp

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
)

// Window selects the analysis window applied to each block before the
// transform.
type Window int

const (
	WindowHann Window = iota
	WindowHamming
	WindowBlackman
	WindowBartlettHann
	WindowNuttall
)

// ParseWindow converts a config string to a Window. Returns WindowHann
// and false for unrecognised names.
func ParseWindow(s string) (Window, bool) {
	switch strings.ToLower(s) {
	case "hann", "hanning":
		return WindowHann, true
	case "hamming":
		return WindowHamming, true
	case "blackman":
		return WindowBlackman, true
	case "bartlett-hann", "bartletthann":
		return WindowBartlettHann, true
	case "nuttall":
		return WindowNuttall, true
	default:
		return WindowHann, false
	}
}

// coefficients precomputes the window as a coefficient table so the
// per-block cost is a single multiply per sample.
//
// Hann is computed directly with the symmetric form
// w[i] = 0.5*(1 - cos(2*pi*i/(N-1))) to keep the edge samples at
// exactly zero. The remaining windows come from gonum, which applies a
// window to a sequence in place, so we feed it a sequence of ones.
func coefficients(n int, w Window) []float64 {
	coeffs := make([]float64, n)

	if w == WindowHann {
		for i := range coeffs {
			coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		return coeffs
	}

	for i := range coeffs {
		coeffs[i] = 1
	}
	switch w {
	case WindowHamming:
		window.Hamming(coeffs)
	case WindowBlackman:
		window.Blackman(coeffs)
	case WindowBartlettHann:
		window.BartlettHann(coeffs)
	case WindowNuttall:
		window.Nuttall(coeffs)
	}
	return coeffs
}
