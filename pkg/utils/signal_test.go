package utils

import (
	"math"
	"testing"
)

func TestBinSineRange(t *testing.T) {
	block := BinSine(2048, 32, 1.0)
	if len(block) != 2048 {
		t.Fatalf("block length = %d, want 2048", len(block))
	}
	for i, s := range block {
		if s < -1 || s > 1 {
			t.Fatalf("sample %d = %g outside [-1,1]", i, s)
		}
	}
}

func TestSineBlockFrequency(t *testing.T) {
	// One full cycle of 1Hz over one second of samples starts and
	// ends near zero.
	block := SineBlock(100, 100, 1, 1.0)
	if math.Abs(float64(block[0])) > 1e-9 {
		t.Errorf("first sample = %g, want 0", block[0])
	}
	if math.Abs(float64(block[50])) > 1e-6 {
		t.Errorf("half-cycle sample = %g, want ~0", block[50])
	}
}

func TestPeakBin(t *testing.T) {
	cases := []struct {
		name  string
		frame []float64
		want  int
	}{
		{"empty", nil, -1},
		{"single", []float64{0.5}, 0},
		{"middle peak", []float64{0.1, 0.9, 0.3}, 1},
		{"first of equal peaks", []float64{0.9, 0.9, 0.1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PeakBin(tc.frame); got != tc.want {
				t.Errorf("PeakBin = %d, want %d", got, tc.want)
			}
		})
	}
}
