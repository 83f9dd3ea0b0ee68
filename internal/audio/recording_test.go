package audio

import (
	"os"
	"path/filepath"
	"testing"

	"spectro/pkg/utils"
)

func tempWavPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "capture.wav")
}

func TestRecorderLifecycle(t *testing.T) {
	r := NewRecorder()
	if r.Recording() {
		t.Error("new recorder reports recording")
	}

	// Write and Stop are no-ops while idle.
	if err := r.Write(utils.SilentBlock(testSize)); err != nil {
		t.Errorf("idle Write: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Errorf("idle Stop: %v", err)
	}

	path := tempWavPath(t)
	if err := r.Start(path, 44100, testSize); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Recording() {
		t.Error("recorder idle after Start")
	}
	if err := r.Start(path, 44100, testSize); err == nil {
		t.Error("second Start accepted while recording")
	}

	if err := r.Write(utils.BinSine(testSize, 64, 0.9)); err != nil {
		t.Errorf("Write: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if r.Recording() {
		t.Error("recorder still recording after Stop")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("recorded file missing: %v", err)
	}
	// One block of 32-bit samples plus the WAV header.
	if info.Size() < int64(testSize*4) {
		t.Errorf("recorded file only %d bytes, want at least %d", info.Size(), testSize*4)
	}
}

func TestRecorderClampsOverrangeSamples(t *testing.T) {
	r := NewRecorder()
	path := tempWavPath(t)
	if err := r.Start(path, 44100, 4); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Values outside [-1,1] must not wrap around when scaled.
	if err := r.Write([]float32{2.0, -2.0, 1.0, -1.0}); err != nil {
		t.Errorf("Write: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("recorded file missing: %v", err)
	}
}
