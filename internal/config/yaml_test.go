package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spectro.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}
	if cfg.FFTSize != DefaultFFTSize {
		t.Errorf("expected default fft size %d, got %d", DefaultFFTSize, cfg.FFTSize)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
	if cfg != nil {
		t.Errorf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoad_UnmarshalError(t *testing.T) {
	path := writeTempConfig(t, ":\n:bad")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, "gain: 1.5\nlow_frequency: 100\nhigh_frequency: 8000\nmode: waterfall\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gain != 1.5 {
		t.Errorf("gain = %g, want 1.5", cfg.Gain)
	}
	if cfg.LowFrequency != 100 || cfg.HighFrequency != 8000 {
		t.Errorf("range = [%g, %g], want [100, 8000]", cfg.LowFrequency, cfg.HighFrequency)
	}
	if cfg.Mode != "waterfall" {
		t.Errorf("mode = %q, want waterfall", cfg.Mode)
	}
	// Untouched fields keep defaults.
	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("sample rate = %g, want default %d", cfg.SampleRate, DefaultSampleRate)
	}
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := writeTempConfig(t, "low_frequency: 9000\nhigh_frequency: 100\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPECTRO_GAIN", "3.25")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gain != 3.25 {
		t.Errorf("gain = %g, want env override 3.25", cfg.Gain)
	}
}
