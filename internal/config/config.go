// Package config holds the runtime configuration for the spectrograph
// engine. Defaults can be overridden by a YAML file, environment
// variables and command line flags, in that order.
package config

import (
	"fmt"

	"spectro/pkg/bitint"
)

// Defaults and limits for the audio analysis pipeline.
const (
	DefaultDeviceID      = MinDeviceID // System default input device
	DefaultSampleRate    = 44100       // CD-quality audio (Hz)
	DefaultFFTSize       = 2048        // Samples per analysis block (~46ms at 44.1kHz)
	DefaultGain          = 2.0         // Post-normalization contrast gain
	DefaultLowFrequency  = 300         // Visible range low bound (Hz)
	DefaultHighFrequency = 2000        // Visible range high bound (Hz)
	DefaultHistoryDepth  = 100         // Waterfall frames retained
	DefaultColorScheme   = "blue-red"  // blue-red | black-red
	DefaultMode          = "bars"      // bars | waterfall
	DefaultWindow        = "hann"      // Analysis window function
	DefaultServeAddr     = ":8080"     // WebSocket frame stream address
	DefaultRecord        = false       // Don't record captured audio
	DefaultOutputFile    = ""          // Auto-generated recording filename
	DefaultVerbose       = false

	MinDeviceID   = -1     // -1 selects the system default device
	MinSampleRate = 8000   // Minimum usable sample rate (Hz)
	MaxSampleRate = 192000 // Maximum supported sample rate (Hz)
	MaxFFTSize    = 16384  // Upper bound on analysis block size
)

// Config holds all runtime options for the engine.
type Config struct {
	// Audio capture settings.
	DeviceID   int     `yaml:"device_id"`
	SampleRate float64 `yaml:"sample_rate"`
	FFTSize    int     `yaml:"fft_size"`
	Window     string  `yaml:"window"`

	// Display settings handed to the render layer at startup.
	Gain          float64 `yaml:"gain"`
	LowFrequency  float64 `yaml:"low_frequency"`
	HighFrequency float64 `yaml:"high_frequency"`
	ColorScheme   string  `yaml:"color_scheme"`
	Mode          string  `yaml:"mode"`
	HistoryDepth  int     `yaml:"history_depth"`

	// Frame streaming over WebSocket.
	Serve     bool   `yaml:"serve"`
	ServeAddr string `yaml:"serve_addr"`

	// Recording of the captured input stream.
	Record     bool   `yaml:"record"`
	OutputFile string `yaml:"output_file"`

	// Debug options.
	Verbose bool   `yaml:"verbose"`
	Command string `yaml:"-"` // One-off command ("list"), never persisted
}

// NewConfig returns a Config populated with defaults. This is the base
// configuration before YAML, environment and flag overrides apply.
func NewConfig() *Config {
	return &Config{
		DeviceID:      DefaultDeviceID,
		SampleRate:    DefaultSampleRate,
		FFTSize:       DefaultFFTSize,
		Window:        DefaultWindow,
		Gain:          DefaultGain,
		LowFrequency:  DefaultLowFrequency,
		HighFrequency: DefaultHighFrequency,
		ColorScheme:   DefaultColorScheme,
		Mode:          DefaultMode,
		HistoryDepth:  DefaultHistoryDepth,
		ServeAddr:     DefaultServeAddr,
		Record:        DefaultRecord,
		OutputFile:    DefaultOutputFile,
		Verbose:       DefaultVerbose,
	}
}

// Validate checks the configuration invariants the pipeline depends on.
// The frequency range rule matches the mapper contract:
// 0 <= low < high <= sampleRate/2.
func (c *Config) Validate() error {
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("sample rate %.0f Hz out of range [%d, %d]",
			c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if !bitint.IsPowerOfTwo(c.FFTSize) || c.FFTSize > MaxFFTSize {
		return fmt.Errorf("fft size must be a power of 2 up to %d, got %d",
			MaxFFTSize, c.FFTSize)
	}
	if c.Gain < 0 {
		return fmt.Errorf("gain must be >= 0, got %g", c.Gain)
	}
	if err := ValidateFrequencyRange(c.LowFrequency, c.HighFrequency, c.SampleRate); err != nil {
		return err
	}
	if c.HistoryDepth <= 0 {
		return fmt.Errorf("history depth must be positive, got %d", c.HistoryDepth)
	}
	switch c.ColorScheme {
	case "blue-red", "black-red":
	default:
		return fmt.Errorf("unknown color scheme %q", c.ColorScheme)
	}
	switch c.Mode {
	case "bars", "waterfall":
	default:
		return fmt.Errorf("unknown display mode %q", c.Mode)
	}
	return nil
}

// ValidateFrequencyRange rejects ranges the mapper would have to guess
// about: 0 <= low < high <= Nyquist.
func ValidateFrequencyRange(low, high, sampleRate float64) error {
	nyquist := sampleRate / 2
	if low < 0 || low >= high || high > nyquist {
		return fmt.Errorf("frequency range [%g, %g] Hz invalid, need 0 <= low < high <= %g",
			low, high, nyquist)
	}
	return nil
}
