// Package render turns published spectrum frames into draw-ready
// geometry: bar columns in bar mode, rows of colored cells in
// waterfall mode. It is independent of whatever surface eventually
// paints the result.
package render

import (
	"fmt"
	"sync"

	"spectro/internal/config"
)

// Config is the mutable display configuration shared between the
// user-interaction side (writers) and the mapper (reader, once per
// render pass). A RWMutex keeps multi-field updates whole: a reader
// can see a one-frame-stale range but never low >= high.
type Config struct {
	mu         sync.RWMutex
	sampleRate float64
	low, high  float64
	gain       float64
	scheme     ColorScheme
}

// NewConfig creates a display configuration from the validated startup
// config.
func NewConfig(cfg *config.Config) (*Config, error) {
	scheme, ok := ParseColorScheme(cfg.ColorScheme)
	if !ok {
		return nil, fmt.Errorf("unknown color scheme %q", cfg.ColorScheme)
	}
	return &Config{
		sampleRate: cfg.SampleRate,
		low:        cfg.LowFrequency,
		high:       cfg.HighFrequency,
		gain:       cfg.Gain,
		scheme:     scheme,
	}, nil
}

// FrequencyRange returns the visible range in Hz.
func (c *Config) FrequencyRange() (low, high float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.low, c.high
}

// SetFrequencyRange updates both bounds under one lock. Invalid ranges
// are rejected before they can reach the mapper.
func (c *Config) SetFrequencyRange(low, high float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := config.ValidateFrequencyRange(low, high, c.sampleRate); err != nil {
		return err
	}
	c.low, c.high = low, high
	return nil
}

// Gain returns the post-normalization gain factor.
func (c *Config) Gain() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gain
}

// SetGain updates the gain factor. Gain must be >= 0.
func (c *Config) SetGain(gain float64) error {
	if gain < 0 {
		return fmt.Errorf("gain must be >= 0, got %g", gain)
	}
	c.mu.Lock()
	c.gain = gain
	c.mu.Unlock()
	return nil
}

// Scheme returns the active color scheme.
func (c *Config) Scheme() ColorScheme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scheme
}

// SetScheme switches the active color scheme.
func (c *Config) SetScheme(scheme ColorScheme) {
	c.mu.Lock()
	c.scheme = scheme
	c.mu.Unlock()
}

// SampleRate returns the capture sample rate the mapper derives bin
// spacing from.
func (c *Config) SampleRate() float64 {
	return c.sampleRate
}
