package audio

import (
	"sync"
	"sync/atomic"

	"spectro/internal/dsp"
	"spectro/internal/log"
	"spectro/internal/spectrum"
)

// Capture runs the audio-to-spectrum cycle on a dedicated goroutine:
// read one block, window + transform, normalize, publish. It has two
// states, stopped and running; there is nothing in between.
//
// Error policy: a failed or short read is logged and the cycle is
// skipped. The loop only exits on Stop. A silent block publishes
// nothing, leaving the previous frame in the store.
type Capture struct {
	source    Source
	transform *dsp.Transform
	store     *spectrum.Store
	gain      func() float64
	tap       func([]float32)

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewCapture wires a capture loop. gain is read once per cycle so the
// display side can adjust it live; it must be safe for concurrent use.
func NewCapture(source Source, transform *dsp.Transform, store *spectrum.Store, gain func() float64) *Capture {
	return &Capture{
		source:    source,
		transform: transform,
		store:     store,
		gain:      gain,
	}
}

// SetTap installs a raw-audio tap invoked with each complete block
// before analysis, on the capture goroutine. Used for WAV recording.
// Must be called before Start.
func (c *Capture) SetTap(fn func([]float32)) {
	c.tap = fn
}

// Start opens the source and spawns the processing cycle. It is a
// no-op when already running. If the source fails to initialize the
// capture stays stopped and the error is returned; there is no retry.
func (c *Capture) Start() error {
	if !c.running.CompareAndSwap(false, true) {
		return nil
	}

	if err := c.source.Open(); err != nil {
		c.running.Store(false)
		log.Errorf("capture: %v", err)
		return err
	}

	c.wg.Add(1)
	go c.run()
	log.Infof("capture: started (block size %d)", c.transform.Size())
	return nil
}

// Stop signals the loop and blocks until it has observed the flag and
// exited, then releases the source. Shutdown latency is bounded by at
// most one in-flight blocking read (~46ms for 2048 samples at
// 44.1kHz). A no-op when already stopped.
func (c *Capture) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.wg.Wait()
	if err := c.source.Close(); err != nil {
		log.Errorf("capture: closing source: %v", err)
	}
	log.Infof("capture: stopped")
}

// Running reports whether the processing cycle is active.
func (c *Capture) Running() bool {
	return c.running.Load()
}

func (c *Capture) run() {
	defer c.wg.Done()

	size := c.transform.Size()
	block := make([]float32, size)

	for c.running.Load() {
		n, err := c.source.Read(block)
		if err != nil {
			log.Errorf("capture: read failed: %v", err)
			continue
		}
		if n != size {
			log.Warnf("capture: short read: got %d samples, want %d", n, size)
			continue
		}

		if c.tap != nil {
			c.tap(block)
		}

		bins := c.transform.Spectrum(block)
		frame, ok := dsp.Normalize(bins, c.gain())
		if !ok {
			// Silence. Keep the previous frame on screen.
			continue
		}
		c.store.Publish(frame)
	}
}
