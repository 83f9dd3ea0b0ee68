package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"spectro/internal/config"
	"spectro/internal/dsp"
	"spectro/internal/log"
	"spectro/internal/render"
	"spectro/internal/spectrum"
	"spectro/internal/transport"
)

// Engine wires the pipeline: source -> capture -> transform ->
// normalizer -> store, with the render configuration on the consumer
// side and optional recording and frame streaming hanging off the
// capture path.
type Engine struct {
	cfg       *config.Config
	display   *render.Config
	store     *spectrum.Store
	capture   *Capture
	recorder  *Recorder
	transport transport.Transport

	seq atomic.Uint64
}

// NewEngine builds an engine from a validated configuration and a
// sample source. The source is not opened until Start.
func NewEngine(cfg *config.Config, source Source) (*Engine, error) {
	window, ok := dsp.ParseWindow(cfg.Window)
	if !ok {
		return nil, fmt.Errorf("unknown window function %q", cfg.Window)
	}
	tf, err := dsp.NewTransform(cfg.FFTSize, window)
	if err != nil {
		return nil, err
	}

	display, err := render.NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	mode, ok := spectrum.ParseMode(cfg.Mode)
	if !ok {
		return nil, fmt.Errorf("unknown display mode %q", cfg.Mode)
	}
	store := spectrum.NewStore(cfg.HistoryDepth)
	store.SetMode(mode)

	e := &Engine{
		cfg:      cfg,
		display:  display,
		store:    store,
		recorder: NewRecorder(),
	}
	e.capture = NewCapture(source, tf, store, display.Gain)
	e.capture.SetTap(e.tapBlock)

	if cfg.Serve {
		ws := transport.NewWebSocketTransport(cfg.ServeAddr)
		e.transport = ws
		store.Subscribe(e.publishFrame)
	}

	return e, nil
}

// Start begins capture, and recording if configured.
func (e *Engine) Start() error {
	if err := e.capture.Start(); err != nil {
		return err
	}
	if e.cfg.Record {
		if err := e.StartRecording(e.cfg.OutputFile); err != nil {
			e.capture.Stop()
			return err
		}
	}
	return nil
}

// Close stops recording, the capture loop and the transport, in that
// order.
func (e *Engine) Close() error {
	var firstErr error
	if err := e.recorder.Stop(); err != nil {
		firstErr = err
	}
	e.capture.Stop()
	if e.transport != nil {
		if err := e.transport.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StartRecording begins writing captured audio to path.
func (e *Engine) StartRecording(path string) error {
	if err := e.recorder.Start(path, int(e.cfg.SampleRate), e.cfg.FFTSize); err != nil {
		return err
	}
	log.Infof("engine: recording to %s", path)
	return nil
}

// StopRecording finalizes the current recording, if any.
func (e *Engine) StopRecording() error {
	return e.recorder.Stop()
}

// Display exposes the mutable display configuration (gain, frequency
// range, color scheme) for the interaction layer.
func (e *Engine) Display() *render.Config {
	return e.display
}

// Mode returns the current display mode.
func (e *Engine) Mode() spectrum.Mode {
	return e.store.Mode()
}

// SetMode switches the display mode. Leaving waterfall mode clears the
// history.
func (e *Engine) SetMode(mode spectrum.Mode) {
	e.store.SetMode(mode)
}

// BuildBars returns bar-mode geometry for the latest frame on a
// surface of the given pixel size.
func (e *Engine) BuildBars(width, height float64) render.BarView {
	return render.BuildBars(e.store.Latest(), e.display, width, height)
}

// BuildWaterfall returns waterfall geometry for the current history,
// newest row first.
func (e *Engine) BuildWaterfall(width, height float64) render.WaterfallView {
	return render.BuildWaterfall(e.store.History(), e.display, width, height)
}

// Store exposes the spectrum store so a display layer can subscribe to
// frame notifications directly.
func (e *Engine) Store() *spectrum.Store {
	return e.store
}

// tapBlock runs on the capture goroutine for every complete block.
func (e *Engine) tapBlock(block []float32) {
	if err := e.recorder.Write(block); err != nil {
		log.Errorf("engine: %v", err)
	}
}

// publishFrame forwards a published frame to the transport. Runs on
// the capture goroutine; Send must not block.
func (e *Engine) publishFrame(frame spectrum.Frame) {
	payload := transport.FramePayload{
		Seq:        e.seq.Add(1),
		Timestamp:  time.Now().UnixNano(),
		SampleRate: e.cfg.SampleRate,
		Magnitudes: frame,
	}
	if err := e.transport.Send(payload); err != nil {
		log.Warnf("engine: frame send failed: %v", err)
	}
}
