package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder writes captured blocks to a WAV file while they are being
// analyzed. Write runs on the capture goroutine, Start and Stop on the
// control side; the atomic flag keeps Write cheap when idle.
type Recorder struct {
	active atomic.Bool

	mu      sync.Mutex
	file    *os.File
	encoder *wav.Encoder
	buf     *goaudio.IntBuffer
}

// NewRecorder returns an idle recorder. It costs nothing until Start.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start opens the output file and begins accepting blocks.
func (r *Recorder) Start(path string, sampleRate, blockSize int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active.Load() {
		return fmt.Errorf("already recording")
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	r.file = file
	r.encoder = wav.NewEncoder(file, sampleRate, 32, 1, 1)
	r.buf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 32,
		Data:           make([]int, blockSize),
	}

	r.active.Store(true)
	return nil
}

// Write appends one block of mono float32 samples. Samples are clamped
// to [-1,1] and scaled to 32-bit integer PCM. A no-op when idle; an
// encoder error is reported but does not stop the capture loop.
func (r *Recorder) Write(block []float32) error {
	if !r.active.Load() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.encoder == nil {
		return nil
	}

	if len(r.buf.Data) < len(block) {
		r.buf.Data = make([]int, len(block))
	}
	r.buf.Data = r.buf.Data[:len(block)]
	for i, s := range block {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		r.buf.Data[i] = int(v * (math.MaxInt32 - 1))
	}

	if err := r.encoder.Write(r.buf); err != nil {
		return fmt.Errorf("writing WAV block: %w", err)
	}
	return nil
}

// Stop finalizes the WAV header and closes the file. A no-op when
// idle.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active.Load() {
		return nil
	}
	r.active.Store(false)

	var firstErr error
	if r.encoder != nil {
		if err := r.encoder.Close(); err != nil {
			firstErr = err
		}
		r.encoder = nil
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.file = nil
	}
	return firstErr
}

// Recording reports whether a file is currently being written.
func (r *Recorder) Recording() bool {
	return r.active.Load()
}
