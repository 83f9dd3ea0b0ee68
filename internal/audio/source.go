// Package audio owns the capture side of the pipeline: the PortAudio
// input source, the capture loop that drives the transform each cycle,
// the optional WAV recording tap, and the engine facade that wires
// everything together.
package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source is a blocking supplier of mono float32 PCM at a fixed sample
// rate. Open must succeed before the first Read; Read blocks until it
// can fill up to len(dst) samples and reports how many it delivered.
type Source interface {
	Open() error
	Read(dst []float32) (int, error)
	Close() error
}

// DeviceSource captures from a PortAudio input device using the
// blocking read API, one analysis block per Read.
type DeviceSource struct {
	deviceID   int
	sampleRate float64
	frames     int
	lowLatency bool

	buf    []float32
	stream *portaudio.Stream
}

// NewDeviceSource creates a source reading frames mono samples per
// block from the given device at the given sample rate. The device is
// not touched until Open.
func NewDeviceSource(deviceID int, sampleRate float64, frames int, lowLatency bool) *DeviceSource {
	return &DeviceSource{
		deviceID:   deviceID,
		sampleRate: sampleRate,
		frames:     frames,
		lowLatency: lowLatency,
	}
}

// Open resolves the device and starts a mono input stream sized to one
// analysis block.
func (s *DeviceSource) Open() error {
	device, err := InputDevice(s.deviceID)
	if err != nil {
		return fmt.Errorf("audio source init: %w", err)
	}

	latency := device.DefaultHighInputLatency
	if s.lowLatency {
		latency = device.DefaultLowInputLatency
	}

	s.buf = make([]float32, s.frames)
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  latency,
		},
		SampleRate:      s.sampleRate,
		FramesPerBuffer: s.frames,
	}

	stream, err := portaudio.OpenStream(params, s.buf)
	if err != nil {
		return fmt.Errorf("audio source init: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("audio source init: start stream: %w", err)
	}
	s.stream = stream
	return nil
}

// Read blocks until one block of samples is available and copies it
// into dst. dst should hold exactly one block; shorter destinations
// receive a truncated copy.
func (s *DeviceSource) Read(dst []float32) (int, error) {
	if s.stream == nil {
		return 0, fmt.Errorf("audio source not open")
	}
	if err := s.stream.Read(); err != nil {
		return 0, err
	}
	return copy(dst, s.buf), nil
}

// Close stops and releases the stream. Safe to call when not open.
func (s *DeviceSource) Close() error {
	if s.stream == nil {
		return nil
	}
	defer func() { s.stream = nil }()
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		return err
	}
	return s.stream.Close()
}

var _ Source = (*DeviceSource)(nil)
