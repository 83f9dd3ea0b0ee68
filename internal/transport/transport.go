// Package transport streams published spectrum frames to external
// consumers. Implementations must never block the capture goroutine;
// a slow consumer loses frames, not the producer.
package transport

// Transport is a generic sink for outbound frame payloads.
// Implementations are safe for concurrent use.
type Transport interface {
	Send(data any) error
	Close() error
}

// FramePayload is the wire form of one published spectrum frame.
type FramePayload struct {
	Seq        uint64    `json:"seq"`
	Timestamp  int64     `json:"timestamp"` // Nanoseconds since epoch
	SampleRate float64   `json:"sampleRate"`
	Magnitudes []float64 `json:"magnitudes"`
}
