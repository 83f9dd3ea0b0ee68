// Package spectrum defines the magnitude frame handed from the capture
// loop to the render side, and the store that mediates between the two
// without either side observing a half-written frame.
package spectrum

import "sync"

// Frame is one spectrum snapshot: N/2 magnitudes in [0,1], bin i at
// frequency i * sampleRate / N. Frames are immutable once published;
// the producer allocates a fresh one every cycle and nothing mutates
// it afterwards, which is what makes lock-free reads of a returned
// frame safe.
type Frame []float64

// Mode selects how the consumer wants frames retained.
type Mode int

const (
	ModeBars Mode = iota
	ModeWaterfall
)

func (m Mode) String() string {
	switch m {
	case ModeBars:
		return "bars"
	case ModeWaterfall:
		return "waterfall"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string to a Mode. Unrecognised strings
// map to ModeBars and false.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "bars", "bar":
		return ModeBars, true
	case "waterfall":
		return ModeWaterfall, true
	default:
		return ModeBars, false
	}
}

// Store holds the latest frame and, in waterfall mode, a bounded
// history of past frames. Publish runs on the capture thread and
// Latest/History on the render thread; one mutex covers every access
// so neither side can tear the other's view.
//
// The history is a ring: hist[head] is the newest frame and logical
// row r lives at hist[(head+r) % cap]. Publishing moves head backwards
// instead of shifting frames, so eviction is free.
type Store struct {
	mu      sync.Mutex
	latest  Frame
	hist    []Frame
	head    int
	count   int
	mode    Mode
	onFrame func(Frame)
}

// NewStore creates a store retaining up to depth frames of waterfall
// history. Depth must be positive.
func NewStore(depth int) *Store {
	if depth <= 0 {
		depth = 1
	}
	return &Store{hist: make([]Frame, depth)}
}

// Subscribe registers fn to be called after every publish, outside the
// store lock, on the capture goroutine. This is the onFrame push
// notification to the display side; a consumer that needs decoupling
// should hand off to its own channel inside fn.
func (s *Store) Subscribe(fn func(Frame)) {
	s.mu.Lock()
	s.onFrame = fn
	s.mu.Unlock()
}

// Publish replaces the latest frame and, in waterfall mode, prepends
// it to the history, evicting the oldest entry past capacity.
func (s *Store) Publish(frame Frame) {
	s.mu.Lock()
	s.latest = frame
	if s.mode == ModeWaterfall {
		n := len(s.hist)
		s.head = (s.head - 1 + n) % n
		s.hist[s.head] = frame
		if s.count < n {
			s.count++
		}
	}
	fn := s.onFrame
	s.mu.Unlock()

	if fn != nil {
		fn(frame)
	}
}

// Latest returns the most recent frame, or nil before the first
// publish. The frame is immutable; callers must not modify it.
func (s *Store) Latest() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// History returns the waterfall frames newest first. The returned
// slice is freshly allocated; the frames it points at are immutable.
func (s *Store) History() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Frame, s.count)
	n := len(s.hist)
	for r := 0; r < s.count; r++ {
		out[r] = s.hist[(s.head+r)%n]
	}
	return out
}

// Mode returns the current retention mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches retention mode. Leaving waterfall mode drops the
// history under the same lock Publish uses, so a concurrent publish
// can never resurrect a stale row. Entering waterfall mode starts with
// an empty history.
func (s *Store) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == s.mode {
		return
	}
	s.mode = mode
	for i := range s.hist {
		s.hist[i] = nil
	}
	s.head = 0
	s.count = 0
}

// Depth returns the history capacity H.
func (s *Store) Depth() int {
	return len(s.hist)
}
