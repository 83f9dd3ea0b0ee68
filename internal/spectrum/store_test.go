package spectrum

import (
	"sync"
	"testing"
)

func frameOf(v float64) Frame {
	f := make(Frame, 4)
	for i := range f {
		f[i] = v
	}
	return f
}

func TestLatestReplacedWholesale(t *testing.T) {
	s := NewStore(10)
	if s.Latest() != nil {
		t.Error("expected nil latest before first publish")
	}

	s.Publish(frameOf(0.1))
	s.Publish(frameOf(0.2))
	got := s.Latest()
	if got == nil || got[0] != 0.2 {
		t.Errorf("latest = %v, want frame of 0.2", got)
	}
}

func TestHistoryOnlyInWaterfallMode(t *testing.T) {
	s := NewStore(10)
	s.Publish(frameOf(0.1))
	if n := len(s.History()); n != 0 {
		t.Errorf("bar-mode publish grew history to %d", n)
	}

	s.SetMode(ModeWaterfall)
	s.Publish(frameOf(0.2))
	if n := len(s.History()); n != 1 {
		t.Errorf("history length = %d, want 1", n)
	}
}

func TestHistoryNewestFirstAndBounded(t *testing.T) {
	const depth = 5
	s := NewStore(depth)
	s.SetMode(ModeWaterfall)

	for i := 1; i <= depth+3; i++ {
		s.Publish(frameOf(float64(i)))
	}

	hist := s.History()
	if len(hist) != depth {
		t.Fatalf("history length = %d, want capacity %d", len(hist), depth)
	}
	// Newest first: 8, 7, 6, 5, 4. Frames 1..3 were evicted.
	for r, want := 0, float64(depth+3); r < depth; r, want = r+1, want-1 {
		if hist[r][0] != want {
			t.Errorf("row %d = %g, want %g", r, hist[r][0], want)
		}
	}
}

func TestEvictionHappensExactlyAtCapacity(t *testing.T) {
	s := NewStore(3)
	s.SetMode(ModeWaterfall)

	for i := 1; i <= 3; i++ {
		s.Publish(frameOf(float64(i)))
	}
	hist := s.History()
	if len(hist) != 3 || hist[2][0] != 1 {
		t.Fatalf("before eviction: len=%d tail=%v", len(hist), hist[len(hist)-1])
	}

	// The 4th publish evicts exactly the oldest frame.
	s.Publish(frameOf(4))
	hist = s.History()
	if len(hist) != 3 {
		t.Fatalf("after eviction: length = %d, want 3", len(hist))
	}
	if hist[0][0] != 4 || hist[2][0] != 2 {
		t.Errorf("after eviction: head=%g tail=%g, want 4 and 2", hist[0][0], hist[2][0])
	}
}

func TestModeSwitchClearsHistory(t *testing.T) {
	s := NewStore(10)
	s.SetMode(ModeWaterfall)
	s.Publish(frameOf(0.5))
	s.Publish(frameOf(0.6))

	s.SetMode(ModeBars)
	s.SetMode(ModeWaterfall)
	if n := len(s.History()); n != 0 {
		t.Errorf("history after round trip = %d rows, want empty", n)
	}
	// Latest survives a mode switch.
	if got := s.Latest(); got == nil || got[0] != 0.6 {
		t.Errorf("latest after mode switch = %v, want frame of 0.6", got)
	}
}

func TestSetModeSameModeKeepsHistory(t *testing.T) {
	s := NewStore(10)
	s.SetMode(ModeWaterfall)
	s.Publish(frameOf(0.5))
	s.SetMode(ModeWaterfall)
	if n := len(s.History()); n != 1 {
		t.Errorf("redundant SetMode cleared history: %d rows", n)
	}
}

func TestSubscribeNotifiedPerPublish(t *testing.T) {
	s := NewStore(10)
	var got []float64
	s.Subscribe(func(f Frame) {
		got = append(got, f[0])
	})

	s.Publish(frameOf(1))
	s.Publish(frameOf(2))
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("observer saw %v, want [1 2]", got)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"bars", ModeBars, true},
		{"bar", ModeBars, true},
		{"waterfall", ModeWaterfall, true},
		{"scope", ModeBars, false},
	}
	for _, tc := range cases {
		got, ok := ParseMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseMode(%q) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestConcurrentPublishAndSnapshot(t *testing.T) {
	s := NewStore(100)
	s.SetMode(ModeWaterfall)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Publish(frameOf(float64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hist := s.History()
			// Rows must always be newest-first and fully formed.
			for r := 1; r < len(hist); r++ {
				if hist[r-1][0] < hist[r][0] {
					t.Errorf("row %d (%g) older than row %d (%g)",
						r-1, hist[r-1][0], r, hist[r][0])
					return
				}
			}
			_ = s.Latest()
		}
	}()
	wg.Wait()

	if n := len(s.History()); n != 100 {
		t.Errorf("history length = %d, want capacity 100", n)
	}
}
