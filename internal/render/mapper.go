package render

import (
	"math"

	"spectro/internal/spectrum"
)

// barHeadroom keeps the tallest bar at 90% of the surface so the
// reference line marking full scale stays visible above it.
const barHeadroom = 0.9

// Bar is one draw command in bar mode. X and Width are in surface
// pixels; Height is measured up from the bottom edge.
type Bar struct {
	X      float64
	Width  float64
	Height float64
	Color  RGB
}

// BarView is the complete bar-mode geometry for one frame.
// RefLineY is the height of the full-scale reference line, measured
// from the bottom edge like the bars.
type BarView struct {
	Bars     []Bar
	RefLineY float64
}

// WaterfallView holds the waterfall rows newest first. Each row has
// one cell per visible bin, CellWidth pixels wide and one pixel tall;
// rows past the surface height are simply not included.
type WaterfallView struct {
	Rows      [][]RGB
	CellWidth float64
}

// binRange maps the configured frequency range onto frame indices.
// The bin spacing is sampleRate / N where N is twice the one-sided
// frame length. Both bounds are clamped independently: if a stale wide
// range meets a frame whose length changed mid-flight, the mapper
// degrades to the nearest valid bins instead of rejecting the frame.
func binRange(frameLen int, sampleRate, low, high float64) (lowBin, highBin int) {
	binSize := sampleRate / float64(frameLen*2)
	lowBin = clampBin(int(math.Round(low/binSize)), frameLen)
	highBin = clampBin(int(math.Round(high/binSize)), frameLen)
	return lowBin, highBin
}

func clampBin(bin, frameLen int) int {
	if bin < 0 {
		return 0
	}
	if bin > frameLen-1 {
		return frameLen - 1
	}
	return bin
}

// BuildBars produces bar-mode geometry for one frame on a surface of
// the given pixel size. A nil frame yields only the reference line.
func BuildBars(frame spectrum.Frame, cfg *Config, width, height float64) BarView {
	view := BarView{RefLineY: height * barHeadroom}
	if len(frame) == 0 {
		return view
	}

	low, high := cfg.FrequencyRange()
	scheme := cfg.Scheme()
	lowBin, highBin := binRange(len(frame), cfg.SampleRate(), low, high)

	visible := highBin - lowBin + 1
	barWidth := width / float64(visible)
	maxHeight := height * barHeadroom

	view.Bars = make([]Bar, 0, visible)
	for i := lowBin; i <= highBin; i++ {
		m := clampMagnitude(frame[i])
		view.Bars = append(view.Bars, Bar{
			X:      float64(i-lowBin) * barWidth,
			Width:  barWidth,
			Height: m * maxHeight,
			Color:  ColorFor(m, scheme),
		})
	}
	return view
}

// BuildWaterfall produces waterfall geometry from the history, newest
// first. The visible bin range and scheme are read once, so every row
// in the view is mapped consistently even if the configuration changes
// mid-build.
func BuildWaterfall(history []spectrum.Frame, cfg *Config, width, height float64) WaterfallView {
	if len(history) == 0 {
		return WaterfallView{}
	}

	low, high := cfg.FrequencyRange()
	scheme := cfg.Scheme()

	maxRows := int(height)
	if maxRows > len(history) {
		maxRows = len(history)
	}

	var view WaterfallView
	view.Rows = make([][]RGB, 0, maxRows)
	for r := 0; r < maxRows; r++ {
		frame := history[r]
		if len(frame) == 0 {
			continue
		}
		lowBin, highBin := binRange(len(frame), cfg.SampleRate(), low, high)
		visible := highBin - lowBin + 1
		if view.CellWidth == 0 {
			view.CellWidth = width / float64(visible)
		}

		row := make([]RGB, visible)
		for i := lowBin; i <= highBin; i++ {
			row[i-lowBin] = ColorFor(clampMagnitude(frame[i]), scheme)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
