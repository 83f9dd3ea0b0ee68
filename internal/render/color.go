package render

import "math"

// ColorScheme selects the magnitude-to-color mapping.
type ColorScheme int

const (
	// BlueToRed sweeps the HSV hue from blue (240, silence) down to
	// red (0, full scale).
	BlueToRed ColorScheme = iota
	// BlackToRed ramps black to purple over [0, 0.5), then purple to
	// red over [0.5, 1].
	BlackToRed
)

func (s ColorScheme) String() string {
	switch s {
	case BlueToRed:
		return "blue-red"
	case BlackToRed:
		return "black-red"
	default:
		return "unknown"
	}
}

// ParseColorScheme converts a config string to a ColorScheme.
func ParseColorScheme(s string) (ColorScheme, bool) {
	switch s {
	case "blue-red":
		return BlueToRed, true
	case "black-red":
		return BlackToRed, true
	default:
		return BlueToRed, false
	}
}

// RGB is a draw-ready color.
type RGB struct {
	R, G, B uint8
}

// ColorFor maps a magnitude in [0,1] to a color under the given
// scheme. Pure; out-of-range magnitudes are clamped.
func ColorFor(magnitude float64, scheme ColorScheme) RGB {
	m := clampMagnitude(magnitude)

	switch scheme {
	case BlueToRed:
		hue := (1.0 - m) * 240
		return hsvToRGB(hue, 1, 1)

	case BlackToRed:
		if m < 0.5 {
			p := uint8(m * 2 * 255)
			return RGB{R: p, B: p}
		}
		t := (m - 0.5) * 2
		return RGB{R: 255, B: uint8((1 - t) * 255)}

	default:
		return RGB{R: 255, G: 255, B: 255}
	}
}

func clampMagnitude(m float64) float64 {
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// hsvToRGB converts hue in degrees with saturation and value in [0,1].
func hsvToRGB(h, s, v float64) RGB {
	h = math.Mod(h, 360) / 60
	if h < 0 {
		h += 6
	}

	i := int(h)
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}
