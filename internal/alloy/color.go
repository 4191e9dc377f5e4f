package alloy

import "image/color"

// Thresholds bound the temperature range mapped onto the color ramp.
// Temperatures at or below Low are black, at or above High are white.
type Thresholds struct {
	Low  float64
	High float64
}

// DefaultThresholds maps [0, 1] onto the ramp. Callers simulating real
// temperatures should pass the hottest anchor as High.
var DefaultThresholds = Thresholds{Low: 0, High: 1}

// ThresholdsFor returns thresholds spanning zero to the hotter of the two
// anchor temperatures.
func ThresholdsFor(topLeft, bottomRight float64) Thresholds {
	high := topLeft
	if bottomRight > high {
		high = bottomRight
	}
	if high <= 0 {
		high = 1
	}
	return Thresholds{Low: 0, High: high}
}

// normalize returns where temperature falls in [Low, High] as a value in [0, 1].
func (t Thresholds) normalize(temperature float64) float64 {
	span := t.High - t.Low
	if span <= 0 {
		if temperature > t.Low {
			return 1
		}
		return 0
	}
	v := (temperature - t.Low) / span
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ColorFor maps a temperature onto a black, red, yellow, white heat ramp.
// It is a pure function; cells cache its result on every temperature write.
func ColorFor(temperature float64, t Thresholds) color.RGBA {
	v := t.normalize(temperature)
	const third = 1.0 / 3.0
	switch {
	case v < third:
		return color.RGBA{R: channel(v / third), A: 255}
	case v < 2*third:
		return color.RGBA{R: 255, G: channel((v - third) / third), A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: channel((v - 2*third) / third), A: 255}
	}
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
