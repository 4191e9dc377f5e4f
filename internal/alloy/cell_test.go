package alloy_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alloyheat/internal/alloy"
)

func TestComposition_Validate(t *testing.T) {
	cases := []struct {
		name string
		comp alloy.Composition
		ok   bool
	}{
		{"Uniform", alloy.Uniform, true},
		{"Pure", alloy.Composition{0, 0, 1}, true},
		{"Mixed", alloy.Composition{0.2, 0.3, 0.5}, true},
		{"SumTooLow", alloy.Composition{0.2, 0.2, 0.2}, false},
		{"SumTooHigh", alloy.Composition{0.5, 0.5, 0.5}, false},
		{"Negative", alloy.Composition{-0.5, 1, 0.5}, false},
		{"NaN", alloy.Composition{math.NaN(), 0.5, 0.5}, false},
		{"Inf", alloy.Composition{math.Inf(1), 0, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.comp.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, alloy.ErrBadComposition)
			}
		})
	}
}

func TestCell(t *testing.T) {
	c := alloy.NewCell(0)
	assert.Zero(t, c.Temperature())
	for m := 1; m <= alloy.Metals; m++ {
		assert.InDelta(t, 1.0/3.0, c.Percent(m), 1e-15)
	}
	assert.Equal(t, color.RGBA{A: 255}, c.Color())

	c, err := alloy.NewCellWithComposition(1, alloy.Composition{0.1, 0.2, 0.7})
	require.NoError(t, err)
	assert.Equal(t, 0.7, c.Percent(3))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.Color())

	_, err = alloy.NewCellWithComposition(1, alloy.Composition{1, 1, 1})
	assert.ErrorIs(t, err, alloy.ErrBadComposition)
}

func TestColorFor(t *testing.T) {
	th := alloy.Thresholds{Low: 0, High: 300}
	cases := []struct {
		name string
		temp float64
		want color.RGBA
	}{
		{"BelowLow", -10, color.RGBA{A: 255}},
		{"Low", 0, color.RGBA{A: 255}},
		{"HalfRed", 50, color.RGBA{R: 128, A: 255}},
		{"Red", 100, color.RGBA{R: 255, A: 255}},
		{"Orange", 150, color.RGBA{R: 255, G: 128, A: 255}},
		{"Yellow", 200, color.RGBA{R: 255, G: 255, A: 255}},
		{"High", 300, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"AboveHigh", 1e6, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, alloy.ColorFor(tc.temp, th))
		})
	}
}

func TestColorFor_Monotonic(t *testing.T) {
	th := alloy.Thresholds{Low: 0, High: 6000}
	brightness := func(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }
	prev := -1
	for temp := 0.0; temp <= 6000; temp += 25 {
		b := brightness(alloy.ColorFor(temp, th))
		require.GreaterOrEqual(t, b, prev, "temperature %v", temp)
		prev = b
	}
}

func TestThresholdsFor(t *testing.T) {
	assert.Equal(t, alloy.Thresholds{Low: 0, High: 6000}, alloy.ThresholdsFor(6000, 100))
	assert.Equal(t, alloy.Thresholds{Low: 0, High: 250}, alloy.ThresholdsFor(10, 250))
	assert.Equal(t, alloy.Thresholds{Low: 0, High: 1}, alloy.ThresholdsFor(0, -5))
}
