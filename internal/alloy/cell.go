package alloy

import (
	"fmt"
	"image/color"
	"math"
)

// Metals is the number of metals in the alloy.
const Metals = 3

// compositionTolerance is how far the percentages may drift from summing to 1.
const compositionTolerance = 1e-9

// Composition holds the share of each metal in a cell, indexed 0..Metals-1.
type Composition [Metals]float64

// Uniform is the default composition: an even split across the three metals.
var Uniform = Composition{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}

// Validate reports ErrBadComposition if any share is negative or not finite,
// or if the shares do not sum to 1.
func (c Composition) Validate() error {
	sum := 0.0
	for m, p := range c {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: metal %d has share %v", ErrBadComposition, m+1, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > compositionTolerance {
		return fmt.Errorf("%w: shares sum to %v", ErrBadComposition, sum)
	}
	return nil
}

// Cell is one region of the plate. Its composition never changes after
// construction; its temperature is written only through Grid.
type Cell struct {
	temperature float64
	composition Composition
	color       color.RGBA
}

// NewCell returns a cell at the given temperature with the uniform composition.
func NewCell(temperature float64) Cell {
	c := Cell{temperature: temperature, composition: Uniform}
	c.refresh(DefaultThresholds)
	return c
}

// NewCellWithComposition returns a cell with an explicit composition.
func NewCellWithComposition(temperature float64, comp Composition) (Cell, error) {
	if err := comp.Validate(); err != nil {
		return Cell{}, err
	}
	c := Cell{temperature: temperature, composition: comp}
	c.refresh(DefaultThresholds)
	return c, nil
}

// Temperature returns the cell temperature.
func (c Cell) Temperature() float64 { return c.temperature }

// Composition returns the cell composition.
func (c Cell) Composition() Composition { return c.composition }

// Percent returns the share of metal m (1, 2 or 3).
func (c Cell) Percent(m int) float64 { return c.composition[m-1] }

// Color returns the color cached at the last temperature write.
func (c Cell) Color() color.RGBA { return c.color }

// setTemperature writes the temperature and refreshes the cached color.
func (c *Cell) setTemperature(v float64, t Thresholds) {
	c.temperature = v
	c.refresh(t)
}

func (c *Cell) refresh(t Thresholds) {
	c.color = ColorFor(c.temperature, t)
}
