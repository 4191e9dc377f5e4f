package alloy

import (
	"fmt"
	"math/rand"
)

// Strategy decides the composition of each cell when a grid is built.
// NewGrid calls it once per cell in row-major order from a single goroutine,
// so implementations may keep state such as a random source.
type Strategy interface {
	Composition(row, col int) Composition
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(row, col int) Composition

// Composition implements Strategy.
func (f StrategyFunc) Composition(row, col int) Composition { return f(row, col) }

// Strategy names accepted by StrategyByName.
const (
	StrategyUniform = "uniform"
	StrategyRandom  = "random"
	StrategyBands   = "bands"
)

// UniformStrategy gives every cell the even 1/3 split.
func UniformStrategy() Strategy {
	return FixedStrategy(Uniform)
}

// FixedStrategy gives every cell the same composition.
func FixedStrategy(c Composition) Strategy {
	return StrategyFunc(func(int, int) Composition { return c })
}

// RandomStrategy perturbs each metal's weight by up to ±spread around 1 and
// normalizes, so spread 0 is uniform and spread close to 1 lets a metal all
// but vanish from a cell. The sequence is reproducible for a given seed.
func RandomStrategy(seed int64, spread float64) Strategy {
	if spread < 0 {
		spread = 0
	}
	if spread > 1 {
		spread = 1
	}
	rng := rand.New(rand.NewSource(seed))
	return StrategyFunc(func(int, int) Composition {
		var c Composition
		sum := 0.0
		for m := range c {
			c[m] = 1 + spread*(2*rng.Float64()-1)
			sum += c[m]
		}
		if sum == 0 {
			return Uniform
		}
		for m := range c {
			c[m] /= sum
		}
		return c
	})
}

// bandDominant is the share of the dominant metal inside a band.
const bandDominant = 0.6

// BandStrategy splits the plate into vertical column bands. Each band is
// dominated by one metal in turn, the other two sharing the remainder.
func BandStrategy(width, bands int) Strategy {
	if bands < 1 {
		bands = 1
	}
	if width < 1 {
		width = 1
	}
	minor := (1 - bandDominant) / (Metals - 1)
	return StrategyFunc(func(_, col int) Composition {
		band := col * bands / width
		c := Composition{minor, minor, minor}
		c[band%Metals] = bandDominant
		return c
	})
}

// StrategyByName builds one of the named strategies. width sizes the bands
// strategy; seed and spread drive the random strategy.
func StrategyByName(name string, width int, seed int64, spread float64) (Strategy, error) {
	switch name {
	case "", StrategyUniform:
		return UniformStrategy(), nil
	case StrategyRandom:
		return RandomStrategy(seed, spread), nil
	case StrategyBands:
		return BandStrategy(width, Metals*2), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
