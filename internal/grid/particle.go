// Package grid holds the dense cell grid, the particle it stores per cell,
// and the movement primitive (TryMove) every category handler is built on.
package grid

import (
	"image/color"

	"sandsim/internal/element"
	"sandsim/internal/rng"
)

// Vec2 is a reserved velocity field; no handler in this core integrates it,
// but it is carried on every particle for future continuous-motion work.
type Vec2 struct {
	X, Y float32
}

// Particle is one mutable grid cell. Its ElementRef never changes once
// created except by CreateAt rebuilding the cell in place; Position/Index
// are kept in sync by Grid on every create/swap.
type Particle struct {
	ElementRef *element.Element

	X, Y  int
	Index int

	Color color.RGBA

	Velocity    Vec2
	Mass        float32
	Temperature float32
}

// colorSteps are the six interpolation steps { 0, 1/5, ... , 5/5 } a
// freshly created particle's color is sampled from.
var colorSteps = [6]float32{0, 1.0 / 5, 2.0 / 5, 3.0 / 5, 4.0 / 5, 1}

// sampleColor linearly interpolates between base and highlight at a random
// step drawn from the engine's RNG.
func sampleColor(base, highlight color.RGBA, r *rng.Source) color.RGBA {
	t := colorSteps[r.IntN(len(colorSteps))]
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return color.RGBA{
		R: lerp(base.R, highlight.R),
		G: lerp(base.G, highlight.G),
		B: lerp(base.B, highlight.B),
		A: lerp(base.A, highlight.A),
	}
}

const defaultTemperature = 21.0
