package engine

import (
	"sandsim/internal/element"
	"sandsim/internal/grid"
)

var liquidDirectionGroups = [][]element.Offset{
	{{DX: 0, DY: -1}},
	{{DX: -1, DY: -1}, {DX: 1, DY: -1}},
	{{DX: -1, DY: 0}, {DX: 1, DY: 0}},
}

// eightNeighborhood is the candidate set a gas particle picks one
// direction from, uniformly at random, each tick.
var eightNeighborhood = []element.Offset{
	{DX: 0, DY: -1}, {DX: 1, DY: -1}, {DX: 1, DY: 0}, {DX: 1, DY: 1},
	{DX: 0, DY: 1}, {DX: -1, DY: 1}, {DX: -1, DY: 0}, {DX: -1, DY: -1},
}

// dispatch routes p to its category's handler, marking both endpoints of
// any resulting swap as processed so neither moves twice this tick.
func (e *Engine) dispatch(p *grid.Particle) {
	switch p.ElementRef.Category {
	case element.Liquid:
		e.handleLiquid(p)
	case element.Gas:
		e.handleGas(p)
	case element.Sand:
		e.handleSand(p)
	case element.Solid, element.Electronic, element.Technical:
		// no-op: solids don't move, electronics are reserved, technical
		// (including EMPTY) never dispatches.
	}
}

func (e *Engine) markMoved(p *grid.Particle, target *grid.Particle) {
	if target == nil {
		return
	}
	e.markProcessed(p.Index)
	e.markProcessed(target.Index)
}

// handleLiquid falls straight down first, then diagonally down, then
// sideways.
func (e *Engine) handleLiquid(p *grid.Particle) {
	target := e.grid.TryMove(p, liquidDirectionGroups, false, true, true)
	e.markMoved(p, target)
}

// handleGas picks one of the 8 neighboring directions uniformly at random
// each tick; statistical upward drift emerges from density comparisons
// against EMPTY air.
func (e *Engine) handleGas(p *grid.Particle) {
	dir := eightNeighborhood[e.rng.IntN(len(eightNeighborhood))]
	target := e.grid.TryMove(p, [][]element.Offset{{dir}}, false, true, true)
	e.markMoved(p, target)
}

// handleSand uses the element's precomputed repose direction tiers, with
// lateral jitter applied to every candidate direction, including the
// straight-down tier.
func (e *Engine) handleSand(p *grid.Particle) {
	target := e.grid.TryMove(p, p.ElementRef.ReposeGroups, true, true, true)
	e.markMoved(p, target)
}
