package grid

import "sandsim/internal/element"

// TryMove is the one movement primitive every category handler is built
// on. directionGroups is a list of priority tiers; within a tier
// the candidate order is freshly randomized on every call. The first
// candidate, in any tier, whose target is movable and strictly less dense
// than p wins: p and the target are swapped and the target (now holding p's
// old contents) is returned. Returns nil if every candidate in every tier
// fails.
func (g *Grid) TryMove(p *Particle, directionGroups [][]element.Offset, bumpX, markDirty, includeNeighbors bool) *Particle {
	for _, tier := range directionGroups {
		candidates := make([]element.Offset, len(tier))
		copy(candidates, tier)
		g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		for _, d := range candidates {
			dx, dy := d.DX, d.DY
			if bumpX && g.rng.Bool() {
				dx = -dx
			}

			target := g.Get(p.X+dx, p.Y+dy)
			if target == nil {
				continue
			}
			if target.ElementRef.IsMovable && p.ElementRef.Density > target.ElementRef.Density {
				g.Swap(p, target, markDirty, includeNeighbors)
				return target
			}
		}
	}
	return nil
}
