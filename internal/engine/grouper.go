package engine

import (
	"sort"

	"sandsim/internal/element"
	"sandsim/internal/grid"
)

// equalisationThreshold is the largest puddle size (in member cells) the
// equalisation step still skips; a liquid group must exceed it to be
// considered — ignores tiny puddles to avoid pathological frame cost.
const equalisationThreshold = 30

// equalisationBandwidthDivisor caps how many swaps a single equalisation
// pass performs per group: floor(L/4), a bandwidth throttle.
const equalisationBandwidthDivisor = 4

var upOffset = element.Offset{DX: 0, DY: 1}
var leftOffset = element.Offset{DX: -1, DY: 0}

// liquidGroup is one connected same-element puddle discovered by the
// single-scan union pass, along with its equalisation payload: every
// member particle, and the empty cells found directly above members.
type liquidGroup struct {
	members []int
	liquids []*grid.Particle
	empties []*grid.Particle
}

// groupAndEqualize runs the Katorithm single-scan union over the whole
// grid, then equalises liquid level within every puddle group larger than
// equalisationThreshold. It returns the number of groups that were
// equalised this tick.
func (e *Engine) groupAndEqualize() int {
	groups, groupOf := e.scanLiquidGroups()

	var eligible []*liquidGroup
	for _, g := range groups {
		if len(g.liquids) > equalisationThreshold {
			eligible = append(eligible, g)
		}
	}
	_ = groupOf

	for _, g := range eligible {
		e.equalizeGroup(g)
	}
	return len(eligible)
}

// scanLiquidGroups performs a single raster scan: y from H-1 down to 0,
// x from 0 to W-1 within each row, examining only the UP and LEFT
// neighbors already visited earlier in the scan.
func (e *Engine) scanLiquidGroups() ([]*liquidGroup, map[int]int) {
	var groups []*liquidGroup
	groupOf := make(map[int]int)

	join := func(gid int, p, up *grid.Particle, isUpEmpty bool) {
		groupOf[p.Index] = gid
		groups[gid].members = append(groups[gid].members, p.Index)
		groups[gid].liquids = append(groups[gid].liquids, p)
		if isUpEmpty {
			groups[gid].empties = append(groups[gid].empties, up)
		}
	}

	newGroup := func() int {
		gid := len(groups)
		groups = append(groups, &liquidGroup{})
		return gid
	}

	for y := e.grid.H - 1; y >= 0; y-- {
		for x := 0; x < e.grid.W; x++ {
			p := e.grid.Get(x, y)
			if p.ElementRef.Category != element.Liquid {
				continue
			}

			up := e.grid.Neighbor(p, upOffset)
			left := e.grid.Neighbor(p, leftOffset)

			hasUp := up != nil && up.ElementRef.ID == p.ElementRef.ID
			hasLeft := left != nil && left.ElementRef.ID == p.ElementRef.ID
			isUpEmpty := up != nil && up.ElementRef.ID == element.EmptyID

			switch {
			case !hasLeft && !hasUp:
				join(newGroup(), p, up, isUpEmpty)

			case hasLeft && !hasUp:
				gid, ok := groupOf[left.Index]
				if !ok {
					gid = newGroup()
				}
				join(gid, p, up, isUpEmpty)

			case !hasLeft && hasUp:
				gid, ok := groupOf[up.Index]
				if !ok {
					gid = newGroup()
				}
				join(gid, p, up, isUpEmpty)

			default: // hasLeft && hasUp
				upGid, ok := groupOf[up.Index]
				if !ok {
					upGid = newGroup()
				}
				join(upGid, p, up, isUpEmpty)

				leftGid, ok := groupOf[left.Index]
				if ok && leftGid != upGid {
					lg := groups[leftGid]
					groups[upGid].members = append(groups[upGid].members, lg.members...)
					groups[upGid].liquids = append(groups[upGid].liquids, lg.liquids...)
					groups[upGid].empties = append(groups[upGid].empties, lg.empties...)
					for _, idx := range lg.members {
						groupOf[idx] = upGid
					}
					groups[leftGid] = &liquidGroup{}
				}
			}
		}
	}

	return groups, groupOf
}

// equalizeGroup moves liquid from the highest members of the group down
// into the lowest available empty cells directly above the puddle,
// throttled to floor(L/4) swaps per tick.
func (e *Engine) equalizeGroup(g *liquidGroup) {
	liquids := append([]*grid.Particle(nil), g.liquids...)
	empties := append([]*grid.Particle(nil), g.empties...)

	sort.SliceStable(liquids, func(i, j int) bool { return liquids[i].Y > liquids[j].Y })
	sort.SliceStable(empties, func(i, j int) bool { return empties[i].Y < empties[j].Y })

	l := len(liquids)
	if len(empties) < l {
		l = len(empties)
	}
	cap := l / equalisationBandwidthDivisor

	swaps := 0
	for i := 0; i < l; i++ {
		if swaps >= cap {
			break
		}
		if liquids[i].Y <= empties[i].Y {
			continue
		}
		e.grid.Swap(liquids[i], empties[i], true, true)
		e.markProcessed(liquids[i].Index)
		e.markProcessed(empties[i].Index)
		swaps++
	}
}
