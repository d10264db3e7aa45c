package grid

import (
	"sandsim/internal/element"
	"sandsim/internal/rng"
)

// Grid is the dense W*H particle store. It is owned exclusively by the
// engine; no other component mutates it.
type Grid struct {
	W, H int

	cells []Particle
	reg   *element.Registry
	rng   *rng.Source

	// dirty is a dense bitmap keyed by flat index, paired with dirtyList to
	// give O(1) membership test plus ordered iteration without scanning
	// the whole grid. Chosen over a hash set because the grid is dense and
	// the dirty set churns every tick.
	dirty     []bool
	dirtyList []int
}

// New allocates a W*H grid of EMPTY particles.
func New(w, h int, reg *element.Registry, r *rng.Source) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{
		W:     w,
		H:     h,
		cells: make([]Particle, w*h),
		reg:   reg,
		rng:   r,
		dirty: make([]bool, w*h),
	}
	empty := reg.MustGet(element.EmptyID)
	for i := range g.cells {
		x, y := i%w, i/w
		g.cells[i] = g.buildParticle(x, y, i, &empty)
	}
	return g
}

func (g *Grid) buildParticle(x, y, index int, e *element.Element) Particle {
	return Particle{
		ElementRef:  e,
		X:           x,
		Y:           y,
		Index:       index,
		Color:       sampleColor(e.BaseColor, e.HighlightColor, g.rng),
		Temperature: defaultTemperature,
	}
}

// InBounds reports whether (x,y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) index(x, y int) int { return y*g.W + x }

// Get returns a pointer to the particle at (x,y), or nil if out of bounds.
func (g *Grid) Get(x, y int) *Particle {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.index(x, y)]
}

// At returns a pointer to the particle at a flat index. idx must be valid;
// callers that don't already know that should use Get.
func (g *Grid) At(idx int) *Particle {
	if idx < 0 || idx >= len(g.cells) {
		return nil
	}
	return &g.cells[idx]
}

// Len returns the number of cells (W*H).
func (g *Grid) Len() int { return len(g.cells) }

// Neighbor returns the particle offset from p by delta, or nil if that
// would fall outside the grid.
func (g *Grid) Neighbor(p *Particle, d element.Offset) *Particle {
	return g.Get(p.X+d.DX, p.Y+d.DY)
}

// Neighbors maps a list of offsets to particles relative to p, dropping any
// that fall out of bounds, then keeps only those matching every supplied
// filter (AND semantics). A nil filter is not applied.
func (g *Grid) Neighbors(p *Particle, deltas []element.Offset, filterCategory *element.Category, filterID *uint16) []*Particle {
	out := make([]*Particle, 0, len(deltas))
	for _, d := range deltas {
		n := g.Neighbor(p, d)
		if n == nil {
			continue
		}
		if filterCategory != nil && n.ElementRef.Category != *filterCategory {
			continue
		}
		if filterID != nil && n.ElementRef.ID != *filterID {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkDirty adds p's index to the dirty set, and optionally the indices of
// all 8 existing neighbors too.
func (g *Grid) MarkDirty(p *Particle, includeNeighbors bool) {
	g.markIndex(p.Index)
	if !includeNeighbors {
		return
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := g.Get(p.X+dx, p.Y+dy); n != nil {
				g.markIndex(n.Index)
			}
		}
	}
}

func (g *Grid) markIndex(idx int) {
	if idx < 0 || idx >= len(g.dirty) || g.dirty[idx] {
		return
	}
	g.dirty[idx] = true
	g.dirtyList = append(g.dirtyList, idx)
}

// DirtyIndices returns the flat indices currently in the dirty set. The
// returned slice is owned by the caller; mutating it does not affect Grid.
func (g *Grid) DirtyIndices() []int {
	out := make([]int, len(g.dirtyList))
	copy(out, g.dirtyList)
	return out
}

// ClearDirty empties the dirty set.
func (g *Grid) ClearDirty() {
	for _, idx := range g.dirtyList {
		if idx >= 0 && idx < len(g.dirty) {
			g.dirty[idx] = false
		}
	}
	g.dirtyList = g.dirtyList[:0]
}

// CreateAt rebuilds the cell at (x,y) in place as a new particle of the
// given element id. It returns false only when (x,y) is out of bounds.
func (g *Grid) CreateAt(x, y int, elementID uint16, markDirty, includeNeighbors bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	idx := g.index(x, y)
	e := g.reg.MustGet(elementID)
	g.cells[idx] = g.buildParticle(x, y, idx, &e)
	if markDirty {
		g.MarkDirty(&g.cells[idx], includeNeighbors)
	}
	return true
}

// FillCircle paints a disc of radius r centered at (cx,cy). Erasing
// (elementID == 0) overwrites any occupant; painting a non-empty element
// only lands on cells that are currently EMPTY, so a brush stroke never
// destroys existing material.
func (g *Grid) FillCircle(cx, cy, r int, elementID uint16) {
	r2 := r * r
	for j := -r; j <= r; j++ {
		for i := -r; i <= r; i++ {
			if i*i+j*j > r2 {
				continue
			}
			px, py := cx+i, cy+j
			if !g.InBounds(px, py) {
				continue
			}
			cell := g.Get(px, py)
			if elementID == element.EmptyID || cell.ElementRef.ID == element.EmptyID {
				g.CreateAt(px, py, elementID, true, true)
			}
		}
	}
}

// Swap exchanges the particles at a and b. After the call, both
// participants' positions and indices reflect their new grid slot.
func (g *Grid) Swap(a, b *Particle, markDirty, includeNeighbors bool) {
	ai, bi := a.Index, b.Index
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y

	g.cells[ai], g.cells[bi] = g.cells[bi], g.cells[ai]

	g.cells[ai].X, g.cells[ai].Y, g.cells[ai].Index = ax, ay, ai
	g.cells[bi].X, g.cells[bi].Y, g.cells[bi].Index = bx, by, bi

	if markDirty {
		g.MarkDirty(&g.cells[ai], includeNeighbors)
		g.MarkDirty(&g.cells[bi], includeNeighbors)
	}
}
