// Package element holds the immutable species table the grid is painted
// with: id, category, phase, physical constants, and the derived data
// (repose directions) that category handlers consult at runtime.
package element

import (
	"image/color"
	"math"
)

// Category selects which per-tick handler a particle's element dispatches
// to. The numeric values run Technical=0 through Electronic=5; String gives
// the name a category is spelled with in elements.data.
type Category uint8

const (
	Technical Category = iota
	Solid
	Liquid
	Gas
	Sand
	Electronic
)

// String renders the category the way it appears in elements.data.
func (c Category) String() string {
	switch c {
	case Solid:
		return "solids"
	case Liquid:
		return "liquids"
	case Gas:
		return "gases"
	case Sand:
		return "sands"
	case Electronic:
		return "electronics"
	default:
		return "technical"
	}
}

// Phase describes the matter phase of an element. Virtual is reserved for
// the technical EMPTY element, which occupies no physical phase.
type Phase int8

const (
	Virtual Phase = iota - 1
	SolidPhase
	LiquidPhase
	GasPhase
	PlasmaPhase
)

// String renders the phase the way it appears in elements.data.
func (p Phase) String() string {
	switch p {
	case SolidPhase:
		return "solid"
	case LiquidPhase:
		return "liquid"
	case GasPhase:
		return "gas"
	case PlasmaPhase:
		return "plasma"
	default:
		return "virtual"
	}
}

// EmptyID is the reserved element id for the always-present EMPTY element.
const EmptyID uint16 = 0

// FirstUserID is the smallest id a loaded element block may declare.
// Ids 1-9 are reserved technical slots.
const FirstUserID uint16 = 10

// Offset is a relative cell coordinate used by repose direction groups and
// neighbor lookups.
type Offset struct {
	DX, DY int
}

// Element is an immutable species definition. Every Particle on the grid
// holds a reference to one of these; nothing about an Element changes
// after the registry is built.
type Element struct {
	ID   uint16
	Name string

	Category Category
	Phase    Phase

	IsMovable bool
	Density   float32

	BaseColor      color.RGBA
	BlendColor     color.RGBA
	HighlightColor color.RGBA

	Cohesion     uint8
	ReposeAngle  uint8
	ReposeGroups [][]Offset
}

// clampReposeAngle restricts the repose angle to the documented [10,80]
// degree range.
func clampReposeAngle(deg int) uint8 {
	if deg < 10 {
		deg = 10
	}
	if deg > 80 {
		deg = 80
	}
	return uint8(deg)
}

// reposeDirections derives the sand direction-group tiers from a repose
// angle using a two-branch construction: shallow angles (< 50) widen the
// lateral spread, steep angles narrow it to one column and deepen the drop.
func reposeDirections(angleDeg uint8) [][]Offset {
	theta := float64(angleDeg) * math.Pi / 180
	if angleDeg < 50 {
		cot := math.Ceil(1 / math.Tan(theta))
		c := int(cot)
		return [][]Offset{
			{{DX: 0, DY: -1}},
			{{DX: 1, DY: -1}, {DX: -1, DY: -1}},
			{{DX: c, DY: -1}, {DX: -c, DY: -1}},
		}
	}
	tan := math.Ceil(math.Tan(theta))
	t := int(tan)
	return [][]Offset{
		{{DX: 0, DY: -1}},
		{{DX: 1, DY: -t}, {DX: -1, DY: -t}},
	}
}

// NewElement constructs an Element, deriving ReposeGroups from ReposeAngle.
// Callers (the loader, and the hardcoded EMPTY element) should always go
// through this constructor rather than building the struct literal
// directly so the derived data never goes stale.
func NewElement(id uint16, name string, cat Category, phase Phase, movable bool, density float32, base, blend, highlight color.RGBA, cohesion uint8, reposeAngle int) Element {
	angle := clampReposeAngle(reposeAngle)
	return Element{
		ID:             id,
		Name:           name,
		Category:       cat,
		Phase:          phase,
		IsMovable:      movable,
		Density:        density,
		BaseColor:      base,
		BlendColor:     blend,
		HighlightColor: highlight,
		Cohesion:       cohesion,
		ReposeAngle:    angle,
		ReposeGroups:   reposeDirections(angle),
	}
}

// Empty builds the hardcoded EMPTY element, injected at id 0 regardless of
// what (if anything) the data file declares for that slot.
func Empty() Element {
	black := color.RGBA{R: 0x0E, G: 0x0E, B: 0x11, A: 0xFF}
	return NewElement(EmptyID, "Empty", Technical, Virtual, true, 0, black, black, black, 0, 45)
}
