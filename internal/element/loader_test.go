package element

import (
	"strings"
	"testing"
)

const sampleElementsData = `
# comment line, ignored

[10]
name: Water
category: liquids
phase: liquid
base_color: #1E5FAE
blend_color: #2E6FCE
highlight_color: #4E8FEE
is_movable: true
density: 1.0
cohesion: 2
repose_angle: 45

[11]
name: Sand
category: sands
phase: solid
base_color: #C2A878
blend_color: #D2B888
highlight_color: #E2C898
is_movable: true
density: 2.0
cohesion: 1
repose_angle: 35

[12]
name: Broken
category: sands
phase: solid
base_color: #FFFFFF
blend_color: #FFFFFF
highlight_color: #FFFFFF
is_movable: true
cohesion: 1
repose_angle: 35

[10]
name: Duplicate
category: liquids
phase: liquid
base_color: #000000
blend_color: #000000
highlight_color: #000000
is_movable: true
density: 1.0
cohesion: 0
repose_angle: 45

[5]
name: Reserved
category: solids
phase: solid
base_color: #000000
blend_color: #000000
highlight_color: #000000
is_movable: true
density: 1.0
cohesion: 0
repose_angle: 45
`

func newTestRegistry() *Registry {
	return ParseElements(strings.NewReader(sampleElementsData))
}

func TestParseElementsValidBlocks(t *testing.T) {
	reg := newTestRegistry()

	water, ok := reg.Get(10)
	if !ok {
		t.Fatal("expected element 10 (Water) to be registered")
	}
	if water.Name != "Water" || water.Category != Liquid {
		t.Fatalf("unexpected water element: %+v", water)
	}

	sand, ok := reg.Get(11)
	if !ok {
		t.Fatal("expected element 11 (Sand) to be registered")
	}
	if sand.Category != Sand || len(sand.ReposeGroups) == 0 {
		t.Fatalf("expected sand repose groups to be derived, got %+v", sand)
	}
}

func TestParseElementsDiscardsMissingField(t *testing.T) {
	reg := newTestRegistry()
	if _, ok := reg.Get(12); ok {
		t.Fatal("block 12 is missing density and must be discarded")
	}
}

func TestParseElementsDiscardsDuplicateID(t *testing.T) {
	reg := newTestRegistry()
	water, ok := reg.Get(10)
	if !ok {
		t.Fatal("element 10 must still be present from its first definition")
	}
	if water.Name != "Water" {
		t.Fatalf("duplicate id 10 must not overwrite the first block, got name %q", water.Name)
	}
}

func TestParseElementsDiscardsReservedID(t *testing.T) {
	reg := newTestRegistry()
	if _, ok := reg.Get(5); ok {
		t.Fatal("reserved technical id 5 must be discarded, ids < 10 are reserved")
	}
}

func TestParseElementsAlwaysInjectsEmpty(t *testing.T) {
	reg := newTestRegistry()
	empty, ok := reg.Get(EmptyID)
	if !ok {
		t.Fatal("EMPTY element must always be present")
	}
	if empty.Name != "Empty" || empty.Density != 0 || !empty.IsMovable {
		t.Fatalf("unexpected EMPTY element: %+v", empty)
	}
}

func TestParseElementsEmptyOverridesUserDefinition(t *testing.T) {
	reg := ParseElements(strings.NewReader(`
[0]
name: NotEmpty
category: solids
phase: solid
base_color: #FFFFFF
blend_color: #FFFFFF
highlight_color: #FFFFFF
is_movable: false
density: 99
cohesion: 0
repose_angle: 45
`))
	empty, ok := reg.Get(EmptyID)
	if !ok || empty.Name != "Empty" {
		t.Fatalf("id 0 must always resolve to the hardcoded EMPTY element, got %+v", empty)
	}
}
