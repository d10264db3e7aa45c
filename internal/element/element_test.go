package element

import (
	"image/color"
	"testing"
)

func TestReposeDirectionsLowAngle(t *testing.T) {
	e := NewElement(10, "Sand", Sand, SolidPhase, true, 2, zeroColor(), zeroColor(), zeroColor(), 1, 35)
	groups := e.ReposeGroups
	if len(groups) != 3 {
		t.Fatalf("angle < 50 must yield 3 tiers, got %d", len(groups))
	}
	if groups[0][0] != (Offset{DX: 0, DY: -1}) {
		t.Fatalf("tier 0 must be straight down, got %+v", groups[0])
	}
	if len(groups[1]) != 2 || len(groups[2]) != 2 {
		t.Fatalf("tiers 1 and 2 must each hold a symmetric pair, got %+v", groups)
	}
}

func TestReposeDirectionsHighAngle(t *testing.T) {
	e := NewElement(10, "Sand", Sand, SolidPhase, true, 2, zeroColor(), zeroColor(), zeroColor(), 1, 65)
	groups := e.ReposeGroups
	if len(groups) != 2 {
		t.Fatalf("angle >= 50 must yield 2 tiers, got %d", len(groups))
	}
	if groups[0][0] != (Offset{DX: 0, DY: -1}) {
		t.Fatalf("tier 0 must be straight down, got %+v", groups[0])
	}
}

func TestReposeAngleClamped(t *testing.T) {
	e := NewElement(10, "Sand", Sand, SolidPhase, true, 2, zeroColor(), zeroColor(), zeroColor(), 1, 5)
	if e.ReposeAngle != 10 {
		t.Fatalf("repose angle must clamp to 10, got %d", e.ReposeAngle)
	}
	e = NewElement(10, "Sand", Sand, SolidPhase, true, 2, zeroColor(), zeroColor(), zeroColor(), 1, 200)
	if e.ReposeAngle != 80 {
		t.Fatalf("repose angle must clamp to 80, got %d", e.ReposeAngle)
	}
}

func TestEmptyElement(t *testing.T) {
	e := Empty()
	if e.ID != EmptyID || e.Category != Technical || e.Phase != Virtual {
		t.Fatalf("unexpected EMPTY element shape: %+v", e)
	}
	if !e.IsMovable || e.Density != 0 {
		t.Fatalf("EMPTY must be movable with zero density: %+v", e)
	}
}

func zeroColor() color.RGBA { return color.RGBA{} }
