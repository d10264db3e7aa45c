package engine

import "testing"

// buildRowWithTower fills row y=0 across [0,width) with water, plus a
// tower of `towerHeight` additional water cells stacked at towerX above
// its row-0 base (y=1..towerHeight). The grid must be tall enough to
// leave one empty row above the tower top.
func buildRowWithTower(e *Engine, width, towerX, towerHeight int) {
	for x := 0; x < width; x++ {
		e.Grid().CreateAt(x, 0, 10, false, false)
	}
	for y := 1; y <= towerHeight; y++ {
		e.Grid().CreateAt(towerX, y, 10, false, false)
	}
}

func countWater(e *Engine) int {
	n := 0
	for i := 0; i < e.Grid().Len(); i++ {
		if e.Grid().At(i).ElementRef.ID == 10 {
			n++
		}
	}
	return n
}

func TestEqualisationSkippedAtOrBelowThreshold(t *testing.T) {
	// 27-cell base row + 3-cell tower = 30 members, the documented
	// ceiling at which equalisation must NOT run.
	width := 27
	e := newTestEngine(width+3, 5, 1)
	buildRowWithTower(e, width, width/2, 3)

	before := countWater(e)
	towerTopBefore := e.Grid().Get(width/2, 3).ElementRef.ID

	active := e.groupAndEqualize()
	if active != 0 {
		t.Fatalf("expected no equalised groups at exactly 30 members, got %d", active)
	}
	if countWater(e) != before {
		t.Fatal("water count must be conserved even when equalisation is skipped")
	}
	if e.Grid().Get(width/2, 3).ElementRef.ID != towerTopBefore {
		t.Fatal("tower must be untouched when the group is at or below threshold")
	}
}

func TestEqualisationRunsAboveThreshold(t *testing.T) {
	// 28-cell base row + 3-cell tower = 31 members, one past the
	// threshold.
	width := 28
	towerX := width / 2
	e := newTestEngine(width+3, 5, 1)
	buildRowWithTower(e, width, towerX, 3)

	before := countWater(e)

	active := e.groupAndEqualize()
	if active != 1 {
		t.Fatalf("expected exactly one equalised group, got %d", active)
	}
	if countWater(e) != before {
		t.Fatal("equalisation must conserve total liquid mass")
	}

	// The two highest tower cells (y=3, y=2) are strictly above every
	// available empty target (all at y=1), so both must have drained;
	// the lowest tower cell (y=1) ties with the available empties and
	// must NOT move.
	if e.Grid().Get(towerX, 3).ElementRef.ID != 0 {
		t.Fatal("tower top (y=3) must have drained into a lower empty cell")
	}
	if e.Grid().Get(towerX, 2).ElementRef.ID != 0 {
		t.Fatal("tower second level (y=2) must have drained into a lower empty cell")
	}
	if e.Grid().Get(towerX, 1).ElementRef.ID != 10 {
		t.Fatal("tower base (y=1) ties with y=1 empties and must remain water")
	}

	drained := 0
	for x := 0; x < width; x++ {
		if x == towerX {
			continue
		}
		if e.Grid().Get(x, 1).ElementRef.ID == 10 {
			drained++
		}
	}
	if drained != 2 {
		t.Fatalf("expected exactly 2 row-1 cells to receive drained water, got %d", drained)
	}
}

func TestEqualisationFlatPuddleIsEligibleButMakesNoSwaps(t *testing.T) {
	// A large, perfectly flat puddle has no swap candidates regardless of
	// its size (no liquid sits strictly above any of its own empties),
	// which also exercises the eligible-but-zero-swaps path.
	width := 40
	e := newTestEngine(width, 3, 1)
	for x := 0; x < width; x++ {
		e.Grid().CreateAt(x, 0, 10, false, false)
	}
	before := countWater(e)
	active := e.groupAndEqualize()
	if active != 1 {
		t.Fatalf("expected the flat row to be one eligible group, got %d", active)
	}
	if countWater(e) != before {
		t.Fatal("a flat puddle must remain unchanged by equalisation")
	}
}
