package engine

import "sort"

// step runs one fixed-timestep physics tick: it consumes the previous
// tick's dirty set, shuffles and sorts it bottom-first, dispatches each
// not-yet-processed particle to its category handler, and finally runs one
// liquid grouping + equalisation pass.
func (e *Engine) step() {
	dirty := e.grid.DirtyIndices()

	if e.dirtyClearEvery <= 1 || e.tickCount%uint64(e.dirtyClearEvery) == 0 {
		e.grid.ClearDirty()
	}

	order := e.rng.ShuffleInts(len(dirty))
	ordered := make([]int, len(dirty))
	for i, pos := range order {
		ordered[i] = dirty[pos]
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return e.grid.At(ordered[i]).Y < e.grid.At(ordered[j]).Y
	})

	e.beginProcessedGeneration()

	for _, idx := range ordered {
		if e.isProcessed(idx) {
			continue
		}
		e.dispatch(e.grid.At(idx))
	}

	e.lastActiveGroups = e.groupAndEqualize()
}

func (e *Engine) beginProcessedGeneration() {
	e.processedCur++
	if e.processedCur == 0 {
		// Wrapped around a uint32: force a hard reset so old generation
		// marks from tick 0 can't alias as "processed" forever.
		for i := range e.processedGen {
			e.processedGen[i] = 0
		}
		e.processedCur = 1
	}
}

func (e *Engine) isProcessed(idx int) bool {
	if idx < 0 || idx >= len(e.processedGen) {
		return false
	}
	return e.processedGen[idx] == e.processedCur
}

func (e *Engine) markProcessed(idx int) {
	if idx < 0 || idx >= len(e.processedGen) {
		return
	}
	e.processedGen[idx] = e.processedCur
}
