// Package engine owns the grid, the fixed-timestep scheduler, and the
// category handlers/grouper that drive a physics tick. It is the single
// mutator of the grid: nothing else writes to it.
package engine

import (
	"time"

	"sandsim/internal/compositor"
	"sandsim/internal/element"
	"sandsim/internal/grid"
	"sandsim/internal/rng"
)

// maxSubsteps is the catastrophic-lag guard: if a single frame would need
// more than this many physics steps to catch up, the accumulator is reset
// instead of spiraling.
const maxSubsteps = 60

// PointerButton identifies which mouse/touch button an input event refers
// to.
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
)

// PointerEventType enumerates the normalized pointer events an input
// producer pushes into the engine.
type PointerEventType int

const (
	PointerDown PointerEventType = iota
	PointerMove
	PointerUp
)

// PointerEvent is one normalized input event in sim-space coordinates.
type PointerEvent struct {
	Type   PointerEventType
	Button PointerButton
	X, Y   int
}

// Stats is a point-in-time snapshot of engine state, useful for tests and
// for an optional driver's debug readout.
type Stats struct {
	TickCount       uint64
	DirtySetSize    int
	ActiveGroups    int
	FPS             float64
	TPS             float64
}

// Engine is the public core: grid + scheduler + compositor behind the
// "push frame buffer" / "paint circle" / "advance by delta-t" external
// contract.
type Engine struct {
	settings element.Settings
	reg      *element.Registry
	rng      *rng.Source

	grid       *grid.Grid
	compositor *compositor.Framebuffer

	isRunning bool

	lastFrameTime time.Time
	accumulator   time.Duration
	tickCount     uint64

	dirtyClearEvery int

	processedGen []uint32
	processedCur uint32

	lastActiveGroups int

	selectedElement uint16
	brushSize       int

	pointerDown   bool
	pointerButton PointerButton
	cursorX       int
	cursorY       int
	cursorOnGrid  bool

	fpsWindowStart time.Time
	fpsFrameCount  int
	fpsCurrent     float64
	tpsTickCount   int
	tpsCurrent     float64
}

// New constructs an Engine from loaded settings and an element registry.
// The RNG is seeded here and owned exclusively by the engine from this
// point on — never a package-level global.
func New(settings element.Settings, reg *element.Registry, seed int64) *Engine {
	r := rng.New(seed)
	g := grid.New(settings.Width, settings.Height, reg, r)
	e := &Engine{
		settings:     settings,
		reg:          reg,
		rng:          r,
		grid:         g,
		compositor:   compositor.New(settings.Width, settings.Height),
		processedGen: make([]uint32, g.Len()),
		brushSize:    settings.BrushSize,
	}
	e.SetDirtyClearCadence(settings.DirtyClearEvery)
	return e
}

// SetDirtyClearCadence configures how often (in ticks) the dirty set is
// cleared. The default is 1 (clear every tick); tests fix a concrete
// value.
func (e *Engine) SetDirtyClearCadence(n int) {
	if n < 1 {
		n = 1
	}
	e.dirtyClearEvery = n
}

// Width reports the grid width.
func (e *Engine) Width() int { return e.grid.W }

// Height reports the grid height.
func (e *Engine) Height() int { return e.grid.H }

// TickCount reports how many physics steps have run since construction.
func (e *Engine) TickCount() uint64 { return e.tickCount }

// FPS reports the frame rate sampled over a trailing ~1s window.
func (e *Engine) FPS() float64 { return e.fpsCurrent }

// TPS reports the physics tick rate sampled over a trailing ~1s window.
func (e *Engine) TPS() float64 { return e.tpsCurrent }

// Stats returns a snapshot of engine state.
func (e *Engine) Stats() Stats {
	return Stats{
		TickCount:    e.tickCount,
		DirtySetSize: len(e.grid.DirtyIndices()),
		ActiveGroups: e.lastActiveGroups,
		FPS:          e.fpsCurrent,
		TPS:          e.tpsCurrent,
	}
}

// Start flips the running flag; Tick is a no-op advance check while stopped
// is left to the caller (embedding drivers typically stop calling Tick, or
// check IsRunning themselves).
func (e *Engine) Start() { e.isRunning = true }

// Stop flips the running flag off.
func (e *Engine) Stop() { e.isRunning = false }

// IsRunning reports whether the engine has been started and not stopped.
func (e *Engine) IsRunning() bool { return e.isRunning }

// SetSelectedElement changes which element id future brush strokes paint.
func (e *Engine) SetSelectedElement(id uint16) { e.selectedElement = id }

// SetBrushSize sets the brush radius directly, clamped to
// [0, BrushMaxSize].
func (e *Engine) SetBrushSize(n int) {
	e.brushSize = clampInt(n, 0, e.settings.BrushMaxSize)
}

// PaintCircle paints elementID onto a disc of the given radius centered at
// (x,y), following the non-destructive FillCircle policy.
func (e *Engine) PaintCircle(x, y, radius int, elementID uint16) {
	e.grid.FillCircle(x, y, radius, elementID)
}

// EraseCircle clears a disc of the given radius back to EMPTY.
func (e *Engine) EraseCircle(x, y, radius int) {
	e.grid.FillCircle(x, y, radius, element.EmptyID)
}

// HandlePointerEvent maps a normalized input event to paint/erase state.
func (e *Engine) HandlePointerEvent(ev PointerEvent) {
	switch ev.Type {
	case PointerDown:
		e.pointerDown = true
		e.pointerButton = ev.Button
		e.cursorX, e.cursorY = ev.X, ev.Y
		e.cursorOnGrid = e.grid.InBounds(ev.X, ev.Y)
	case PointerMove:
		e.cursorX, e.cursorY = ev.X, ev.Y
		e.cursorOnGrid = e.grid.InBounds(ev.X, ev.Y)
	case PointerUp:
		e.pointerDown = false
	}
}

// HandleWheelDelta maps a wheel event to a brush-size change:
// delta * brush_sensitivity, clamped to [0, brush_max_size].
func (e *Engine) HandleWheelDelta(delta float64) {
	next := float64(e.brushSize) + delta*e.settings.BrushSensitivity
	e.SetBrushSize(int(next + 0.5))
}

// CursorOnGrid reports whether the last known pointer position lies inside
// the grid, for a driver that wants to draw a brush outline.
func (e *Engine) CursorOnGrid() (x, y int, onGrid bool) {
	return e.cursorX, e.cursorY, e.cursorOnGrid
}

// BrushSize returns the current brush radius.
func (e *Engine) BrushSize() int { return e.brushSize }

// applyPendingInput performs the continuous paint/erase stroke while a
// pointer button is held, delegating straight to PaintCircle/EraseCircle.
func (e *Engine) applyPendingInput() {
	if !e.pointerDown || !e.cursorOnGrid {
		return
	}
	if e.pointerButton == ButtonSecondary {
		e.EraseCircle(e.cursorX, e.cursorY, e.brushSize)
		return
	}
	e.PaintCircle(e.cursorX, e.cursorY, e.brushSize, e.selectedElement)
}

// Tick runs one frame: applies pending input, advances the fixed-timestep
// physics accumulator (capped at maxSubsteps), and renders a frame into the
// compositor. now is a monotonic timestamp in milliseconds.
func (e *Engine) Tick(nowMs float64) {
	now := time.Duration(nowMs * float64(time.Millisecond))
	nowT := time.Unix(0, int64(now))
	if e.lastFrameTime.IsZero() {
		e.lastFrameTime = nowT
	}
	dt := nowT.Sub(e.lastFrameTime)
	e.lastFrameTime = nowT

	e.applyPendingInput()

	e.accumulator += dt
	physicsInterval := e.settings.PhysicsInterval
	if physicsInterval <= 0 {
		physicsInterval = time.Millisecond
	}

	steps := 0
	for e.accumulator >= physicsInterval {
		e.step()
		e.accumulator -= physicsInterval
		e.tickCount++
		e.tpsTickCount++
		steps++
		if steps >= maxSubsteps {
			e.accumulator = 0
			break
		}
	}

	e.pushFrame()
	e.sampleRates(nowT)
}

func (e *Engine) pushFrame() {
	particles := make([]*grid.Particle, e.grid.Len())
	for i := range particles {
		particles[i] = e.grid.At(i)
	}
	e.compositor.QueueParticles(particles, nil)
	cursorX, cursorY, onGrid := e.CursorOnGrid()
	e.compositor.SetCursor(cursorX, cursorY, e.brushSize, onGrid)
	e.compositor.Render()
	e.fpsFrameCount++
}

func (e *Engine) sampleRates(now time.Time) {
	if e.fpsWindowStart.IsZero() {
		e.fpsWindowStart = now
		return
	}
	elapsed := now.Sub(e.fpsWindowStart)
	if elapsed >= time.Second {
		seconds := elapsed.Seconds()
		e.fpsCurrent = float64(e.fpsFrameCount) / seconds
		e.tpsCurrent = float64(e.tpsTickCount) / seconds
		e.fpsFrameCount = 0
		e.tpsTickCount = 0
		e.fpsWindowStart = now
	}
}

// TakeFrame returns the current RGBA8 frame buffer, top-left origin,
// W*H*4 bytes.
func (e *Engine) TakeFrame() []byte {
	return e.compositor.Pixels()
}

// Grid exposes the underlying grid for tests and for an embedding driver
// that needs direct read access (e.g. to render a palette preview).
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Registry exposes the element registry.
func (e *Engine) Registry() *element.Registry { return e.reg }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
