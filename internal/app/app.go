//go:build ebiten

package app

import (
	"time"

	"sandsim/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an Engine to the ebiten.Game interface: it forwards pointer
// and wheel input each frame, advances the simulation, and blits the
// engine's frame buffer.
type Game struct {
	eng   *engine.Engine
	img   *ebiten.Image
	scale int

	elementIDs []uint16
	paletteIdx int

	pointerWasDown bool
}

// New constructs a Game driving the given Engine.
func New(eng *engine.Engine, scale int) *Game {
	g := &Game{
		eng:        eng,
		img:        ebiten.NewImage(eng.Width(), eng.Height()),
		scale:      scale,
		elementIDs: eng.Registry().IDs(),
	}
	if len(g.elementIDs) > 0 {
		eng.SetSelectedElement(g.elementIDs[0])
	}
	eng.Start()
	return g
}

// Update handles per-frame input and advances the simulation clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.eng.IsRunning() {
			g.eng.Stop()
		} else {
			g.eng.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cyclePalette()
	}

	g.forwardPointer()
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.eng.HandleWheelDelta(dy)
	}

	if g.eng.IsRunning() {
		nowMs := float64(time.Now().UnixNano()) / float64(time.Millisecond)
		g.eng.Tick(nowMs)
	}
	return nil
}

func (g *Game) cyclePalette() {
	if len(g.elementIDs) == 0 {
		return
	}
	g.paletteIdx = (g.paletteIdx + 1) % len(g.elementIDs)
	g.eng.SetSelectedElement(g.elementIDs[g.paletteIdx])
}

// forwardPointer translates screen-space cursor and button state into the
// engine's normalized pointer events, including the sim-space Y-flip
// (screen rows grow downward, sim-space grows upward).
func (g *Game) forwardPointer() {
	cx, cy := ebiten.CursorPosition()
	sx, sy := cx/g.scale, g.eng.Height()-1-cy/g.scale

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	down := leftDown || rightDown

	switch {
	case down && !g.pointerWasDown:
		btn := engine.ButtonPrimary
		if rightDown {
			btn = engine.ButtonSecondary
		}
		g.eng.HandlePointerEvent(engine.PointerEvent{Type: engine.PointerDown, Button: btn, X: sx, Y: sy})
	case down:
		g.eng.HandlePointerEvent(engine.PointerEvent{Type: engine.PointerMove, X: sx, Y: sy})
	case !down && g.pointerWasDown:
		g.eng.HandlePointerEvent(engine.PointerEvent{Type: engine.PointerUp})
	}
	g.pointerWasDown = down
}

// Draw uploads the engine's current frame into the backing image and
// blits it, scaled, onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.img.ReplacePixels(g.eng.TakeFrame())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.eng.Width() * g.scale, g.eng.Height() * g.scale
}
