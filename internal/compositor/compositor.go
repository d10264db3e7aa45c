// Package compositor turns a tick's particle grid into an RGBA8 frame
// buffer: a Y-flipped base layer plus two source-over blended overlay
// passes.
package compositor

import (
	"image/color"

	"sandsim/internal/grid"
)

// pixel is one queued (x, y, color) write in sim-space coordinates, before
// the Y-flip that maps it into the buffer.
type pixel struct {
	x, y int
	c    color.RGBA
}

// Framebuffer accumulates one tick's particle, overlay, and UI pixel
// queues and composites them into a flat RGBA8 buffer on Render.
type Framebuffer struct {
	w, h int
	buf  []byte

	particles []*grid.Particle
	debug     *color.RGBA
	overlay   []pixel
	ui        []pixel
}

// New allocates a Framebuffer sized w*h*4 bytes, cleared to transparent
// black.
func New(w, h int) *Framebuffer {
	return &Framebuffer{
		w:   w,
		h:   h,
		buf: make([]byte, w*h*4),
	}
}

// QueueParticles schedules the whole grid for the base layer of the next
// Render call. debugColor, if non-nil, overrides every particle's color
// (a uniform debug tint rather than each cell's own shade).
func (f *Framebuffer) QueueParticles(particles []*grid.Particle, debugColor *color.RGBA) {
	f.particles = particles
	f.debug = debugColor
}

// QueueOverlayPixels schedules a set of pixels to be source-over blended
// on top of the base layer, ahead of the UI layer.
func (f *Framebuffer) QueueOverlayPixels(pixels []OverlayPixel) {
	f.overlay = f.overlay[:0]
	for _, p := range pixels {
		f.overlay = append(f.overlay, pixel{x: p.X, y: p.Y, c: p.Color})
	}
}

// OverlayPixel is a single sim-space pixel with color, for overlay/UI
// queues.
type OverlayPixel struct {
	X, Y  int
	Color color.RGBA
}

// SetCursor replaces the UI pixel queue with the brush outline for the
// current cursor position, or clears it when the cursor is off-grid.
func (f *Framebuffer) SetCursor(x, y, brushSize int, onGrid bool) {
	f.ui = f.ui[:0]
	if !onGrid {
		return
	}
	for _, o := range brushOutline(x, y, brushSize) {
		if o.X < 0 || o.Y < 0 || o.X >= f.w || o.Y >= f.h {
			continue
		}
		f.ui = append(f.ui, pixel{x: o.X, y: o.Y, c: brushOutlineColor})
	}
}

// Render composites the queued particle, overlay, and UI layers into the
// backing buffer, in that order, and clears the particle and overlay
// queues (the UI queue persists across frames until SetCursor replaces
// it).
func (f *Framebuffer) Render() {
	for _, p := range f.particles {
		c := p.Color
		if f.debug != nil {
			c = *f.debug
		}
		f.writeOpaque(p.X, p.Y, c)
	}

	for _, px := range f.overlay {
		f.blendOver(px.x, px.y, px.c)
	}
	for _, px := range f.ui {
		f.blendOver(px.x, px.y, px.c)
	}

	f.particles = nil
	f.overlay = f.overlay[:0]
}

// Pixels returns the current RGBA8 buffer, top-left origin (sim-space
// y=0 maps to the bottom row, per the Y-flip applied on write).
func (f *Framebuffer) Pixels() []byte {
	return f.buf
}

func (f *Framebuffer) flatIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0, false
	}
	flippedY := f.h - 1 - y
	return (flippedY*f.w + x) * 4, true
}

func (f *Framebuffer) writeOpaque(x, y int, c color.RGBA) {
	i, ok := f.flatIndex(x, y)
	if !ok {
		return
	}
	f.buf[i+0] = c.R
	f.buf[i+1] = c.G
	f.buf[i+2] = c.B
	f.buf[i+3] = c.A
}

// blendOver composites c onto the buffer at (x,y) using source-over alpha
// blending: out.rgb = src.rgb*a + dst.rgb*(1-a), out.a = min(dst.a, src.a).
func (f *Framebuffer) blendOver(x, y int, c color.RGBA) {
	i, ok := f.flatIndex(x, y)
	if !ok {
		return
	}
	srcA := float64(c.A) / 255
	dstA := f.buf[i+3]

	f.buf[i+0] = blendChannel(c.R, f.buf[i+0], srcA)
	f.buf[i+1] = blendChannel(c.G, f.buf[i+1], srcA)
	f.buf[i+2] = blendChannel(c.B, f.buf[i+2], srcA)
	if c.A < dstA {
		f.buf[i+3] = c.A
	} else {
		f.buf[i+3] = dstA
	}
}

func blendChannel(src, dst uint8, srcA float64) uint8 {
	out := float64(src)*srcA + float64(dst)*(1-srcA)
	return uint8(out + 0.5)
}
