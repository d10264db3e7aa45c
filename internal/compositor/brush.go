package compositor

import "image/color"

// brushOutlineColor is the fixed color of the cursor brush outline.
var brushOutlineColor = color.RGBA{R: 227, G: 227, B: 227, A: 180}

// brushOutline returns the pixels of a circle outline of the given radius
// centered at (cx, cy), via the midpoint circle algorithm: it walks one
// octant and mirrors each step into the other seven.
func brushOutline(cx, cy, radius int) []OverlayPixel {
	if radius <= 0 {
		return []OverlayPixel{{X: cx, Y: cy, Color: brushOutlineColor}}
	}

	var out []OverlayPixel
	plot := func(x, y int) {
		out = append(out,
			OverlayPixel{X: cx + x, Y: cy + y, Color: brushOutlineColor},
			OverlayPixel{X: cx - x, Y: cy + y, Color: brushOutlineColor},
			OverlayPixel{X: cx + x, Y: cy - y, Color: brushOutlineColor},
			OverlayPixel{X: cx - x, Y: cy - y, Color: brushOutlineColor},
			OverlayPixel{X: cx + y, Y: cy + x, Color: brushOutlineColor},
			OverlayPixel{X: cx - y, Y: cy + x, Color: brushOutlineColor},
			OverlayPixel{X: cx + y, Y: cy - x, Color: brushOutlineColor},
			OverlayPixel{X: cx - y, Y: cy - x, Color: brushOutlineColor},
		)
	}

	x := 0
	y := radius
	d := 1 - radius
	plot(x, y)
	for x < y {
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
		plot(x, y)
	}

	return out
}
