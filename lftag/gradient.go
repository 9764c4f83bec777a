package lftag

import (
	"math"

	"github.com/cocosip/go-fiducial/topology"
)

// drawLine walks the pixels of the line from (x0,y0) to (x1,y1) via
// Bresenham's algorithm, calling visit for each one. Supplemented from
// original_source/src/localize.rs, which accumulates gradient magnitude
// along a tag's inner-rectangle edges via
// imageproc::drawing::draw_antialiased_line_segment_mut as a callback;
// imageproc has no place in this module (see DESIGN.md), so the walk is
// reimplemented directly here instead of being dropped.
func drawLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		visit(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// gradientMagnitude is a simple Sobel-free central-difference estimate of
// intensity gradient magnitude at (x,y), clamped to the image bounds.
func gradientMagnitude(gray topology.GrayImage, x, y int) float64 {
	w, h := gray.Width(), gray.Height()
	l, r := x-1, x+1
	t, b := y-1, y+1
	if l < 0 {
		l = 0
	}
	if r >= w {
		r = w - 1
	}
	if t < 0 {
		t = 0
	}
	if b >= h {
		b = h - 1
	}
	gx := float64(gray.At(r, y)) - float64(gray.At(l, y))
	gy := float64(gray.At(x, b)) - float64(gray.At(x, t))
	return math.Hypot(gx, gy)
}

// meanGradientAlongEdges samples gradient magnitude along the four edges
// of a quadrilateral (in pixel coordinates) and returns the mean.
func meanGradientAlongEdges(gray topology.GrayImage, corners [4][2]int) float64 {
	var sum float64
	var n int
	edge := func(a, b [2]int) {
		drawLine(a[0], a[1], b[0], b[1], func(x, y int) {
			sum += gradientMagnitude(gray, x, y)
			n++
		})
	}
	edge(corners[0], corners[1])
	edge(corners[1], corners[2])
	edge(corners[2], corners[3])
	edge(corners[3], corners[0])
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
