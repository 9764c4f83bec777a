// Package dots refines a data-dot component's moments for lftag decoding by
// dilating it by one pixel inside a small buffered region-of-interest,
// rather than trusting raw connected-component moments alone.
package dots

import (
	"github.com/cocosip/go-fiducial/topology"
)

// buffer is the number of extra pixels re-examined on every side of a
// component's bounding box.
const buffer = 3

// Recover re-examines the 3-pixel-buffered ROI around fv's bounding box and
// dilates the component by one pixel (8-connected, Chebyshev distance),
// folding the weighted intensity of newly-covered boundary pixels into
// fv's moments without touching Area, BBox, or Color. This compensates for
// binarization eroding small, nearly-round data dots below their true
// centroid-bearing extent. The component is taken to be every pixel of
// fv's color inside fv's bounding box; connectivity is not recomputed
// within the ROI, so a same-colored pixel of another region inside that
// box is treated as part of the dot.
func Recover(fv *topology.FeatureVector, gray topology.GrayImage, bin *topology.BitImage) error {
	x0 := fv.BBox.MinX - buffer
	y0 := fv.BBox.MinY - buffer
	x1 := fv.BBox.MaxX + buffer
	y1 := fv.BBox.MaxY + buffer

	w, h := gray.Width(), gray.Height()
	x0 = topology.MaxOf(x0, 0)
	y0 = topology.MaxOf(y0, 0)
	x1 = topology.MinOf(x1, w-1)
	y1 = topology.MinOf(y1, h-1)

	roi, origin := copyROI(gray, x0, y0, x1, y1)

	inComponent := func(x, y int) bool {
		return x >= fv.BBox.MinX && x <= fv.BBox.MaxX && y >= fv.BBox.MinY && y <= fv.BBox.MaxY && bin.At(x, y) == fv.Color
	}

	var addFOM0, addFOM1, addZOM float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inComponent(x, y) {
				continue
			}
			if !adjacentToComponent(x, y, inComponent) {
				continue
			}
			v := roi.GrayAt(x-origin.X, y-origin.Y).Y
			wt := weight(v, fv.Color)
			addFOM0 += float64(x) * wt
			addFOM1 += float64(y) * wt
			addZOM += wt
		}
	}

	fv.FOM = [2]float64{fv.FOM[0] + addFOM0, fv.FOM[1] + addFOM1}
	fv.ZOM += addZOM
	return nil
}

// adjacentToComponent reports whether (x,y) is one of the component's
// 8-neighbors, i.e. within the one-pixel Chebyshev dilation ring.
func adjacentToComponent(x, y int, inComponent func(x, y int) bool) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if inComponent(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

func weight(v uint8, color bool) float64 {
	if color {
		return float64(v)
	}
	return float64(255 - int(v))
}
