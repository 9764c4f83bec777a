package dots

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/cocosip/go-fiducial/topology"
)

// grayImageAdapter presents a topology.GrayImage as a standard image.Image
// so the region-of-interest copy below can go through golang.org/x/image/draw
// instead of a hand-rolled nested loop.
type grayImageAdapter struct {
	topology.GrayImage
}

func (g grayImageAdapter) ColorModel() color.Model { return color.GrayModel }
func (g grayImageAdapter) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width(), g.Height())
}
func (g grayImageAdapter) At(x, y int) color.Color {
	return color.Gray{Y: g.GrayImage.At(x, y)}
}

// copyROI draws the [x0,y0]-[x1,y1] rectangle of src into a freshly
// allocated *image.Gray local buffer, offset so the ROI's top-left maps to
// (0,0) in the returned image.
func copyROI(src topology.GrayImage, x0, y0, x1, y1 int) (*image.Gray, image.Point) {
	roi := image.Rect(0, 0, x1-x0+1, y1-y0+1)
	dst := image.NewGray(roi)
	draw.Draw(dst, roi, grayImageAdapter{src}, image.Pt(x0, y0), draw.Src)
	return dst, image.Pt(x0, y0)
}
