package fiducial

import (
	"image"

	"github.com/cocosip/go-fiducial/topology"
)

// GrayImage is the "O(1)-pixel-access, width, height, row-major pixel
// iteration" collaborator spec.md §6 specifies. It is topology.GrayImage
// re-exported at the package root so a caller of this package's entry
// points never has to import the topology package directly.
type GrayImage = topology.GrayImage

// GrayAdapter adapts a standard library *image.Gray to GrayImage.
type GrayAdapter = topology.GrayAdapter

// NewGrayAdapter wraps img for use as a GrayImage.
func NewGrayAdapter(img *image.Gray) GrayAdapter {
	return GrayAdapter{Img: img}
}
