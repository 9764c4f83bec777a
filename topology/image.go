// Package topology implements adaptive binarization and the two-pass
// connected-component containment-tree builder that underlies both tag
// decoders.
package topology

import "image"

// GrayImage is the O(1)-pixel-access, row-major grayscale collaborator the
// pipeline is built against. Callers are not required to use the standard
// library's image package; GrayAdapter wraps *image.Gray for convenience.
type GrayImage interface {
	Width() int
	Height() int
	At(x, y int) uint8
	// Pixels yields every pixel in row-major order; yield returning false
	// stops iteration early.
	Pixels(yield func(x, y int, v uint8) bool)
}

// GrayAdapter adapts a standard library *image.Gray to GrayImage.
type GrayAdapter struct {
	Img *image.Gray
}

func (g GrayAdapter) Width() int  { return g.Img.Rect.Dx() }
func (g GrayAdapter) Height() int { return g.Img.Rect.Dy() }

func (g GrayAdapter) At(x, y int) uint8 {
	return g.Img.GrayAt(g.Img.Rect.Min.X+x, g.Img.Rect.Min.Y+y).Y
}

func (g GrayAdapter) Pixels(yield func(x, y int, v uint8) bool) {
	b := g.Img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := y - b.Min.Y
		for x := b.Min.X; x < b.Max.X; x++ {
			if !yield(x-b.Min.X, row, g.Img.GrayAt(x, y).Y) {
				return
			}
		}
	}
}

// BitImage is a 1-bit-per-pixel output of Binarize. At reports
// foreground (true) or background (false).
type BitImage struct {
	W, H int
	bits []bool
}

func newBitImage(w, h int) *BitImage {
	return &BitImage{W: w, H: h, bits: make([]bool, w*h)}
}

func (b *BitImage) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.bits[y*b.W+x]
}

func (b *BitImage) set(x, y int, v bool) {
	b.bits[y*b.W+x] = v
}

func (b *BitImage) Width() int  { return b.W }
func (b *BitImage) Height() int { return b.H }
