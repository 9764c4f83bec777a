package topology

import "fmt"

// BinarizeMode selects the hard_lo constant used to force near-saturated
// pixels to foreground and suppress deep shadows, per spec.
type BinarizeMode int

const (
	// ModeLF is tuned for lftag images (hard_lo = 10).
	ModeLF BinarizeMode = iota
	// ModeTopo is tuned for topo images (hard_lo = 50).
	ModeTopo
)

func (m BinarizeMode) hardLo() int {
	switch m {
	case ModeLF:
		return 10
	case ModeTopo:
		return 50
	default:
		return 10
	}
}

const blockSize = 8

// Binarize adaptively thresholds img into a 1-bit bitmap using mode's
// default hard_lo. Width and height must both be multiples of 8, or
// ErrInputDimension is returned.
func Binarize(img GrayImage, mode BinarizeMode) (*BitImage, error) {
	return BinarizeWithHardLo(img, mode.hardLo())
}

// BinarizeWithHardLo runs the same adaptive thresholding as Binarize but
// with a caller-supplied hard_lo, overriding the mode's default.
func BinarizeWithHardLo(img GrayImage, hardLo int) (*BitImage, error) {
	w, h := img.Width(), img.Height()
	if w%blockSize != 0 || h%blockSize != 0 {
		return nil, fmt.Errorf("topology: width %d height %d: %w", w, h, ErrInputDimension)
	}

	blocksX, blocksY := w/blockSize, h/blockSize
	sums := make([][]int, blocksY)
	for i := range sums {
		sums[i] = make([]int, blocksX)
	}
	img.Pixels(func(x, y int, v uint8) bool {
		sums[y/blockSize][x/blockSize] += int(v)
		return true
	})

	means := make([][]int, blocksY)
	for by := 0; by < blocksY; by++ {
		means[by] = make([]int, blocksX)
		for bx := 0; bx < blocksX; bx++ {
			means[by][bx] = sums[by][bx] / (blockSize * blockSize)
		}
	}

	out := newBitImage(w, h)

	img.Pixels(func(x, y int, v uint8) bool {
		bx, by := x/blockSize, y/blockSize
		ox, oy := x%blockSize, y%blockSize

		var t int
		if bx+1 >= blocksX || by+1 >= blocksY {
			t = means[by][bx]
		} else {
			p1, p2 := means[by][bx], means[by+1][bx]
			p3, p4 := means[by][bx+1], means[by+1][bx+1]
			p5 := p3*ox + p1*(blockSize-ox)
			p6 := p4*ox + p2*(blockSize-ox)
			t = (p6*oy + p5*(blockSize-oy)) / (blockSize * blockSize)
		}

		vi := int(v)
		cond1 := vi > t && vi > hardLo && vi > (255-hardLo)
		cond2 := (vi > t || vi > (255-hardLo)) && vi > hardLo
		out.set(x, y, cond1 || cond2)
		return true
	})

	// Border is always background so every finite component has a finite
	// enclosing parent.
	for x := 0; x < w; x++ {
		out.set(x, 0, false)
		out.set(x, h-1, false)
	}
	for y := 0; y < h; y++ {
		out.set(0, y, false)
		out.set(w-1, y, false)
	}

	return out, nil
}
