package topology

// fakeGray is a minimal GrayImage backed by a flat byte slice, for tests
// that want to control pixel values without going through image.Gray.
type fakeGray struct {
	w, h int
	px   []uint8
}

func newFakeGray(w, h int, fill uint8) *fakeGray {
	px := make([]uint8, w*h)
	for i := range px {
		px[i] = fill
	}
	return &fakeGray{w: w, h: h, px: px}
}

func (g *fakeGray) Width() int  { return g.w }
func (g *fakeGray) Height() int { return g.h }
func (g *fakeGray) At(x, y int) uint8 {
	return g.px[y*g.w+x]
}
func (g *fakeGray) set(x, y int, v uint8) {
	g.px[y*g.w+x] = v
}
func (g *fakeGray) Pixels(yield func(x, y int, v uint8) bool) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if !yield(x, y, g.px[y*g.w+x]) {
				return
			}
		}
	}
}

// fillRect sets every pixel in [x0,x1) x [y0,y1) to v.
func (g *fakeGray) fillRect(x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.set(x, y, v)
		}
	}
}
