package topology

// BBox is an axis-aligned pixel-inclusive bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY int
}

func unionBBox(a, b BBox) BBox {
	return BBox{
		MinX: MinOf(a.MinX, b.MinX),
		MinY: MinOf(a.MinY, b.MinY),
		MaxX: MaxOf(a.MaxX, b.MaxX),
		MaxY: MaxOf(a.MaxY, b.MaxY),
	}
}

// Contains reports whether b lies entirely inside a (invariant 1: a
// finalized component's bbox contains every descendant's bbox).
func (a BBox) Contains(b BBox) bool {
	return a.MinX <= b.MinX && a.MinY <= b.MinY && a.MaxX >= b.MaxX && a.MaxY >= b.MaxY
}

// FeatureVector is the per-component record produced by BuildForest: one
// entry per connected component of the binarized image. Child/Sibling are
// indices into the forest slice BuildForest returns, forming a standard
// first-child/next-sibling tree; -1 means "none". LastChild is scratch used
// by BuildForest to append children in O(1); callers outside this package
// should not rely on it.
type FeatureVector struct {
	Area        int
	BBox        BBox
	LastRowMaxX int // rightmost pixel on the component's last scanned row
	Color       bool
	FOM         [2]float64 // Σ w·x, Σ w·y
	ZOM         float64    // Σ w

	Child, LastChild int
	Sibling          int
}

// weight applies the intensity-weighting rule: w = v for foreground
// (bright) components and 255-v for background (dark) ones, pulling each
// centroid toward the bright side of the edge for foreground components
// and toward the dark side for background ones.
func weight(v uint8, color bool) float64 {
	if color {
		return float64(v)
	}
	return float64(255 - int(v))
}

func newFeatureVector(x, y int, v uint8, color bool) FeatureVector {
	w := weight(v, color)
	return FeatureVector{
		Area:        1,
		BBox:        BBox{MinX: x, MinY: y, MaxX: x, MaxY: y},
		LastRowMaxX: x,
		Color:       color,
		FOM:         [2]float64{float64(x) * w, float64(y) * w},
		ZOM:         w,
		Child:       -1,
		LastChild:   -1,
		Sibling:     -1,
	}
}

// addPixel folds a newly-scanned pixel into the component's area, moments,
// bounding box, and LastRowMaxX.
func (fv *FeatureVector) addPixel(x, y int, v uint8) {
	w := weight(v, fv.Color)
	oldMaxY := fv.BBox.MaxY

	fv.Area++
	fv.FOM[0] += float64(x) * w
	fv.FOM[1] += float64(y) * w
	fv.ZOM += w

	if y > oldMaxY {
		fv.LastRowMaxX = x
	} else {
		fv.LastRowMaxX = MaxOf(fv.LastRowMaxX, x)
	}

	fv.BBox.MinX = MinOf(fv.BBox.MinX, x)
	fv.BBox.MinY = MinOf(fv.BBox.MinY, y)
	fv.BBox.MaxX = MaxOf(fv.BBox.MaxX, x)
	fv.BBox.MaxY = MaxOf(fv.BBox.MaxY, y)
}

// Centroid returns the intensity-weighted center of mass.
func (fv *FeatureVector) Centroid() (x, y float64) {
	return fv.FOM[0] / fv.ZOM, fv.FOM[1] / fv.ZOM
}
