package topology

import "testing"

func rectBit(w, h int, rects []struct {
	x0, y0, x1, y1 int
	v               bool
}) *BitImage {
	b := newBitImage(w, h)
	for _, r := range rects {
		for y := r.y0; y < r.y1; y++ {
			for x := r.x0; x < r.x1; x++ {
				b.set(x, y, r.v)
			}
		}
	}
	return b
}

func TestBuildForestSingleSquare(t *testing.T) {
	w, h := 16, 16
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{4, 4, 12, 12, true},
	})
	gray := newFakeGray(w, h, 200)
	gray.fillRect(4, 4, 12, 12, 20)

	forest, err := BuildForest(bin, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if err := CheckInvariants(forest); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	if len(forest) != 2 {
		t.Fatalf("len(forest) = %d, want 2 (background + square)", len(forest))
	}

	root := forest[0]
	if root.Color {
		t.Fatal("root must be background")
	}
	child := forest[root.Child]
	if !child.Color {
		t.Fatal("square must be foreground")
	}
	if child.Area != 8*8 {
		t.Errorf("child.Area = %d, want 64", child.Area)
	}
	wantBBox := BBox{MinX: 4, MinY: 4, MaxX: 11, MaxY: 11}
	if child.BBox != wantBBox {
		t.Errorf("child.BBox = %+v, want %+v", child.BBox, wantBBox)
	}
	if child.Sibling != -1 {
		t.Error("single square must have no siblings")
	}
}

func TestBuildForestNestedRings(t *testing.T) {
	// white background -> black ring -> white inner square: a 2-level chain.
	w, h := 32, 32
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{6, 6, 26, 26, true},
		{12, 12, 20, 20, false},
	})
	gray := newFakeGray(w, h, 128)

	forest, err := BuildForest(bin, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if err := CheckInvariants(forest); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	if len(forest) != 3 {
		t.Fatalf("len(forest) = %d, want 3 (bg, ring, inner)", len(forest))
	}

	root := forest[0]
	ring := forest[root.Child]
	if !ring.Color {
		t.Fatal("ring must be foreground")
	}
	if ring.Child == -1 {
		t.Fatal("ring must have an inner child")
	}
	inner := forest[ring.Child]
	if inner.Color {
		t.Fatal("inner square must be background")
	}
	if inner.Sibling != -1 {
		t.Fatal("inner square must have no siblings")
	}
}

func TestBuildForestSideBySideSquares(t *testing.T) {
	w, h := 32, 16
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{2, 2, 8, 8, true},
		{20, 2, 26, 8, true},
	})
	gray := newFakeGray(w, h, 128)

	forest, err := BuildForest(bin, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if err := CheckInvariants(forest); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	if len(forest) != 3 {
		t.Fatalf("len(forest) = %d, want 3 (bg + two squares)", len(forest))
	}

	root := forest[0]
	count := 0
	for c := root.Child; c != -1; c = forest[c].Sibling {
		count++
		if !forest[c].Color {
			t.Error("both squares must be foreground")
		}
	}
	if count != 2 {
		t.Errorf("root has %d children, want 2", count)
	}
}

func TestBuildForestDeterministic(t *testing.T) {
	w, h := 24, 24
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{4, 4, 20, 20, true},
		{9, 9, 15, 15, false},
	})
	gray := newFakeGray(w, h, 128)

	a, err := BuildForest(bin, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	b, err := BuildForest(bin, gray, NewArena())
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("component count differs across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Area != b[i].Area || a[i].BBox != b[i].BBox || a[i].Color != b[i].Color {
			t.Errorf("component %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildForestAreaConservation(t *testing.T) {
	w, h := 16, 16
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{4, 4, 12, 12, true},
	})
	gray := newFakeGray(w, h, 128)

	forest, err := BuildForest(bin, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if got := Area(forest, 0); got != w*h {
		t.Errorf("total area = %d, want %d", got, w*h)
	}
}

// TestBuildForestCheckerboard exercises the degenerate flat topology: an
// 8x8 grid of 8-pixel cells on a 64x64 canvas, alternating color with no
// enclosing background ring. Under 4-connectivity, diagonal cells of the
// same color never touch, so every one of the 64 cells is its own leaf
// component: 32 foreground and 32 background, each of area 64. None of a
// cell's same-size neighbors encloses it, so every cell but the root
// attaches directly under the root (the cell containing pixel (0,0)),
// including the 31 other background cells that share the root's color.
func TestBuildForestCheckerboard(t *testing.T) {
	const cells, cell = 8, 8
	w, h := cells*cell, cells*cell
	b := newBitImage(w, h)
	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			v := (i+j)%2 != 0 // (0,0) is background, alternating from there.
			for y := j * cell; y < (j+1)*cell; y++ {
				for x := i * cell; x < (i+1)*cell; x++ {
					b.set(x, y, v)
				}
			}
		}
	}
	gray := newFakeGray(w, h, 128)

	forest, err := BuildForest(b, gray, nil)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if err := CheckInvariants(forest); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	if len(forest) != cells*cells {
		t.Fatalf("len(forest) = %d, want %d", len(forest), cells*cells)
	}

	var fg, bg, children int
	for i, c := range forest {
		if c.Area != cell*cell {
			t.Errorf("component %d area = %d, want %d", i, c.Area, cell*cell)
		}
		if c.Color {
			fg++
		} else {
			bg++
		}
		if i != 0 {
			children++
		}
		if i != 0 && c.Child != -1 {
			t.Errorf("component %d has a child, want a flat grid of leaves", i)
		}
	}
	if fg != 32 || bg != 32 {
		t.Fatalf("fg = %d, bg = %d, want 32 and 32", fg, bg)
	}

	count := 0
	for c := forest[0].Child; c != -1; c = forest[c].Sibling {
		count++
	}
	if count != children {
		t.Errorf("root has %d children, want %d", count, children)
	}
}

func TestArenaReuseAcrossCalls(t *testing.T) {
	arena := NewArena()
	w, h := 16, 16
	bin := rectBit(w, h, []struct {
		x0, y0, x1, y1 int
		v              bool
	}{
		{0, 0, w, h, false},
		{4, 4, 12, 12, true},
	})
	gray := newFakeGray(w, h, 128)

	for i := 0; i < 3; i++ {
		forest, err := BuildForest(bin, gray, arena)
		if err != nil {
			t.Fatalf("iteration %d: BuildForest: %v", i, err)
		}
		if err := CheckInvariants(forest); err != nil {
			t.Fatalf("iteration %d: CheckInvariants: %v", i, err)
		}
		if len(forest) != 2 {
			t.Fatalf("iteration %d: len(forest) = %d, want 2", i, len(forest))
		}
	}
}
