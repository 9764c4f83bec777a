package topology

import "fmt"

// Arena holds scratch buffers that BuildForest reuses across calls so that
// detecting fiducials in a video stream does not allocate a fresh w*h label
// grid and adjacency table on every frame. Callers share one Arena across
// sequential calls on the same goroutine; it is not safe for concurrent use.
type Arena struct {
	labels    []int
	adjacency map[[2]int]int
	adjBest   []int
	parentOf  []int
}

// NewArena constructs an empty, ready-to-use Arena.
func NewArena() *Arena {
	return &Arena{adjacency: make(map[[2]int]int)}
}

func (a *Arena) ensureLabels(n int) []int {
	if cap(a.labels) < n {
		a.labels = make([]int, n)
	} else {
		a.labels = a.labels[:n]
		for i := range a.labels {
			a.labels[i] = 0
		}
	}
	return a.labels
}

func (a *Arena) resetAdjacency() {
	if len(a.adjacency) > 0 {
		a.adjacency = make(map[[2]int]int)
	}
}

var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// BuildForest scans a binarized image and groups its pixels into connected
// components of alternating color, nested by spatial containment into a
// forest: the outermost background ring is always the root at index 0, and
// every other component's Child/Sibling fields link it to the forest the
// way spec's containment tree is consumed by the topo and lftag decoders.
//
// The scan itself is classic two-pass connected-component labeling via
// union-find (4-connectivity: a pixel joins its north and west neighbors'
// components when they share its color, and a union is recorded when north
// and west disagree on which component that is). Containment is then read
// off the labeled grid: for every boundary between two differently-colored
// components, the shared edge length is tallied, and each component's
// immediate parent is the opposite-color neighbor whose bbox actually
// contains it (ties broken by the longest shared border). A component with
// no opposite-color neighbor satisfying true containment attaches directly
// under the root; this is what happens to every cell of a checkerboard
// pattern, where neighboring cells are same-size and never enclose one
// another. See DESIGN.md for why this two-pass scheme replaces a streaming
// single-pass tree builder.
func BuildForest(bin *BitImage, gray GrayImage, arena *Arena) ([]FeatureVector, error) {
	if arena == nil {
		arena = NewArena()
	}
	w, h := bin.Width(), bin.Height()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("topology: empty image: %w", ErrInputDimension)
	}
	if gray.Width() != w || gray.Height() != h {
		return nil, fmt.Errorf("topology: binary image %dx%d and gray image %dx%d differ in size", w, h, gray.Width(), gray.Height())
	}

	labels := arena.ensureLabels(w * h)
	uf := newUnionFind()

	get := func(x, y int) (int, bool) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0, false
		}
		return labels[y*w+x], true
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bin.At(x, y)
			north, hasNorth := get(x, y-1)
			west, hasWest := get(x-1, y)
			sameNorth := hasNorth && north != 0 && bin.At(x, y-1) == c
			sameWest := hasWest && west != 0 && bin.At(x-1, y) == c

			var lbl int
			switch {
			case sameNorth && sameWest:
				lbl = uf.union(uf.find(north), uf.find(west))
			case sameNorth:
				lbl = uf.find(north)
			case sameWest:
				lbl = uf.find(west)
			default:
				lbl = uf.newLabel()
			}
			labels[y*w+x] = lbl
		}
	}

	arena.resetAdjacency()
	compact := make(map[int]int, len(uf.parent))
	var comps []FeatureVector

	finalLabel := func(prov int) int {
		root := uf.find(prov)
		id, ok := compact[root]
		if !ok {
			id = len(comps)
			compact[root] = id
			comps = append(comps, FeatureVector{Child: -1, LastChild: -1, Sibling: -1})
		}
		return id
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := finalLabel(labels[y*w+x])
			v := gray.At(x, y)
			c := bin.At(x, y)
			fv := &comps[id]
			if fv.Area == 0 {
				// First pixel visited for this component (placeholder just
				// created by finalLabel, Child/LastChild/Sibling still -1).
				*fv = newFeatureVector(x, y, v, c)
			} else {
				fv.addPixel(x, y, v)
			}

			for _, d := range neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if bin.At(nx, ny) == c {
					continue
				}
				nid := finalLabel(labels[ny*w+nx])
				arena.adjacency[[2]int{id, nid}]++
			}
		}
	}

	// Every image has pixel (0,0) forced to background by Binarize, so it is
	// always the first pixel labeled and always becomes component 0.
	const rootID = 0

	if cap(arena.adjBest) < len(comps) {
		arena.adjBest = make([]int, len(comps))
	} else {
		arena.adjBest = arena.adjBest[:len(comps)]
		for i := range arena.adjBest {
			arena.adjBest[i] = 0
		}
	}
	if cap(arena.parentOf) < len(comps) {
		arena.parentOf = make([]int, len(comps))
	} else {
		arena.parentOf = arena.parentOf[:len(comps)]
	}
	for i := range arena.parentOf {
		arena.parentOf[i] = -1
	}

	for key, cnt := range arena.adjacency {
		id, nid := key[0], key[1]
		if !comps[nid].BBox.Contains(comps[id].BBox) {
			// nid only touches id's border; it does not enclose it, so it
			// cannot be id's parent (e.g. neighboring checkerboard cells).
			continue
		}
		if cnt > arena.adjBest[id] {
			arena.adjBest[id] = cnt
			arena.parentOf[id] = nid
		}
	}

	for i := range comps {
		if i == rootID {
			continue
		}
		p := arena.parentOf[i]
		if p < 0 {
			p = rootID
		}
		if comps[p].Child == -1 {
			comps[p].Child = i
		} else {
			comps[comps[p].LastChild].Sibling = i
		}
		comps[p].LastChild = i
	}

	return comps, nil
}
