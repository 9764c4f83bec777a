package topotag

import "github.com/cocosip/go-fiducial/topology"

// speckleChildren returns idx's children whose area is large enough,
// relative to idx's own area, to be a structural node rather than
// binarization speckle (spec.md §4.4: area*30 > parent.area).
func speckleChildren(forest []topology.FeatureVector, idx int) []int {
	parent := forest[idx]
	var out []int
	for c := parent.Child; c != -1; c = forest[c].Sibling {
		if forest[c].Area*30 > parent.Area {
			out = append(out, c)
		}
	}
	return out
}

// classify inspects a background node idx against the Baseline/Normal
// patterns of spec.md §4.4.
func classify(forest []topology.FeatureVector, idx int) classification {
	children := speckleChildren(forest, idx)
	switch len(children) {
	case 0:
		return asNormal{idx: idx, data: false}
	case 1:
		if len(speckleChildren(forest, children[0])) == 0 {
			return asNormal{idx: idx, data: true}
		}
	case 2:
		a, b := children[0], children[1]
		if len(speckleChildren(forest, a)) == 0 && len(speckleChildren(forest, b)) == 0 {
			return asBaseline{a: a, b: b}
		}
	}
	return asNone{}
}

// Decode walks the containment forest looking for topo tag roots: a
// foreground node whose filtered child count matches a registered class,
// and whose children classify into exactly one Baseline and
// Class.NormalCount Normals. Matches are keyed by the root's bounding box.
func Decode(forest []topology.FeatureVector, root int, reg *Registry) map[topology.BBox]Root {
	out := make(map[topology.BBox]Root)
	if reg == nil {
		reg = NewDefaultRegistry()
	}
	var walk func(idx int)
	walk = func(idx int) {
		node := forest[idx]
		if !node.Color {
			// Background nodes are only inspected as children of a
			// foreground candidate; descend to find the next foreground
			// candidate instead.
			for c := node.Child; c != -1; c = forest[c].Sibling {
				walk(c)
			}
			return
		}

		children := speckleChildren(forest, idx)
		if class, ok := reg.Match(len(children)); ok {
			if r, ok := tryDecodeRoot(forest, idx, children, class); ok {
				out[node.BBox] = r
				return
			}
		}

		for c := node.Child; c != -1; c = forest[c].Sibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func tryDecodeRoot(forest []topology.FeatureVector, idx int, children []int, class Class) (Root, bool) {
	var baseline [2]int
	haveBaseline := false
	var normals []Normal

	for _, c := range children {
		switch v := classify(forest, c).(type) {
		case asBaseline:
			if haveBaseline {
				return Root{}, false
			}
			baseline = [2]int{v.a, v.b}
			haveBaseline = true
		case asNormal:
			normals = append(normals, Normal{Idx: v.idx, Data: v.data})
		case asNone:
			return Root{}, false
		}
	}

	if !haveBaseline || len(normals) != class.NormalCount() {
		return Root{}, false
	}

	return Root{
		BBox:     forest[idx].BBox,
		Class:    class,
		Baseline: baseline,
		Normals:  normals,
	}, true
}
