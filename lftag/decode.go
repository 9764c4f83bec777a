package lftag

import "github.com/cocosip/go-fiducial/topology"

// dotFilterChildren returns idx's children passing the loose "small dot"
// area filter (spec.md §4.5: area*500 > parent.area), candidates for data
// dots regardless of whether they are leaves.
func dotFilterChildren(forest []topology.FeatureVector, idx int) []int {
	parent := forest[idx]
	var out []int
	for c := parent.Child; c != -1; c = forest[c].Sibling {
		if forest[c].Area*500 > parent.Area {
			out = append(out, c)
		}
	}
	return out
}

// StructuralChildren returns idx's children passing the strict "large
// structural region" area filter (spec.md §4.5: area*2 > parent.area),
// i.e. children holding more than half of the parent's area, such as a
// tag's inner quadrilateral. It is exported; neither Decode nor Localize
// calls it.
func StructuralChildren(forest []topology.FeatureVector, idx int) []int {
	parent := forest[idx]
	var out []int
	for c := parent.Child; c != -1; c = forest[c].Sibling {
		if forest[c].Area*2 > parent.Area {
			out = append(out, c)
		}
	}
	return out
}

// Decode walks the containment forest looking for lftag roots: a
// foreground node whose count of area-filtered children falls within
// [DataDotCount, DataDotCount+3] for some registered class. Matches are
// keyed by the root's bounding box.
func Decode(forest []topology.FeatureVector, root int, reg *Registry) map[topology.BBox]Root {
	out := make(map[topology.BBox]Root)
	if reg == nil {
		reg = NewDefaultRegistry()
	}

	var walk func(idx int)
	walk = func(idx int) {
		node := forest[idx]
		if node.Color {
			dots := dotFilterChildren(forest, idx)
			if class, ok := reg.MatchDotCount(len(dots)); ok {
				out[node.BBox] = Root{
					BBox:    node.BBox,
					Class:   class,
					BG:      idx,
					Normals: dots,
				}
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
