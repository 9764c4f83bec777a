package topotag

import "github.com/cocosip/go-fiducial/topology"

// classification is the sealed result of inspecting one background node
// as a candidate Baseline or Normal (spec.md §4.4). The unexported marker
// method keeps the set of implementations closed to this package, Go's
// nearest equivalent to a tagged union with exactly these variants.
type classification interface {
	isClassification()
}

// asBaseline means the node's two filtered children, neither of which has
// filtered children of its own, form the tag's orientation baseline.
type asBaseline struct {
	a, b int // forest indices of the two baseline endpoint nodes
}

// asNormal means the node matched the shape of a data-bearing node; Data
// is its decoded bit.
type asNormal struct {
	idx  int // forest index of the node itself
	data bool
}

// asNone means the node matched neither pattern; the caller should
// recurse into its children looking for a root further down instead of
// treating this node as part of a tag.
type asNone struct{}

func (asBaseline) isClassification() {}
func (asNormal) isClassification()   {}
func (asNone) isClassification()     {}

// Normal is one decoded data bit of a matched tag, keeping the forest
// index so the geometric decoder can read back its centroid.
type Normal struct {
	Idx  int
	Data bool
}

// Root is an identified topo tag candidate: a foreground component whose
// filtered children decode to exactly one Baseline pair and Class's
// NormalCount Normals.
type Root struct {
	BBox     topology.BBox
	Class    Class
	Baseline [2]int // forest indices of the two baseline nodes
	Normals  []Normal
}
