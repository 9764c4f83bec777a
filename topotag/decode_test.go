package topotag

import (
	"testing"

	"github.com/cocosip/go-fiducial/topology"
)

func leaf(color bool, area int) topology.FeatureVector {
	return topology.FeatureVector{
		Area: area, Color: color, Child: -1, LastChild: -1, Sibling: -1,
	}
}

// buildClass3x3Forest constructs a minimal synthetic forest matching
// Class3x3: a root, one foreground tag body, 8 background children (1
// baseline container + 7 normals), and the baseline container's own 2
// foreground leaf children.
func buildClass3x3Forest() []topology.FeatureVector {
	f := make([]topology.FeatureVector, 12)
	f[0] = topology.FeatureVector{Area: 10000, Color: false, Child: 1, LastChild: 1, Sibling: -1}
	f[1] = topology.FeatureVector{Area: 1000, Color: true, Child: 2, LastChild: 9, Sibling: -1}

	// background children 2..9 (8 slots: node 2 is the baseline container, 3..9 are the 7 normals)
	for i := 2; i <= 9; i++ {
		f[i] = topology.FeatureVector{Area: 100, Color: false, Child: -1, LastChild: -1, Sibling: -1}
	}
	for i := 2; i < 9; i++ {
		f[i].Sibling = i + 1
	}
	f[9].Sibling = -1

	// node 2 becomes the baseline container: two foreground leaf children.
	f[2].Child, f[2].LastChild = 10, 11
	f[10] = leaf(true, 50)
	f[11] = leaf(true, 50)
	f[10].Sibling = 11
	f[11].Sibling = -1

	return f
}

func TestDecodeFindsBaselineAndNormals(t *testing.T) {
	forest := buildClass3x3Forest()
	reg := NewDefaultRegistry()

	roots := Decode(forest, 0, reg)
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	for _, r := range roots {
		if r.Class != Class3x3 {
			t.Errorf("Class = %v, want Class3x3", r.Class)
		}
		if len(r.Normals) != 7 {
			t.Errorf("len(Normals) = %d, want 7", len(r.Normals))
		}
		if r.Baseline[0] != 10 || r.Baseline[1] != 11 {
			t.Errorf("Baseline = %v, want [10 11]", r.Baseline)
		}
	}
}

func TestDecodeRejectsWrongChildCount(t *testing.T) {
	forest := buildClass3x3Forest()
	// Drop the last normal child so the count no longer matches any class.
	forest[8].Sibling = -1

	reg := NewDefaultRegistry()
	roots := Decode(forest, 0, reg)
	if len(roots) != 0 {
		t.Fatalf("len(roots) = %d, want 0 for malformed child count", len(roots))
	}
}

func TestSpeckleChildrenFiltersSmallArea(t *testing.T) {
	forest := []topology.FeatureVector{
		{Area: 1000, Color: true, Child: 1, LastChild: 2, Sibling: -1},
		{Area: 1, Color: false, Child: -1, Sibling: 2},  // speckle: 1*30 !> 1000
		{Area: 500, Color: false, Child: -1, Sibling: -1}, // structural: 500*30 > 1000
	}
	got := speckleChildren(forest, 0)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("speckleChildren = %v, want [2]", got)
	}
}
