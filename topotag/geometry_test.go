package topotag

import (
	"testing"

	"github.com/cocosip/go-fiducial/topology"
)

func fv(x, y float64) topology.FeatureVector {
	return topology.FeatureVector{
		FOM: [2]float64{x, y},
		ZOM: 1,
	}
}

func TestLocalizeRejectsWrongColumnCount(t *testing.T) {
	// Only 2 normals total: far too few to form a 3-tall column for
	// Class3x3 (needs 7 normals, column height 3).
	forest := []topology.FeatureVector{
		fv(0, 0),  // baseline endpoint 0
		fv(0, 20), // baseline endpoint 1
		fv(20, 10),
		fv(10, 5),
	}
	root := Root{
		Class:    Class3x3,
		Baseline: [2]int{0, 1},
		Normals: []Normal{
			{Idx: 2, Data: true},
			{Idx: 3, Data: false},
		},
	}
	_, err := Localize(forest, root)
	if err != ErrCandidateRejected {
		t.Fatalf("err = %v, want ErrCandidateRejected", err)
	}
}

func TestAngleBetweenOrthogonal(t *testing.T) {
	a := angleBetween(point{1, 0}, point{0, 1})
	if a < 1.5 || a > 1.6 {
		t.Errorf("angleBetween of orthogonal vectors = %v, want ~pi/2", a)
	}
}

func TestAngleBetweenParallel(t *testing.T) {
	a := angleBetween(point{2, 0}, point{5, 0})
	if a > 1e-9 {
		t.Errorf("angleBetween of parallel vectors = %v, want 0", a)
	}
}
