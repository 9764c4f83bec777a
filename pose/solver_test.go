package pose

import (
	"math"
	"testing"
)

func TestRodriguesRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, 0.5, 0.2},
		{0.1, 0.1, 0.1},
	}
	for _, rv := range cases {
		m := rodriguesToMatrix(rv)
		back := matrixToRodrigues(m)
		if vec3(rv).sub(vec3(back)).norm() > 1e-6 {
			t.Errorf("round trip %v -> matrix -> %v, too far apart", rv, back)
		}
	}
}

func TestRodriguesMatrixIsOrthonormal(t *testing.T) {
	m := rodriguesToMatrix([3]float64{0.4, -0.2, 0.1})
	cols := []vec3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
	for i, c := range cols {
		if math.Abs(c.norm()-1) > 1e-9 {
			t.Errorf("column %d not unit length: %v", i, c.norm())
		}
	}
	if math.Abs(cols[0].dot(cols[1])) > 1e-9 {
		t.Error("columns 0 and 1 not orthogonal")
	}
}

// project maps p through pose (R, tr) and the no-distortion intrinsics k;
// used to synthesize ground-truth correspondences for the DLT solver test.
func project(k Intrinsics, R [3][3]float64, tr [3]float64, p Point3) Point2 {
	cx := R[0][0]*p.X + R[0][1]*p.Y + R[0][2]*p.Z + tr[0]
	cy := R[1][0]*p.X + R[1][1]*p.Y + R[1][2]*p.Z + tr[1]
	cz := R[2][0]*p.X + R[2][1]*p.Y + R[2][2]*p.Z + tr[2]
	u, v := k.Uncalibrate(cx/cz, cy/cz)
	return Point2{X: u, Y: v}
}

func TestDLTSolverRecoversPlanarPose(t *testing.T) {
	k := Intrinsics{FocalX: 800, FocalY: 800, PrincipalX: 320, PrincipalY: 240}
	R := rodriguesToMatrix([3]float64{0.1, 0.2, 0.05})
	tr := [3]float64{5, -3, 400}

	world := []Point3{
		{X: 0, Y: 0, Z: 0},
		{X: 30, Y: 0, Z: 0},
		{X: 30, Y: 30, Z: 0},
		{X: 0, Y: 30, Z: 0},
		{X: 15, Y: 15, Z: 0},
	}
	image := make([]Point2, len(world))
	for i, p := range world {
		image[i] = project(k, R, tr, p)
	}

	corr := make([]Correspondence, len(world))
	for i := range world {
		corr[i] = Correspondence{World: world[i], Image: image[i]}
	}

	got, err := Solve(DLTSolver{}, corr, k)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	for i := 0; i < 3; i++ {
		if math.Abs(got.T[i]-tr[i]) > 1.0 {
			t.Errorf("T[%d] = %v, want ~%v", i, got.T[i], tr[i])
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if math.Abs(got.R[r][c]-R[r][c]) > 0.05 {
				t.Errorf("R[%d][%d] = %v, want ~%v", r, c, got.R[r][c], R[r][c])
			}
		}
	}
}

func TestSolveRejectsTooFewCorrespondences(t *testing.T) {
	k := Intrinsics{FocalX: 800, FocalY: 800}
	corr := []Correspondence{
		{World: Point3{0, 0, 0}, Image: Point2{0, 0}},
		{World: Point3{1, 0, 0}, Image: Point2{1, 0}},
	}
	if _, err := Solve(DLTSolver{}, corr, k); err != ErrTooFewCorrespondences {
		t.Errorf("err = %v, want ErrTooFewCorrespondences", err)
	}
}
