package pose

// DLTSolver is the reference planar-PnP collaborator this package supplies
// by default so the detection pipeline is testable without an external
// vision library (spec.md §4: "a reference, dependency-light planar-PnP
// implementation is supplied as the package's default collaborator").
// Swapping in OpenCV's solvePnP(SOLVEPNP_IPPE) behind the same PnPSolver
// interface is a drop-in replacement.
type DLTSolver struct{}

// Solve implements PnPSolver via homography DLT: the world points (all
// Z==0) and their normalized image projections determine a planar
// homography, which is decomposed into a rotation and translation per
// Zhang's calibration method.
func (DLTSolver) Solve(world []Point3, image []Point2, k Intrinsics) (rvec, tvec [3]float64, ok bool) {
	if len(world) < 4 || len(world) != len(image) {
		return rvec, tvec, false
	}

	w := make([]vec2, len(world))
	im := make([]vec2, len(image))
	for i := range world {
		w[i] = vec2{world[i].X, world[i].Y}
		x, y := k.Calibrate(image[i].X, image[i].Y)
		im[i] = vec2{x, y}
	}

	h, ok := computeHomography(w, im)
	if !ok {
		return rvec, tvec, false
	}

	h1 := vec3{h[0][0], h[1][0], h[2][0]}
	h2 := vec3{h[0][1], h[1][1], h[2][1]}
	h3 := vec3{h[0][2], h[1][2], h[2][2]}

	n1, n2 := h1.norm(), h2.norm()
	if n1 < 1e-12 || n2 < 1e-12 {
		return rvec, tvec, false
	}
	lambda := 2 / (n1 + n2)

	r1 := h1.scale(1 / n1)
	r2raw := h2.scale(lambda)
	r2 := r2raw.sub(r1.scale(r2raw.dot(r1))).normalized()
	r3 := r1.cross(r2)
	t := h3.scale(lambda)

	if t[2] < 0 {
		r1, r2, r3 = r1.scale(-1), r2.scale(-1), r3
		t = t.scale(-1)
	}

	m := [3][3]float64{
		{r1[0], r2[0], r3[0]},
		{r1[1], r2[1], r3[1]},
		{r1[2], r2[2], r3[2]},
	}
	return matrixToRodrigues(m), [3]float64(t), true
}
