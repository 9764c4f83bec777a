package pose

// homography is a 3x3 planar mapping with the scale gauge h[2][2] == 1.
type homography [3][3]float64

// computeHomography fits the homography taking each correspondence's
// world (X,Y) to its normalized-camera-plane (x,y) via least-squares DLT,
// fixing the scale gauge at h33=1. Needs at least 4 correspondences.
func computeHomography(world []vec2, image []vec2) (homography, bool) {
	n := len(world)
	a := make([][]float64, 2*n)
	b := make([]float64, 2*n)

	for i := 0; i < n; i++ {
		X, Y := world[i][0], world[i][1]
		x, y := image[i][0], image[i][1]

		a[2*i] = []float64{X, Y, 1, 0, 0, 0, -x * X, -x * Y}
		b[2*i] = x
		a[2*i+1] = []float64{0, 0, 0, X, Y, 1, -y * X, -y * Y}
		b[2*i+1] = y
	}

	ata, atb := normalEquations(a, b)
	h, ok := solveLinear(ata, atb)
	if !ok {
		return homography{}, false
	}
	return homography{
		{h[0], h[1], h[2]},
		{h[3], h[4], h[5]},
		{h[6], h[7], 1},
	}, true
}

type vec2 [2]float64
