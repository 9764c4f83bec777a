package pose

import "math"

// rodriguesToMatrix converts an axis-angle rotation vector (the form a
// PnPSolver returns) to a rotation matrix, per spec.md §4.7.
func rodriguesToMatrix(r [3]float64) [3][3]float64 {
	theta := vec3(r).norm()
	if theta < 1e-12 {
		return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	k := vec3(r).scale(1 / theta)
	kx, ky, kz := k[0], k[1], k[2]

	c, s := math.Cos(theta), math.Sin(theta)
	one := 1 - c

	return [3][3]float64{
		{c + kx*kx*one, kx*ky*one - kz*s, kx*kz*one + ky*s},
		{ky*kx*one + kz*s, c + ky*ky*one, ky*kz*one - kx*s},
		{kz*kx*one - ky*s, kz*ky*one + kx*s, c + kz*kz*one},
	}
}

// matrixToRodrigues converts a rotation matrix back to an axis-angle
// vector, the inverse of rodriguesToMatrix. Used by DLTSolver, whose
// homography decomposition produces a matrix directly.
func matrixToRodrigues(m [3][3]float64) [3]float64 {
	trace := m[0][0] + m[1][1] + m[2][2]
	cosTheta := (trace - 1) / 2
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	theta := math.Acos(cosTheta)

	if theta < 1e-12 {
		return [3]float64{0, 0, 0}
	}
	if math.Pi-theta < 1e-6 {
		// Near-180-degree rotation: axis extraction via the standard
		// antisymmetric-part formula below is numerically unstable; fall
		// back to the largest diagonal entry.
		i := 0
		if m[1][1] > m[i][i] {
			i = 1
		}
		if m[2][2] > m[i][i] {
			i = 2
		}
		var axis vec3
		axis[i] = math.Sqrt(math.Max(0, (m[i][i]+1)/2))
		for j := 0; j < 3; j++ {
			if j != i {
				axis[j] = (m[i][j] + m[j][i]) / (4 * axis[i])
			}
		}
		return [3]float64(axis.normalized().scale(theta))
	}

	sinTheta := math.Sin(theta)
	axis := vec3{
		m[2][1] - m[1][2],
		m[0][2] - m[2][0],
		m[1][0] - m[0][1],
	}.scale(1 / (2 * sinTheta))
	return [3]float64(axis.scale(theta))
}
