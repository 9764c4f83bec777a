// Package pose converts 2D/3D point correspondences into a 6-DOF camera
// pose via an external PnP collaborator, and supplies a reference planar
// PnP solver so the pipeline is testable without a third-party vision
// library.
package pose

// Point2 is a pixel-plane point.
type Point2 struct{ X, Y float64 }

// Point3 is a world-frame point; every correspondence this package solves
// for has Z == 0 (planar fiducials).
type Point3 struct{ X, Y, Z float64 }

// Correspondence pairs one world point with its observed image point.
type Correspondence struct {
	World Point3
	Image Point2
}

// Intrinsics is the pinhole camera calibration spec.md §6 specifies.
type Intrinsics struct {
	FocalX, FocalY, PrincipalX, PrincipalY, Skew float64
}

// Calibrate maps a pixel coordinate to the normalized camera plane.
func (k Intrinsics) Calibrate(u, v float64) (x, y float64) {
	y = (v - k.PrincipalY) / k.FocalY
	x = (u - k.PrincipalX - k.Skew*y) / k.FocalX
	return x, y
}

// Uncalibrate maps a normalized camera-plane point back to pixels.
func (k Intrinsics) Uncalibrate(x, y float64) (u, v float64) {
	v = y*k.FocalY + k.PrincipalY
	u = x*k.FocalX + k.Skew*y + k.PrincipalX
	return u, v
}

// PinholeModel is the external pinhole collaborator from spec.md §6: a
// caller's own lens/projection model. Nothing in this package consumes
// it; Solve, PnPSolver and DLTSolver take Intrinsics.
type PinholeModel interface {
	Calibrate(u, v float64) (x, y float64)
	Uncalibrate(x, y float64) (u, v float64)
	Transform(p Point3) Point3
}

// PnPSolver is the external planar-PnP collaborator from spec.md §6/§4.7.
// Implementations return a Rodrigues rotation vector and translation, and
// report ok=false when no solution was found for the given points.
type PnPSolver interface {
	Solve(world []Point3, image []Point2, k Intrinsics) (rvec, tvec [3]float64, ok bool)
}

// Pose is a solved 6-DOF camera pose: rotation matrix and translation
// mapping a world point into the camera frame.
type Pose struct {
	R [3][3]float64
	T [3]float64
}
