package pose

// Solve converts a set of world/image correspondences into a 6-DOF pose
// via the given collaborator, per spec.md §4.7: call the solver, then
// convert its rotation-vector output to a rotation matrix via Rodrigues'
// formula. Used both for initial hypothesis scoring and for the final
// refined pose.
func Solve(solver PnPSolver, corr []Correspondence, k Intrinsics) (Pose, error) {
	if len(corr) < 4 {
		return Pose{}, ErrTooFewCorrespondences
	}

	world := make([]Point3, len(corr))
	image := make([]Point2, len(corr))
	for i, c := range corr {
		world[i] = c.World
		image[i] = c.Image
	}

	rvec, tvec, ok := solver.Solve(world, image, k)
	if !ok {
		return Pose{}, ErrNoSolution
	}

	return Pose{R: rodriguesToMatrix(rvec), T: tvec}, nil
}
