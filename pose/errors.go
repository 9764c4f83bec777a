package pose

import "errors"

// ErrNoSolution is returned by Solve when the underlying PnPSolver reports
// ok=false for the given correspondences.
var ErrNoSolution = errors.New("pose: solver found no solution")

// ErrTooFewCorrespondences is returned when fewer than 4 correspondences
// are supplied; a planar homography is underdetermined below that.
var ErrTooFewCorrespondences = errors.New("pose: need at least 4 correspondences")
