package fiducial

import "errors"

// Sentinel errors, grounded in the teacher's codec/errors.go
// (var Err... = errors.New(...), wrapped with %w for errors.Is).
var (
	// ErrInputDimension aborts detection before any scan: width or height
	// is not a multiple of 8.
	ErrInputDimension = errors.New("fiducial: width or height not a multiple of 8")

	// ErrPnPFailure means the pose solver found no solution for a
	// candidate. DetectTopo/DetectLF neither return it nor pass it to
	// WithRejectionLog: a candidate whose pose cannot be solved is dropped
	// and reported as ErrCandidateRejected.
	ErrPnPFailure = errors.New("fiducial: pose solver found no solution")

	// ErrCandidateRejected means a candidate failed a geometric sanity
	// check (wrong row/column count, collinearity, area ratio, residual
	// threshold). Never returned to the caller; recorded via
	// WithRejectionLog and the candidate is dropped.
	ErrCandidateRejected = errors.New("fiducial: candidate failed geometric sanity check")
)
