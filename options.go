package fiducial

import (
	"log/slog"

	"github.com/cocosip/go-fiducial/lftag"
	"github.com/cocosip/go-fiducial/pose"
	"github.com/cocosip/go-fiducial/topology"
	"github.com/cocosip/go-fiducial/topotag"
)

// config collects the functional options into the settings DetectTopo and
// DetectLF actually consume. Grounded in the teacher's
// codec.Options/Validate() pattern (codec/codec.go), generalized to
// closures: see DESIGN.md for why a Validate() method has nothing to
// validate here and the closure form fits better.
type config struct {
	binarizeHardLo *int
	arena          *topology.Arena
	logger         *slog.Logger
	rejectionLog   func(error)
	topoClasses    []topotag.Class
	lfClasses      []lftag.Class
	solver         pose.PnPSolver
}

func newConfig() *config {
	return &config{
		logger: slog.Default(),
		solver: pose.DLTSolver{},
	}
}

// Option configures a DetectTopo or DetectLF call.
type Option func(*config)

// WithBinarizeHardLo overrides the binarizer's hard_lo saturation/shadow
// clamp instead of the per-mode default (10 for lftag, 50 for topo).
func WithBinarizeHardLo(v int) Option {
	return func(c *config) { c.binarizeHardLo = &v }
}

// WithArena supplies a caller-owned topology.Arena so a video-stream
// caller amortizes the topology builder's scratch allocations across
// frames instead of allocating a fresh one per call.
func WithArena(a *topology.Arena) Option {
	return func(c *config) { c.arena = a }
}

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRejectionLog registers a hook called once per rejected candidate
// with the reason it was dropped: an error wrapping ErrCandidateRejected
// and the decoder package's own rejection error. ErrPnPFailure is not
// passed; a candidate whose pose cannot be solved is reported as
// ErrCandidateRejected.
func WithRejectionLog(fn func(error)) Option {
	return func(c *config) { c.rejectionLog = fn }
}

// WithClasses restricts DetectTopo's search to the given topo classes.
func WithClasses(classes ...topotag.Class) Option {
	return func(c *config) { c.topoClasses = classes }
}

// WithLFClasses restricts DetectLF's search to the given lftag classes.
func WithLFClasses(classes ...lftag.Class) Option {
	return func(c *config) { c.lfClasses = classes }
}

// WithPnPSolver overrides the default pose.DLTSolver reference
// collaborator, e.g. to plug in a binding over OpenCV's
// solvePnP(SOLVEPNP_IPPE).
func WithPnPSolver(s pose.PnPSolver) Option {
	return func(c *config) { c.solver = s }
}

func (c *config) reject(err error) {
	if c.rejectionLog != nil {
		c.rejectionLog(err)
	}
}
