// Package fiducial detects topo and lftag planar fiducial markers in a
// grayscale image and recovers their identity and (for lftag) 6-DOF pose.
// DetectTopo and DetectLF are the package's only entry points; everything
// else lives in topology, topotag, lftag, and pose as swappable internal
// collaborators.
package fiducial

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cocosip/go-fiducial/dots"
	"github.com/cocosip/go-fiducial/lftag"
	"github.com/cocosip/go-fiducial/pose"
	"github.com/cocosip/go-fiducial/topology"
	"github.com/cocosip/go-fiducial/topotag"
)

// Intrinsics is the pinhole camera model DetectTopo/DetectLF need to turn
// image-plane correspondences into a pose (lftag only; topo tags decode
// without it, per spec.md §6).
type Intrinsics = pose.Intrinsics

// DecodedTopoTag is one decoded topo tag, matching spec.md §6's
// DecodedTopoTag field-for-field.
type DecodedTopoTag struct {
	Data          uint64
	NodePos       [][2]float64
	TopLeftIdx    int
	TopRightIdx   int
	BottomLeftIdx int
	Class         topotag.Class
}

// DecodedLFTag is one decoded lftag, matching spec.md §6's DecodedLFTag
// field-for-field.
type DecodedLFTag struct {
	Data            uint64
	NodePos         [][2]float64
	ExpectedNodePos [][2]float64
	Class           lftag.Class
	InitialPose     pose.Pose
	FinalPose       pose.Pose
}

// DetectTopo finds and decodes every topo tag in img. No candidate error
// (ErrCandidateRejected) ever reaches the caller: it is logged at Debug
// level (and passed to WithRejectionLog, if set) and the candidate is
// dropped, per spec.md's "no error is fatal" rule. Only ErrInputDimension,
// checked before any scan, is returned.
func DetectTopo(img GrayImage, k Intrinsics, opts ...Option) ([]DecodedTopoTag, error) {
	c := newConfig()
	for _, o := range opts {
		o(c)
	}
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "op", "DetectTopo")

	_, forest, err := scan(img, topology.ModeTopo, c)
	if err != nil {
		err = toPackageError(err)
		logger.Debug("input rejected", "err", err)
		return nil, err
	}

	reg := topotag.NewDefaultRegistry()
	if len(c.topoClasses) > 0 {
		reg = topotag.NewRegistry(c.topoClasses...)
	}
	roots := topotag.Decode(forest, 0, reg)

	out := make([]DecodedTopoTag, 0, len(roots))
	for _, root := range roots {
		decoded, err := topotag.Localize(forest, root)
		if err != nil {
			logger.Debug("candidate rejected", "class", root.Class, "err", err)
			c.reject(fmt.Errorf("%w: %w", ErrCandidateRejected, err))
			continue
		}
		logger.Debug("tag accepted", "class", decoded.Class, "data", decoded.Data)
		out = append(out, DecodedTopoTag{
			Data:          decoded.Data,
			NodePos:       decoded.NodePos,
			TopLeftIdx:    decoded.TopLeftIdx,
			TopRightIdx:   decoded.TopRightIdx,
			BottomLeftIdx: decoded.BottomLeftIdx,
			Class:         decoded.Class,
		})
	}
	return out, nil
}

// DetectLF finds and decodes every lftag in img, recovering a 6-DOF pose
// for each via k and the configured PnPSolver (pose.DLTSolver by default).
func DetectLF(img GrayImage, k Intrinsics, opts ...Option) ([]DecodedLFTag, error) {
	c := newConfig()
	for _, o := range opts {
		o(c)
	}
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "op", "DetectLF")

	bin, forest, err := scan(img, topology.ModeLF, c)
	if err != nil {
		err = toPackageError(err)
		logger.Debug("input rejected", "err", err)
		return nil, err
	}

	reg := lftag.NewDefaultRegistry()
	if len(c.lfClasses) > 0 {
		reg = lftag.NewRegistry(c.lfClasses...)
	}
	roots := lftag.Decode(forest, 0, reg)

	out := make([]DecodedLFTag, 0, len(roots))
	for _, root := range roots {
		for _, idx := range root.Normals {
			if err := dots.Recover(&forest[idx], img, bin); err != nil {
				logger.Debug("dot recovery failed", "idx", idx, "err", err)
			}
		}

		decoded, err := lftag.Localize(forest, img, root, k, c.solver)
		if err != nil {
			logger.Debug("candidate rejected", "class", root.Class, "err", err)
			c.reject(fmt.Errorf("%w: %w", ErrCandidateRejected, err))
			continue
		}
		logger.Debug("tag accepted", "class", decoded.Class, "data", decoded.Data)
		out = append(out, DecodedLFTag{
			Data:            decoded.Data,
			NodePos:         decoded.NodePos,
			ExpectedNodePos: decoded.ExpectedPos,
			Class:           decoded.Class,
			InitialPose:     decoded.InitialPose,
			FinalPose:       decoded.FinalPose,
		})
	}
	return out, nil
}

// scan runs the shared Binarize -> BuildForest prefix of both entry
// points, applying a caller-supplied hard_lo override and arena if set.
func scan(img GrayImage, mode topology.BinarizeMode, c *config) (*topology.BitImage, []topology.FeatureVector, error) {
	var bin *topology.BitImage
	var err error
	if c.binarizeHardLo != nil {
		bin, err = topology.BinarizeWithHardLo(img, *c.binarizeHardLo)
	} else {
		bin, err = topology.Binarize(img, mode)
	}
	if err != nil {
		return nil, nil, err
	}

	arena := c.arena
	if arena == nil {
		arena = topology.NewArena()
	}
	forest, err := topology.BuildForest(bin, img, arena)
	if err != nil {
		return nil, nil, err
	}
	return bin, forest, nil
}

// toPackageError translates a topology-level ErrInputDimension into this
// package's own sentinel, so callers of DetectTopo/DetectLF only ever see
// errors defined in this package's error set (spec.md §7).
func toPackageError(err error) error {
	if errors.Is(err, topology.ErrInputDimension) {
		return ErrInputDimension
	}
	return err
}

