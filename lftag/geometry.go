package lftag

import (
	"errors"
	"math"
	"sort"

	"github.com/cocosip/go-fiducial/pose"
	"github.com/cocosip/go-fiducial/topology"
)

// ErrCandidateRejected is returned by Localize when a Root fails a
// geometric sanity check: too few dots, inconsistent corner brightness,
// excessive collinearity, or a reprojection score above the class's
// threshold.
var ErrCandidateRejected = errors.New("lftag: candidate failed geometric sanity check")

type dot struct {
	idx  int
	x, y float64
	zom  float64
	area int
}

// Decoded is the geometric decoder's output, matching spec.md §6's
// DecodedLFTag.
type Decoded struct {
	Data        uint64
	Class       Class
	NodePos     [][2]float64
	ExpectedPos [][2]float64
	InitialPose pose.Pose
	FinalPose   pose.Pose
}

// Localize runs the corner search, orientation-hypothesis search, and
// pose refinement of spec.md §4.6, grounded in
// original_source/src/decode.rs's DecodedLFTag::decode_lftag and
// original_source/src/localize.rs's gradient-weighted scoring.
func Localize(forest []topology.FeatureVector, gray topology.GrayImage, r Root, k pose.Intrinsics, solver pose.PnPSolver) (Decoded, error) {
	if len(r.Normals) < 4 {
		return Decoded{}, ErrCandidateRejected
	}

	dots := make([]dot, len(r.Normals))
	for i, idx := range r.Normals {
		fv := forest[idx]
		x, y := fv.Centroid()
		dots[i] = dot{idx: idx, x: x, y: y, zom: fv.ZOM, area: fv.Area}
	}

	strongest := append([]dot(nil), dots...)
	sort.Slice(strongest, func(i, j int) bool {
		return strongest[i].zom*float64(strongest[i].area) > strongest[j].zom*float64(strongest[j].area)
	})
	if len(strongest) > 4 {
		strongest = strongest[:4]
	}
	if len(strongest) < 4 {
		return Decoded{}, ErrCandidateRejected
	}

	zmax, zmin := strongest[0].zom, strongest[0].zom
	for _, d := range strongest {
		zmax = math.Max(zmax, d.zom)
		zmin = math.Min(zmin, d.zom)
	}
	if zmin <= 0 || zmax/zmin > 5 {
		return Decoded{}, ErrCandidateRejected
	}

	corners := quadCorners(strongest)

	if linearFitResidual(dots) < 20 {
		return Decoded{}, ErrCandidateRejected
	}

	side := r.Class.Side()
	worldCorners := []pose.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: side, Y: 0, Z: 0},
		{X: side, Y: side, Z: 0},
		{X: 0, Y: side, Z: 0},
	}
	expected := dataDotWorldPositions(r.Class)

	type hypothesis struct {
		rotation  int
		score     float64
		ip        pose.Pose
		matched   []int     // forest index matched per expected dot, in expected order
		matchDist []float64 // image-space distance of that match, in expected order
	}

	best := hypothesis{score: math.Inf(1)}
	for rot := 0; rot < 4; rot++ {
		ordered := rotateCorners(corners, rot)
		corr := make([]pose.Correspondence, 4)
		for i := range ordered {
			corr[i] = pose.Correspondence{World: worldCorners[i], Image: pose.Point2{X: ordered[i].x, Y: ordered[i].y}}
		}
		p, err := pose.Solve(solver, corr, k)
		if err != nil {
			continue
		}

		matched := make([]int, len(expected))
		matchDist := make([]float64, len(expected))
		var sumSq float64
		for i, wp := range expected {
			px, py := projectToImage(p, k, wp)
			bestJ, bestD := -1, math.Inf(1)
			for j, d := range dots {
				dd := math.Hypot(d.x-px, d.y-py)
				if dd < bestD {
					bestD, bestJ = dd, j
				}
			}
			matched[i] = dots[bestJ].idx
			matchDist[i] = bestD
			sumSq += bestD * bestD
		}

		grad := meanGradientAlongEdges(gray, cornersToInt(ordered))
		if grad < 1e-6 {
			grad = 1e-6
		}
		score := sumSq / grad
		if score < best.score {
			best = hypothesis{rotation: rot, score: score, ip: p, matched: matched, matchDist: matchDist}
		}
	}
	if math.IsInf(best.score, 1) {
		return Decoded{}, ErrCandidateRejected
	}

	bgArea := forest[r.BG].Area
	threshold := 5e-4
	if r.Class.height() >= 4 {
		threshold = 1e-3
	}
	if best.score/math.Sqrt(float64(bgArea)) > threshold {
		return Decoded{}, ErrCandidateRejected
	}

	finalCorr := make([]pose.Correspondence, 0, 4+len(expected))
	ordered := rotateCorners(corners, best.rotation)
	for i := range ordered {
		finalCorr = append(finalCorr, pose.Correspondence{World: worldCorners[i], Image: pose.Point2{X: ordered[i].x, Y: ordered[i].y}})
	}
	for i, idx := range best.matched {
		fv := forest[idx]
		x, y := fv.Centroid()
		finalCorr = append(finalCorr, pose.Correspondence{World: expected[i], Image: pose.Point2{X: x, Y: y}})
	}
	finalPose, err := pose.Solve(solver, finalCorr, k)
	if err != nil {
		finalPose = best.ip
	}

	nodePos := make([][2]float64, len(best.matched))
	for i, idx := range best.matched {
		x, y := forest[idx].Centroid()
		nodePos[i] = [2]float64{x, y}
	}
	expectedPos := make([][2]float64, len(expected))
	for i, wp := range expected {
		expectedPos[i] = [2]float64{wp.X, wp.Y}
	}

	// Data is a presence bitmask over the expected grid positions, MSB
	// first: bit i is 1 when a dot was actually matched within half a
	// grid cell of expected position i, 0 when the nearest dot was too
	// far away to trust (an apparently-missing data dot). This is an
	// interpretive reading of spec.md's DecodedLFTag.data: the dot grid
	// itself carries identity only through which cells are populated, so
	// presence/absence per cell is the natural bit source. See DESIGN.md.
	// matchDist is in pixels, so the cell size is measured in the image by
	// projecting one grid step at the tag origin through the initial pose.
	cell := r.Class.Side() / float64(r.Class.height()+1)
	ax, ay := projectToImage(best.ip, k, pose.Point3{})
	bx, by := projectToImage(best.ip, k, pose.Point3{X: cell})
	presenceThreshold := math.Hypot(bx-ax, by-ay) / 2
	var data uint64
	for _, d := range best.matchDist {
		data <<= 1
		if d <= presenceThreshold {
			data |= 1
		}
	}

	return Decoded{
		Data:        data,
		Class:       r.Class,
		NodePos:     nodePos,
		ExpectedPos: expectedPos,
		InitialPose: best.ip,
		FinalPose:   finalPose,
	}, nil
}

// quadCorners picks the four extremal dots by a standard sum/difference
// heuristic (grounded in spec.md's get_corner_point ranking, simplified
// to a closed-form corner rule since the four strongest dots are already
// known to be near the tag's corners).
func quadCorners(d []dot) []dot {
	out := make([]dot, 4)
	best := [4]float64{math.Inf(1), math.Inf(-1), math.Inf(-1), math.Inf(1)}
	for _, p := range d {
		sum, diff := p.x+p.y, p.x-p.y
		if sum < best[0] {
			best[0], out[0] = sum, p
		}
		if diff > best[1] {
			best[1], out[1] = diff, p
		}
		if sum > best[2] {
			best[2], out[2] = sum, p
		}
		if diff < best[3] {
			best[3], out[3] = diff, p
		}
	}
	return out // top-left, top-right, bottom-right, bottom-left
}

func rotateCorners(c []dot, rot int) []dot {
	out := make([]dot, len(c))
	for i := range c {
		out[i] = c[(i+rot)%len(c)]
	}
	return out
}

func cornersToInt(c []dot) [4][2]int {
	var out [4][2]int
	for i, p := range c {
		out[i] = [2]int{int(p.x), int(p.y)}
	}
	return out
}

func projectToImage(p pose.Pose, k pose.Intrinsics, wp pose.Point3) (float64, float64) {
	cx := p.R[0][0]*wp.X + p.R[0][1]*wp.Y + p.R[0][2]*wp.Z + p.T[0]
	cy := p.R[1][0]*wp.X + p.R[1][1]*wp.Y + p.R[1][2]*wp.Z + p.T[1]
	cz := p.R[2][0]*wp.X + p.R[2][1]*wp.Y + p.R[2][2]*wp.Z + p.T[2]
	if cz == 0 {
		cz = 1e-9
	}
	return k.Uncalibrate(cx/cz, cy/cz)
}

// linearFitResidual fits a line through all dot centroids via total
// least squares and returns the residual sum of squared perpendicular
// distances. A residual below 20 means the dots are nearly collinear: a
// spurious candidate, not a real tag.
func linearFitResidual(dots []dot) float64 {
	var mx, my float64
	for _, d := range dots {
		mx += d.x
		my += d.y
	}
	n := float64(len(dots))
	mx /= n
	my /= n

	var sxx, syy, sxy float64
	for _, d := range dots {
		dx, dy := d.x-mx, d.y-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	// Principal direction via the 2x2 covariance matrix's eigen-angle.
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	nx, ny := -math.Sin(theta), math.Cos(theta) // unit normal to the fit line

	var residual float64
	for _, d := range dots {
		dx, dy := d.x-mx, d.y-my
		perp := dx*nx + dy*ny
		residual += perp * perp
	}
	return residual
}

// dataDotWorldPositions returns the ideal world-frame positions of a
// class's data dots on its (height+1)x(height+1) grid, interior to the
// tag's four corners.
func dataDotWorldPositions(c Class) []pose.Point3 {
	h := c.height()
	side := c.Side()
	cell := side / float64(h+1)

	var out []pose.Point3
	for row := 1; row <= h; row++ {
		for col := 1; col <= h; col++ {
			out = append(out, pose.Point3{X: float64(col) * cell, Y: float64(row) * cell, Z: 0})
			if len(out) == c.DataDotCount() {
				return out
			}
		}
	}
	return out
}
