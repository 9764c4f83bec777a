package topotag

import (
	"errors"
	"math"
	"sort"

	"github.com/cocosip/go-fiducial/topology"
)

// ErrCandidateRejected is returned by Localize when a Root fails a
// geometric sanity check (wrong row/column count), per spec.md §7.
var ErrCandidateRejected = errors.New("topotag: candidate failed geometric sanity check")

// collinearTolerance bounds how far (in radians) a node's bearing from a
// row or column anchor may drift from the tag's reference direction and
// still count as part of that row/column.
const collinearTolerance = 0.1

type point struct{ x, y float64 }

func sub(a, b point) point    { return point{a.x - b.x, a.y - b.y} }
func dist(a, b point) float64 { return math.Hypot(a.x-b.x, a.y-b.y) }

func angleBetween(a, b point) float64 {
	na, nb := math.Hypot(a.x, a.y), math.Hypot(b.x, b.y)
	if na == 0 || nb == 0 {
		return 0
	}
	cos := (a.x*b.x + a.y*b.y) / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

func centroidOf(forest []topology.FeatureVector, idx int) point {
	x, y := forest[idx].Centroid()
	return point{x, y}
}

// Decoded is the geometric decoder's output: the bit pattern the tag
// encodes plus the node positions and corner indices, matching spec.md
// §6's DecodedTopoTag.
type Decoded struct {
	Data          uint64
	NodePos       [][2]float64
	TopLeftIdx    int
	TopRightIdx   int
	BottomLeftIdx int
	Class         Class
}

type scoredNode struct {
	idx  int
	pt   point
	data bool
}

// Localize runs the corner/orientation search and bitstring extraction of
// spec.md §4.6 over a decoded Root, grounded in
// original_source/src/decode.rs's DecodedTopotag::decode_topotag: find
// top-right by angle/distance from the baseline, orient top-left/
// bottom-left from it, find the left column by bearing from top-left,
// then read off each row in the direction of the top edge.
func Localize(forest []topology.FeatureVector, r Root) (Decoded, error) {
	d := r.Class.dimension()

	b0pt := centroidOf(forest, r.Baseline[0])
	b1pt := centroidOf(forest, r.Baseline[1])
	mid := point{(b0pt.x + b1pt.x) / 2, (b0pt.y + b1pt.y) / 2}

	nodes := make([]scoredNode, len(r.Normals))
	for i, n := range r.Normals {
		nodes[i] = scoredNode{idx: n.Idx, pt: centroidOf(forest, n.Idx), data: n.Data}
	}

	// Top-right: the Normal minimizing (|angle(b0-n,b1-n)|+0.02)/|mid-n|.
	trIdx, bestScore := -1, math.Inf(1)
	for i, n := range nodes {
		a := angleBetween(sub(b0pt, n.pt), sub(b1pt, n.pt))
		score := (math.Abs(a) + 0.02) / dist(mid, n.pt)
		if score < bestScore {
			bestScore, trIdx = score, i
		}
	}
	if trIdx < 0 {
		return Decoded{}, ErrCandidateRejected
	}
	trPt := nodes[trIdx].pt

	// Top-left is whichever baseline endpoint is farther from top-right;
	// the other is bottom-left.
	topLeftIdx, topLeftPt := r.Baseline[0], b0pt
	bottomLeftIdx, bottomLeftPt := r.Baseline[1], b1pt
	if dist(b1pt, trPt) > dist(b0pt, trPt) {
		topLeftIdx, topLeftPt = r.Baseline[1], b1pt
		bottomLeftIdx, bottomLeftPt = r.Baseline[0], b0pt
	}
	topVec := sub(trPt, topLeftPt)

	// Left column: normals whose angle(topVec, topLeft-n) is within
	// collinearTolerance of the maximum such angle, sorted by distance
	// from top-left.
	maxAngle := 0.0
	angles := make([]float64, len(nodes))
	for i, n := range nodes {
		a := angleBetween(topVec, sub(topLeftPt, n.pt))
		angles[i] = a
		if a > maxAngle {
			maxAngle = a
		}
	}

	used := make([]bool, len(nodes))
	var column []int
	for i := range nodes {
		if maxAngle-angles[i] <= collinearTolerance {
			column = append(column, i)
			used[i] = true
		}
	}
	sort.Slice(column, func(i, j int) bool {
		return dist(topLeftPt, nodes[column[i]].pt) < dist(topLeftPt, nodes[column[j]].pt)
	})
	if len(column) != d {
		return Decoded{}, ErrCandidateRejected
	}

	var bits []bool
	nodePos := []point{topLeftPt, trPt, bottomLeftPt}

	for _, ci := range column {
		anchor := nodes[ci].pt
		var row []int
		for i := range nodes {
			if used[i] {
				continue
			}
			a := angleBetween(topVec, sub(nodes[i].pt, anchor))
			if a <= collinearTolerance {
				row = append(row, i)
			}
		}
		sort.Slice(row, func(i, j int) bool {
			return dist(anchor, nodes[row[i]].pt) < dist(anchor, nodes[row[j]].pt)
		})

		// spec.md §9: the row's expected width is sometimes off by 2 in
		// the reference implementation; both are accepted here rather
		// than silently "fixed", per spec's "reproduce as written" rule.
		rowWidth := d - 1
		if len(row) != rowWidth && len(row) != rowWidth+2 {
			return Decoded{}, ErrCandidateRejected
		}

		bits = append(bits, nodes[ci].data)
		for _, ri := range row {
			used[ri] = true
			bits = append(bits, nodes[ri].data)
			nodePos = append(nodePos, nodes[ri].pt)
		}
	}

	var data uint64
	for _, bit := range bits {
		data <<= 1
		if bit {
			data |= 1
		}
	}

	flatPos := make([][2]float64, len(nodePos))
	for i, p := range nodePos {
		flatPos[i] = [2]float64{p.x, p.y}
	}

	return Decoded{
		Data:          data,
		NodePos:       flatPos,
		TopLeftIdx:    topLeftIdx,
		TopRightIdx:   nodes[trIdx].idx,
		BottomLeftIdx: bottomLeftIdx,
		Class:         r.Class,
	}, nil
}
