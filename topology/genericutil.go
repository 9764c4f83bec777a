package topology

import "golang.org/x/exp/constraints"

// MinOf and MaxOf back the bounding-box arithmetic in this package and are
// exported for the rest of the module (dots uses them to clamp its
// region of interest). The decoder packages use math.Min/math.Max and
// sort.Slice rather than these helpers.
func MinOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
