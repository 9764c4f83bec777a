package topology

import "fmt"

// CheckInvariants verifies structural properties every forest returned by
// BuildForest must satisfy: the root is index 0 and is background, every
// node's bounding box is contained in its parent's, and total pixel area
// equals the image area the root's bbox describes.
//
// Colors strictly alternate between a node and its parent, with one
// exception: a node attached directly to the root (index 0) may share the
// root's color. The root is a synthetic placeholder standing in for "no
// enclosing component was found," which is exactly what happens to every
// cell of a flat, non-nested pattern like a checkerboard, where neighboring
// cells of both colors sit side by side with nothing properly containing
// either.
func CheckInvariants(forest []FeatureVector) error {
	if len(forest) == 0 {
		return fmt.Errorf("topology: empty forest")
	}
	root := forest[0]
	if root.Color {
		return fmt.Errorf("topology: root (index 0) must be background, got foreground")
	}

	var walk func(idx, parent int) error
	walk = func(idx, parent int) error {
		node := forest[idx]
		if parent >= 0 {
			p := forest[parent]
			if node.Color == p.Color && parent != 0 {
				return fmt.Errorf("topology: node %d has same color as parent %d", idx, parent)
			}
			if !p.BBox.Contains(node.BBox) {
				return fmt.Errorf("topology: node %d bbox %+v not contained in parent %d bbox %+v", idx, node.BBox, parent, p.BBox)
			}
		}
		for c := node.Child; c != -1; c = forest[c].Sibling {
			if err := walk(c, idx); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, -1); err != nil {
		return err
	}
	imageArea := (root.BBox.MaxX - root.BBox.MinX + 1) * (root.BBox.MaxY - root.BBox.MinY + 1)
	if total := Area(forest, 0); total != imageArea {
		return fmt.Errorf("topology: total area %d, want %d from root bbox %+v", total, imageArea, root.BBox)
	}
	return nil
}

// Area sums the pixel area of a component and every descendant.
func Area(forest []FeatureVector, idx int) int {
	total := forest[idx].Area
	for c := forest[idx].Child; c != -1; c = forest[c].Sibling {
		total += Area(forest, c)
	}
	return total
}
