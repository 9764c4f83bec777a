// Package lftag decodes localization-friendly fiducial tags: a solid
// quadrilateral body carrying identity in the arrangement of small data
// dots inside it, rather than in a containment-tree shape.
package lftag

import "fmt"

// Class enumerates the registered lftag sizes.
type Class int

const (
	Class2x2 Class = iota
	Class3x3
	Class4x4
	Class5x5
)

// height is the class's grid side used to derive its world-unit size.
func (c Class) height() int {
	switch c {
	case Class2x2:
		return 2
	case Class3x3:
		return 3
	case Class4x4:
		return 4
	case Class5x5:
		return 5
	default:
		return 0
	}
}

// DataDotCount returns the number of data-bearing dots this class encodes.
func (c Class) DataDotCount() int {
	switch c {
	case Class2x2:
		return 2
	case Class3x3:
		return 7
	case Class4x4:
		return 14
	case Class5x5:
		return 23
	default:
		return 0
	}
}

// Side returns the tag's physical side length in world units.
func (c Class) Side() float64 {
	return float64(c.height()+1) * 6
}

func (c Class) String() string {
	switch c {
	case Class2x2:
		return "lf2x2"
	case Class3x3:
		return "lf3x3"
	case Class4x4:
		return "lf4x4"
	case Class5x5:
		return "lf5x5"
	default:
		return fmt.Sprintf("lf(unknown:%d)", int(c))
	}
}

// DefaultClasses lists every class recognized out of the box.
func DefaultClasses() []Class {
	return []Class{Class2x2, Class3x3, Class4x4, Class5x5}
}
