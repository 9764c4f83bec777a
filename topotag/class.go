// Package topotag decodes topological fiducial tags: markers whose
// identity is carried by the shape of a containment tree of
// alternating-color regions, rather than by a pattern of pixel values.
package topotag

import "fmt"

// Class enumerates the registered topo tag sizes. Each class fixes how
// many Normal nodes (data bits) ring the tag's single Baseline pair.
type Class int

const (
	Class3x3 Class = iota
	Class4x4
	Class5x5
)

// NormalCount returns the number of data-bearing Normal nodes a tag of
// this class carries.
func (c Class) NormalCount() int {
	switch c {
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

// ExpectedChildCount returns how many filtered background children a
// foreground node must have to be considered a candidate root of this
// class: one child slot resolves (via its own grandchildren) to the
// Baseline pair, and one child slot per Normal.
func (c Class) ExpectedChildCount() int {
	return 1 + c.NormalCount()
}

// dimension returns the class's grid side d, where NormalCount == d*d-2.
func (c Class) dimension() int {
	switch c {
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

func (c Class) String() string {
	switch c {
	case Class3x3:
		return "topo3x3"
	case Class4x4:
		return "topo4x4"
	case Class5x5:
		return "topo5x5"
	default:
		return fmt.Sprintf("topo(unknown:%d)", int(c))
	}
}

// DefaultClasses lists every class recognized out of the box.
func DefaultClasses() []Class {
	return []Class{Class3x3, Class4x4, Class5x5}
}
