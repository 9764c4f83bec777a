package lftag

import "github.com/cocosip/go-fiducial/topology"

// Root is an identified lftag candidate: a foreground component (the
// solid quadrilateral body, held in BG) together with its candidate data
// dots.
type Root struct {
	BBox    topology.BBox
	Class   Class
	BG      int   // forest index of the foreground body itself
	Normals []int // forest indices of the data-dot components
}
