package topology

import "errors"

var (
	// ErrInputDimension is returned when an image's width or height is not
	// a multiple of 8.
	ErrInputDimension = errors.New("image dimensions must be multiples of 8")
)
