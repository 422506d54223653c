package renderer

import "errors"

var (
	ErrNoTracers         = errors.New("renderer: no tracers attached")
	ErrSceneNotDefined   = errors.New("renderer: no scene defined")
	ErrInvalidFrameSize  = errors.New("renderer: frame dimensions must be greater than zero")
	ErrInvalidPixelRatio = errors.New("renderer: pixel ratio must be in the (0, 1] range")
	ErrUnsupportedFormat = errors.New("renderer: unsupported output image format")
)
