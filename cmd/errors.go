package cmd

import "errors"

var (
	ErrPixelOutOfBounds = errors.New("trace: pixel coordinates are outside the frame")
	ErrInvalidFrameSize = errors.New("trace: frame dimensions must be greater than zero")
)
