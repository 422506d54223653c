package scene

import "errors"

var (
	ErrDegenerateCamera    = errors.New("scene: camera look-at target must differ from its position")
	ErrInvalidFOV          = errors.New("scene: camera field of view must be in the (0, 180) degree range")
	ErrInvalidHorizon      = errors.New("scene: schwarzschild radius must be positive")
	ErrDiskInsideHorizon   = errors.New("scene: disk inner radius must be larger than the schwarzschild radius")
	ErrInvalidDiskBounds   = errors.New("scene: disk outer radius must be larger than the disk inner radius")
	ErrInvalidIterations   = errors.New("scene: max iterations must be positive")
	ErrInvalidStepSize     = errors.New("scene: integration step size must be positive")
	ErrInvalidVectorFormat = errors.New("scene: vectors must be specified as three comma-separated numbers")
)
