package tracer

import "errors"

var (
	ErrUnknownTonemapper = errors.New("tracer: unknown tonemapper")
	ErrUnknownScheduler  = errors.New("tracer: unknown block scheduler")
)
