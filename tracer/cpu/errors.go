package cpu

import "errors"

var (
	ErrNoFrameData        = errors.New("cpu tracer: no frame data in block request")
	ErrBlockOutOfBounds   = errors.New("cpu tracer: block exceeds frame bounds")
	ErrBufferTooSmall     = errors.New("cpu tracer: output buffers are too small for the frame")
	ErrNotInitialized     = errors.New("cpu tracer: tracer not initialized")
	ErrAlreadyInitialized = errors.New("cpu tracer: tracer already initialized")
	ErrTracerBusy         = errors.New("cpu tracer: tracer is busy processing another block")
)
