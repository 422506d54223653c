package renderer

type Options struct {
	// Output frame dims.
	FrameW uint32
	FrameH uint32

	// Number of cpu tracers to spawn. If zero, one tracer per cpu
	// core is used.
	NumWorkers int

	// Tonemapping operator ("clamp" or "reinhard") and the exposure
	// used by the reinhard operator.
	Tonemap  string
	Exposure float32

	// Render at FrameW*Supersample x FrameH*Supersample and downsample
	// the result to the output frame dims.
	Supersample uint32

	// Interactive renderer only: trace at a fraction of the window
	// size and upscale the result before displaying it.
	PixelRatio float32

	// Number of frames to render and the clock that maps a frame index
	// to the animation time passed to the tracers.
	NumFrames uint32
	Clock     Clock
}

// Fill in defaults for unset options and validate the rest.
func (opts *Options) normalize() error {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return ErrInvalidFrameSize
	}
	if opts.Supersample == 0 {
		opts.Supersample = 1
	}
	if opts.PixelRatio == 0 {
		opts.PixelRatio = 1
	}
	if opts.PixelRatio < 0 || opts.PixelRatio > 1 {
		return ErrInvalidPixelRatio
	}
	if opts.Tonemap == "" {
		opts.Tonemap = "clamp"
	}
	if opts.Exposure == 0 {
		opts.Exposure = 1
	}
	if opts.NumFrames == 0 {
		opts.NumFrames = 1
	}
	if opts.Clock == nil {
		opts.Clock = FixedClock{}
	}
	return nil
}
