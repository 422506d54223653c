package scene

// Frame is the immutable set of parameters used for tracing a single frame.
// The renderer builds a new Frame before each trace pass and shares a
// read-only pointer to it with all tracers.
type Frame struct {
	// Elapsed time in seconds; drives disk rotation and turbulence.
	Time float32

	// Frame dimensions and the derived aspect ratio.
	Width  uint32
	Height uint32
	Aspect float32

	Camera    Camera
	BlackHole BlackHole
}

// Snapshot the scene into a new frame.
func NewFrame(sc *Scene, width, height uint32, time float32) *Frame {
	f := &Frame{
		Time:      time,
		Camera:    *sc.Camera,
		BlackHole: sc.BlackHole,
	}
	f.Resize(width, height)
	return f
}

// Update the frame dimensions and recompute the derived fields. It must
// not be called while a trace pass that uses this frame is in progress.
func (f *Frame) Resize(width, height uint32) {
	f.Width = width
	f.Height = height
	f.Aspect = 1
	if height != 0 {
		f.Aspect = float32(width) / float32(height)
	}
}
