package renderer

type Renderer interface {
	// Render all frames requested by the renderer options.
	Render() error

	// Shutdown renderer and any attached tracer.
	Close()

	// Get statistics for the last rendered frame.
	Stats() FrameStats
}
