package renderer

import (
	"time"

	"github.com/achilleasa/horizon/tracer/cpu/integrator"
)

type TracerStat struct {
	// The tracer id.
	Id string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration

	// Ray outcome histogram for assigned block.
	Outcomes [integrator.NumOutcomes]uint64
}

type FrameStats struct {
	// The index and animation time of the rendered frame.
	Index uint32
	Time  float32

	// The traced frame dims. These differ from the output dims when
	// supersampling or a pixel ratio is used.
	FrameW uint32
	FrameH uint32

	// Individual tracer stats.
	Tracers []TracerStat

	// Ray outcome histogram for the entire frame.
	Outcomes [integrator.NumOutcomes]uint64

	// Total render time for entire frame.
	RenderTime time.Duration
}
