package tracer

import (
	"time"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/tracer/cpu/integrator"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// The frame parameters. All block requests for the same frame share
	// this pointer and tracers must treat it as read-only.
	Frame *scene.Frame

	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// HDR RGBA output buffer (4 floats per pixel) for the entire frame.
	Accumulator []float32

	// Tonemapped RGBA output buffer (4 bytes per pixel) for the entire frame.
	FrameBuffer []uint8

	// The tonemapping operator used for filling FrameBuffer.
	Tonemap Tonemapper

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering the last block.
	RenderTime time.Duration

	// Number of rays per outcome for the last block.
	Outcomes [integrator.NumOutcomes]uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's relative computation speed estimate.
	Speed() uint32

	// Initialize the tracer and start processing block requests.
	Init() error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last frame statistics.
	Stats() *Stats
}
