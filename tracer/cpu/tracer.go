package cpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/horizon/log"
	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/tracer/cpu/integrator"
)

// The relative speed estimate reported by CPU tracers. All CPU tracers are
// considered equal.
const cpuSpeedEstimate uint32 = 1

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *tracer.Stats
}

// Create a new cpu tracer. Each tracer renders its blocks on a dedicated
// go-routine.
func NewTracer(id string) tracer.Tracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		blockReqChan: make(chan tracer.BlockRequest, 1),
		stats:        &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get the computation speed estimate.
func (tr *cpuTracer) Speed() uint32 {
	return cpuSpeedEstimate
}

// Initialize tracer and start the block worker.
func (tr *cpuTracer) Init() error {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		return ErrAlreadyInitialized
	}

	tr.startWorker()
	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}

	// Signal worker to exit and wait till it exits
	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	tr.Lock()
	running := tr.closeChan != nil
	tr.Unlock()

	if !running {
		blockReq.ErrChan <- ErrNotInitialized
		return
	}

	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if worker is not listening
		tr.logger.Error("request processor did not receive block request")
		blockReq.ErrChan <- ErrTracerBusy
	}
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Spawn a go-routine to process block render requests. This method is meant
// to be called while holding tr.Lock().
func (tr *cpuTracer) startWorker() {
	tr.closeChan = make(chan struct{}, 0)
	closeChan := tr.closeChan

	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()

				// Render block and reply with our completion status
				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				tr.stats.RenderTime = time.Since(startTime)
				tr.logger.Debugf("rendered rows [%d, %d) in %s", blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, tr.stats.RenderTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-closeChan:
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render block.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	frame := blockReq.Frame
	if frame == nil {
		return ErrNoFrameData
	}
	if blockReq.BlockY+blockReq.BlockH > frame.Height {
		return ErrBlockOutOfBounds
	}

	numChannels := int(frame.Width * frame.Height * 4)
	if len(blockReq.Accumulator) < numChannels || len(blockReq.FrameBuffer) < numChannels {
		return ErrBufferTooSmall
	}

	tonemap := blockReq.Tonemap
	if tonemap == nil {
		tonemap = tracer.TonemapClamp()
	}

	rayGen := integrator.NewRayGenerator(&frame.Camera, frame.Width, frame.Height)
	bh := &frame.BlackHole

	var outcomes [integrator.NumOutcomes]uint64
	var x, y uint32
	for y = blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		offset := y * frame.Width * 4
		for x = 0; x < frame.Width; x++ {
			res := integrator.Trace(rayGen.Ray(x, y), bh, frame.Time)
			outcomes[res.Outcome]++

			color := res.Color()
			index := offset + x*4
			copy(blockReq.Accumulator[index:index+4], color[:])
			blockReq.FrameBuffer[index] = tracer.ToByte(tonemap(color[0]))
			blockReq.FrameBuffer[index+1] = tracer.ToByte(tonemap(color[1]))
			blockReq.FrameBuffer[index+2] = tracer.ToByte(tonemap(color[2]))
			blockReq.FrameBuffer[index+3] = tracer.ToByte(color[3])
		}
	}

	tr.stats.BlockH = blockReq.BlockH
	tr.stats.Outcomes = outcomes
	return nil
}
