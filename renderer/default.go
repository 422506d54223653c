package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/achilleasa/horizon/log"
	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/tracer/cpu"
)

var logger = log.New("renderer")

// The default renderer traces frames using a pool of cpu tracers and
// passes each rendered frame through a list of output stages.
type defaultRenderer struct {
	scene     *scene.Scene
	options   Options
	scheduler tracer.BlockScheduler
	tonemap   tracer.Tonemapper

	tracers          []tracer.Tracer
	blockAssignments []uint32

	// The traced frame dims and the buffers the tracers write into.
	frameW  uint32
	frameH  uint32
	buffers *frameBuffers
	output  FrameOutput

	// Output stages that are executed after each frame is rendered.
	postProcess []OutputStage

	// Channels for receiving block completion and error notifications.
	doneChan chan uint32
	errChan  chan error

	stats FrameStats
}

// Create a new default renderer using the specified block scheduler and
// output stages.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, postProcess []OutputStage, opts Options) (Renderer, error) {
	r, err := newDefaultRenderer(sc, scheduler, postProcess, opts)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newDefaultRenderer(sc *scene.Scene, scheduler tracer.BlockScheduler, postProcess []OutputStage, opts Options) (*defaultRenderer, error) {
	if sc == nil || sc.Camera == nil {
		return nil, ErrSceneNotDefined
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	tonemap, err := tracer.TonemapperByName(opts.Tonemap, opts.Exposure)
	if err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		scene:       sc,
		options:     opts,
		scheduler:   scheduler,
		tonemap:     tonemap,
		postProcess: postProcess,
	}

	err = r.initTracers()
	if err != nil {
		r.Close()
		return nil, err
	}

	r.resize(opts.FrameW*opts.Supersample, opts.FrameH*opts.Supersample)
	return r, nil
}

// Spawn and initialize the cpu tracer pool.
func (r *defaultRenderer) initTracers() error {
	numWorkers := r.options.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	for idx := 0; idx < numWorkers; idx++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", idx))
		if err := tr.Init(); err != nil {
			return err
		}
		r.tracers = append(r.tracers, tr)
	}

	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	logger.Infof("attached %d cpu tracers", len(r.tracers))

	r.doneChan = make(chan uint32, len(r.tracers))
	r.errChan = make(chan error, len(r.tracers))
	return nil
}

// Update the traced frame dims. This method must not be invoked while a
// frame is being rendered.
func (r *defaultRenderer) resize(frameW, frameH uint32) {
	if frameW == 0 {
		frameW = 1
	}
	if frameH == 0 {
		frameH = 1
	}

	r.frameW = frameW
	r.frameH = frameH
	if r.buffers == nil {
		r.buffers = newFrameBuffers(frameW, frameH)
	} else {
		r.buffers.resize(frameW, frameH)
	}
	logger.Debugf("frame dims set to %dx%d", frameW, frameH)
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get statistics for the last rendered frame.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render all frames and run the output stages for each one.
func (r *defaultRenderer) Render() error {
	var frameIndex uint32
	for frameIndex = 0; frameIndex < r.options.NumFrames; frameIndex++ {
		err := r.renderFrame(frameIndex)
		if err != nil {
			return err
		}

		r.output.Index = frameIndex
		r.output.Time = r.stats.Time
		r.buffers.downsample(r.options.Supersample, &r.output)
		for _, stage := range r.postProcess {
			if _, err = stage(&r.output); err != nil {
				return err
			}
		}
	}

	return nil
}

// Trace a single frame. The scene camera and black hole parameters are
// snapshotted into an immutable frame which is shared by all tracers. The
// call blocks until every tracer has finished processing its block.
func (r *defaultRenderer) renderFrame(frameIndex uint32) error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	frame := scene.NewFrame(r.scene, r.frameW, r.frameH, r.options.Clock.Time(frameIndex))
	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.frameH)

	start := time.Now()
	var blockY uint32
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			Frame:       frame,
			BlockY:      blockY,
			BlockH:      blockH,
			Accumulator: r.buffers.accumulator,
			FrameBuffer: r.buffers.image.Pix,
			Tonemap:     r.tonemap,
			DoneChan:    r.doneChan,
			ErrChan:     r.errChan,
		})
		blockY += blockH
		pending++
	}

	// Wait for all tracers to finish so that the buffers and the scene
	// can be safely modified after we return.
	var err error
	for ; pending > 0; pending-- {
		select {
		case <-r.doneChan:
		case blockErr := <-r.errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err != nil {
		return err
	}

	r.updateStats(frame, frameIndex, time.Since(start))
	return nil
}

func (r *defaultRenderer) updateStats(frame *scene.Frame, frameIndex uint32, renderTime time.Duration) {
	r.stats = FrameStats{
		Index:      frameIndex,
		Time:       frame.Time,
		FrameW:     frame.Width,
		FrameH:     frame.Height,
		Tracers:    make([]TracerStat, len(r.tracers)),
		RenderTime: renderTime,
	}

	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			BlockH:       blockH,
			FramePercent: 100.0 * float32(blockH) / float32(frame.Height),
		}
		if blockH == 0 {
			continue
		}

		trStats := tr.Stats()
		r.stats.Tracers[idx].RenderTime = trStats.RenderTime
		r.stats.Tracers[idx].Outcomes = trStats.Outcomes
		for outcome, count := range trStats.Outcomes {
			r.stats.Outcomes[outcome] += count
		}
	}
}
