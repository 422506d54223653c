package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/horizon/renderer"
	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/tracer/cpu/integrator"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderOptions(ctx)
	opts.Clock = renderer.FixedClock{Start: float32(ctx.Float64("time"))}

	r, err := setupRenderer(ctx, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame", opts.FrameW, opts.FrameH)
	if err = r.Render(); err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())
	return nil
}

// Render an animated sequence of frames.
func RenderSequence(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderOptions(ctx)
	opts.NumFrames = uint32(ctx.Int("frames"))
	opts.Clock = renderer.FixedClock{
		Start: float32(ctx.Float64("start")),
		FPS:   float32(ctx.Float64("fps")),
	}

	r, err := setupRenderer(ctx, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %d %dx%d frames", opts.NumFrames, opts.FrameW, opts.FrameH)
	start := time.Now()
	if err = r.Render(); err != nil {
		return err
	}
	logger.Noticef("rendered %d frames in %s", opts.NumFrames, time.Since(start))

	// Display stats for the last frame
	displayFrameStats(r.Stats())
	return nil
}

// Use opengl to render a continuously updating view of the scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := sceneFromContext(ctx)
	if err != nil {
		return err
	}

	scheduler, err := tracer.SchedulerByName(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	opts := renderOptions(ctx)
	opts.PixelRatio = float32(ctx.Float64("pixel-ratio"))

	r, err := renderer.NewInteractive(sc, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("drag to orbit, arrows/scroll to move, R to reset the camera, TAB to toggle block stats, ESC to exit")
	if err = r.Render(); err != nil {
		return err
	}

	displayFrameStats(r.Stats())
	return nil
}

// Build renderer options from the common render flags.
func renderOptions(ctx *cli.Context) renderer.Options {
	return renderer.Options{
		FrameW:      uint32(ctx.Int("width")),
		FrameH:      uint32(ctx.Int("height")),
		NumWorkers:  ctx.Int("workers"),
		Tonemap:     ctx.String("tonemap"),
		Exposure:    float32(ctx.Float64("exposure")),
		Supersample: uint32(ctx.Int("supersample")),
	}
}

// Create a default renderer that saves each frame to the --out path.
func setupRenderer(ctx *cli.Context, opts renderer.Options) (renderer.Renderer, error) {
	sc, err := sceneFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger.Infof("%s", sc.Camera)

	scheduler, err := tracer.SchedulerByName(ctx.String("scheduler"))
	if err != nil {
		return nil, err
	}

	saveFrame, err := renderer.SaveFrame(ctx.String("out"))
	if err != nil {
		return nil, err
	}

	return renderer.NewDefault(sc, scheduler, []renderer.OutputStage{saveFrame}, opts)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	header := []string{"Tracer", "Block height", "% of frame", "Render time"}
	for outcome := integrator.Outcome(0); outcome < integrator.NumOutcomes; outcome++ {
		header = append(header, outcome.String())
	}
	table.SetHeader(header)

	for _, stat := range stats.Tracers {
		row := []string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		}
		for _, count := range stat.Outcomes {
			row = append(row, fmt.Sprintf("%d", count))
		}
		table.Append(row)
	}

	footer := []string{fmt.Sprintf("%dx%d", stats.FrameW, stats.FrameH), "", "TOTAL", stats.RenderTime.String()}
	for _, count := range stats.Outcomes {
		footer = append(footer, fmt.Sprintf("%d", count))
	}
	table.SetFooter(footer)

	table.Render()
	logger.Noticef("frame %d (t = %.3fs) statistics\n%s", stats.Index, stats.Time, buf.String())
}
