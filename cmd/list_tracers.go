package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/tracer/cpu"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the tracers that a renderer would spawn for the --workers flag
// together with the initial block assignment for a frame.
func ListTracers(ctx *cli.Context) error {
	setupLogging(ctx)

	numWorkers := ctx.Int("workers")
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	frameH := ctx.Int("height")
	if frameH <= 0 {
		return ErrInvalidFrameSize
	}

	scheduler, err := tracer.SchedulerByName(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	tracers := make([]tracer.Tracer, numWorkers)
	for idx := range tracers {
		tracers[idx] = cpu.NewTracer(fmt.Sprintf("cpu-%d", idx))
	}
	blockAssignments := scheduler.Schedule(tracers, uint32(frameH))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Speed estimate", "Block height"})
	for idx, tr := range tracers {
		table.Append([]string{
			tr.Id(),
			fmt.Sprintf("%d", tr.Speed()),
			fmt.Sprintf("%d", blockAssignments[idx]),
		})
	}
	table.Render()

	logger.Noticef("%d cpu(s), GOMAXPROCS %d, %s/%s\n%s", runtime.NumCPU(), runtime.GOMAXPROCS(0), runtime.GOOS, runtime.GOARCH, buf.String())
	return nil
}
