package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/tracer/cpu/integrator"
	"github.com/achilleasa/horizon/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Trace the ray through a single pixel and display how it terminated.
func TracePixel(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := sceneFromContext(ctx)
	if err != nil {
		return err
	}

	tonemap, err := tracer.TonemapperByName(ctx.String("tonemap"), float32(ctx.Float64("exposure")))
	if err != nil {
		return err
	}

	frameW, frameH := ctx.Int("width"), ctx.Int("height")
	if frameW <= 0 || frameH <= 0 {
		return ErrInvalidFrameSize
	}
	x, y := ctx.Int("x"), ctx.Int("y")
	if x < 0 || y < 0 || x >= frameW || y >= frameH {
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrPixelOutOfBounds, x, y, frameW, frameH)
	}

	frame := scene.NewFrame(sc, uint32(frameW), uint32(frameH), float32(ctx.Float64("time")))
	rows := tracePixel(frame, uint32(x), uint32(y), tonemap)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk(rows)
	table.Render()

	logger.Noticef("pixel (%d, %d) of %dx%d frame at t = %.3fs\n%s", x, y, frameW, frameH, frame.Time, buf.String())
	return nil
}

// Trace a single pixel and return a property/value listing of the result.
func tracePixel(frame *scene.Frame, x, y uint32, tonemap tracer.Tonemapper) [][]string {
	rayGen := integrator.NewRayGenerator(&frame.Camera, frame.Width, frame.Height)
	u, v := rayGen.NDC(x, y)
	ray := rayGen.Ray(x, y)
	res := integrator.Trace(ray, &frame.BlackHole, frame.Time)
	color := res.Color()
	state := integrator.NewRayState(ray)

	return [][]string{
		{"NDC", fmt.Sprintf("(%.4f, %.4f)", u, v)},
		{"Ray origin", fmtVec3(ray.Origin)},
		{"Ray direction", fmtVec3(ray.Dir)},
		{"Angular momentum²", fmt.Sprintf("%.4f", state.AngularMomentumSq)},
		{"Outcome", res.Outcome.String()},
		{"Steps", fmt.Sprintf("%d / %d", res.Steps, frame.BlackHole.MaxIterations)},
		{"Final position", fmtVec3(res.Position)},
		{"Final radius", fmt.Sprintf("%.4f", res.Position.Len())},
		{"HDR color", fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", color[0], color[1], color[2], color[3])},
		{"RGBA8 color", fmt.Sprintf("(%d, %d, %d, %d)",
			tracer.ToByte(tonemap(color[0])),
			tracer.ToByte(tonemap(color[1])),
			tracer.ToByte(tonemap(color[2])),
			tracer.ToByte(color[3]),
		)},
	}
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}
