package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"
)

// Display the effective scene configuration after merging the command
// line flags with the optional config file.
func ShowConfig(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := sceneFromContext(ctx)
	if err != nil {
		return err
	}

	settings := sceneSettings(sc)

	// Emit a config file that can be passed back via --config
	if ctx.Bool("yaml") {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Setting", "Value"})
	for _, item := range settings {
		table.Append([]string{item.Key.(string), fmt.Sprint(item.Value)})
	}
	table.Render()

	logger.Noticef("scene configuration\n%s", buf.String())
	return nil
}

// List scene settings keyed by the matching flag name.
func sceneSettings(sc *scene.Scene) yaml.MapSlice {
	bh := sc.BlackHole
	return yaml.MapSlice{
		{Key: "camera-pos", Value: fmtFlagVec3(sc.Camera.Position)},
		{Key: "look-at", Value: fmtFlagVec3(sc.Camera.LookAt)},
		{Key: "fov", Value: sc.Camera.FOV},
		{Key: "schwarzschild-radius", Value: bh.SchwarzschildRadius},
		{Key: "disk-inner-radius", Value: bh.DiskInnerRadius},
		{Key: "disk-outer-radius", Value: bh.DiskOuterRadius},
		{Key: "max-iterations", Value: bh.MaxIterations},
		{Key: "step-size", Value: bh.StepSize},
		{Key: "disk-brightness", Value: bh.DiskBrightness},
		{Key: "disk-density", Value: bh.DiskDensity},
		{Key: "orbital-speed-factor", Value: bh.OrbitalSpeedFactor},
		{Key: "disk-rotation-speed", Value: bh.DiskRotationSpeed},
	}
}

func fmtFlagVec3(v types.Vec3) string {
	return fmt.Sprintf("%g,%g,%g", v[0], v[1], v[2])
}
