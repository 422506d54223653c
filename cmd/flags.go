package cmd

import (
	"fmt"

	"github.com/achilleasa/horizon/scene"
	"github.com/urfave/cli"
	"github.com/urfave/cli/altsrc"
)

// Flags that define the scene camera and black hole configuration. All of
// them except --config can also be loaded from the YAML file that --config
// points to; values specified on the command line take precedence.
func SceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load scene flag values from a YAML file",
		},
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "camera-pos",
			Value: "0,1.5,10",
			Usage: "camera position as x,y,z",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "look-at",
			Value: "0,0,0",
			Usage: "camera look-at target as x,y,z",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "fov",
			Value: 50,
			Usage: "vertical field of view in degrees",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "schwarzschild-radius",
			Value: 1.2,
			Usage: "event horizon radius",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "disk-inner-radius",
			Value: 1.8,
			Usage: "accretion disk inner radius; must exceed the schwarzschild radius",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "disk-outer-radius",
			Value: 6.0,
			Usage: "accretion disk outer radius",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "max-iterations",
			Value: 400,
			Usage: "max integration steps per ray",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "step-size",
			Value: 0.04,
			Usage: "integration step length",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "disk-brightness",
			Value: 7.0,
			Usage: "accretion disk brightness multiplier",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "disk-density",
			Value: 15.0,
			Usage: "accretion disk turbulence density",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "orbital-speed-factor",
			Value: 0.5,
			Usage: "scale of the orbital velocity used for doppler beaming",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "disk-rotation-speed",
			Value: 0.1,
			Usage: "angular speed of the disk pattern",
		}),
	}
}

// Returns a cli.BeforeFunc that populates unset flags from the YAML file
// specified by --config. It is a no-op if --config is not set.
func LoadConfigFile(flags []cli.Flag) cli.BeforeFunc {
	loadYaml := altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc("config"))
	return func(ctx *cli.Context) error {
		if ctx.String("config") == "" {
			return nil
		}

		if err := loadYaml(ctx); err != nil {
			return fmt.Errorf("could not load config file %q: %w", ctx.String("config"), err)
		}
		return nil
	}
}

// Build and validate a scene from the scene flags.
func sceneFromContext(ctx *cli.Context) (*scene.Scene, error) {
	sc := scene.NewScene()

	var err error
	if sc.Camera.Position, err = scene.ParseVec3(ctx.String("camera-pos")); err != nil {
		return nil, fmt.Errorf("invalid camera-pos: %w", err)
	}
	if sc.Camera.LookAt, err = scene.ParseVec3(ctx.String("look-at")); err != nil {
		return nil, fmt.Errorf("invalid look-at: %w", err)
	}
	sc.Camera.FOV = float32(ctx.Float64("fov"))

	maxIterations := ctx.Int("max-iterations")
	if maxIterations < 0 {
		maxIterations = 0
	}

	sc.BlackHole = scene.BlackHole{
		SchwarzschildRadius: float32(ctx.Float64("schwarzschild-radius")),
		DiskInnerRadius:     float32(ctx.Float64("disk-inner-radius")),
		DiskOuterRadius:     float32(ctx.Float64("disk-outer-radius")),
		MaxIterations:       uint32(maxIterations),
		StepSize:            float32(ctx.Float64("step-size")),
		DiskBrightness:      float32(ctx.Float64("disk-brightness")),
		DiskDensity:         float32(ctx.Float64("disk-density")),
		OrbitalSpeedFactor:  float32(ctx.Float64("orbital-speed-factor")),
		DiskRotationSpeed:   float32(ctx.Float64("disk-rotation-speed")),
	}

	if err = sc.Validate(); err != nil {
		return nil, err
	}

	return sc, nil
}
