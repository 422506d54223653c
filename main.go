package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/achilleasa/horizon/cmd"
	"github.com/urfave/cli"
)

func init() {
	// glfw requires all window and event calls to be made from the main thread
	runtime.LockOSThread()
}

// Flags shared by all commands that render frames.
func renderFlags(defaultW, defaultH int) []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: defaultW,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaultH,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "workers, w",
			Value: 0,
			Usage: "number of cpu tracers; 0 uses one tracer per cpu",
		},
		cli.StringFlag{
			Name:  "scheduler",
			Value: "perfect",
			Usage: "block scheduler (naive, perfect)",
		},
		cli.StringFlag{
			Name:  "tonemap",
			Value: "clamp",
			Usage: "tone-mapping operator (clamp, reinhard)",
		},
		cli.Float64Flag{
			Name:  "exposure",
			Value: 1.0,
			Usage: "camera exposure for reinhard tone-mapping",
		},
	}
}

// Create a command whose flags can also be loaded from a config file.
func withSceneFlags(command cli.Command) cli.Command {
	sceneFlags := cmd.SceneFlags()
	command.Flags = append(command.Flags, sceneFlags...)
	command.Before = cmd.LoadConfigFile(sceneFlags)
	return command
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "horizon"
	app.Usage = "render a black hole and its accretion disk by tracing light rays through curved spacetime"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				withSceneFlags(cli.Command{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render a single frame at the animation time given by --time and save it to
--out. The output format is selected by the file extension: .png files are
tone-mapped to 8 bits while .exr files store the untonemapped HDR values.`,
					Flags: append(renderFlags(800, 600),
						cli.Float64Flag{
							Name:  "time, t",
							Value: 0,
							Usage: "animation time in seconds",
						},
						cli.IntFlag{
							Name:  "supersample, s",
							Value: 1,
							Usage: "render at this multiple of the frame size and downsample",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame (.png or .exr)",
						},
					),
					Action: cmd.RenderFrame,
				}),
				withSceneFlags(cli.Command{
					Name:  "sequence",
					Usage: "render an animated sequence of frames",
					Description: `
Render --frames frames starting at --start seconds and advancing the animation
time by 1/fps seconds per frame. The --out value is formatted with the frame
index, e.g. frame-%04d.png.`,
					Flags: append(renderFlags(800, 600),
						cli.IntFlag{
							Name:  "frames, n",
							Value: 60,
							Usage: "number of frames to render",
						},
						cli.Float64Flag{
							Name:  "fps",
							Value: 30,
							Usage: "frames per second",
						},
						cli.Float64Flag{
							Name:  "start",
							Value: 0,
							Usage: "animation time of the first frame in seconds",
						},
						cli.IntFlag{
							Name:  "supersample, s",
							Value: 1,
							Usage: "render at this multiple of the frame size and downsample",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame-%04d.png",
							Usage: "image filename pattern for the rendered frames (.png or .exr)",
						},
					),
					Action: cmd.RenderSequence,
				}),
				withSceneFlags(cli.Command{
					Name:  "interactive",
					Usage: "render interactive view of the scene",
					Description: `
Open a resizable window with a continuously updating view of the scene. Drag
with the left mouse button to orbit the camera, use the arrow keys or the
mouse wheel to move, R to reset the camera and TAB to toggle block statistics.`,
					Flags: append(renderFlags(800, 600),
						cli.Float64Flag{
							Name:  "pixel-ratio",
							Value: 1.0,
							Usage: "trace at this fraction of the window size and upscale the result",
						},
					),
					Action: cmd.RenderInteractive,
				}),
			},
		},
		withSceneFlags(cli.Command{
			Name:  "trace",
			Usage: "trace a single pixel and display the result",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "x",
					Value: 400,
					Usage: "pixel column",
				},
				cli.IntFlag{
					Name:  "y",
					Value: 300,
					Usage: "pixel row; row 0 is the top of the frame",
				},
				cli.Float64Flag{
					Name:  "time, t",
					Value: 0,
					Usage: "animation time in seconds",
				},
				cli.StringFlag{
					Name:  "tonemap",
					Value: "clamp",
					Usage: "tone-mapping operator (clamp, reinhard)",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "camera exposure for reinhard tone-mapping",
				},
			},
			Action: cmd.TracePixel,
		}),
		withSceneFlags(cli.Command{
			Name:  "show-config",
			Usage: "display the effective scene configuration",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yaml",
					Usage: "print the configuration as a YAML file that can be passed to --config",
				},
			},
			Action: cmd.ShowConfig,
		}),
		{
			Name:  "list-tracers",
			Usage: "list the cpu tracers and their initial block assignment",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "number of cpu tracers; 0 uses one tracer per cpu",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Value: "perfect",
					Usage: "block scheduler (naive, perfect)",
				},
			},
			Action: cmd.ListTracers,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
