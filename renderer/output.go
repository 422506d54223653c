package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/draw"
)

// A rendered frame at the output resolution.
type FrameOutput struct {
	// The frame index and animation time.
	Index uint32
	Time  float32

	// Tonemapped 8-bit frame.
	Image *image.RGBA

	// Linear RGBA values (4 floats per pixel) with the same dims as Image.
	HDR []float32
}

// An alias for functions that process rendered frames.
type OutputStage func(out *FrameOutput) (time.Duration, error)

// Frame buffers that are shared by all tracers. Each tracer writes to a
// disjoint set of rows.
type frameBuffers struct {
	width  uint32
	height uint32

	accumulator []float32
	image       *image.RGBA
}

func newFrameBuffers(width, height uint32) *frameBuffers {
	fb := &frameBuffers{}
	fb.resize(width, height)
	return fb
}

// Reallocate buffers if the dims have changed.
func (fb *frameBuffers) resize(width, height uint32) {
	if fb.width == width && fb.height == height && fb.image != nil {
		return
	}

	fb.width = width
	fb.height = height
	fb.accumulator = make([]float32, width*height*4)
	fb.image = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
}

// Fill out with the buffer contents scaled down by the given supersample
// factor. When no supersampling is used, out references the buffers
// directly.
func (fb *frameBuffers) downsample(factor uint32, out *FrameOutput) {
	if factor <= 1 {
		out.Image = fb.image
		out.HDR = fb.accumulator
		return
	}

	outW, outH := fb.width/factor, fb.height/factor
	if out.Image == nil || out.Image.Rect.Dx() != int(outW) || out.Image.Rect.Dy() != int(outH) {
		out.Image = image.NewRGBA(image.Rect(0, 0, int(outW), int(outH)))
		out.HDR = make([]float32, outW*outH*4)
	}

	draw.CatmullRom.Scale(out.Image, out.Image.Bounds(), fb.image, fb.image.Bounds(), draw.Src, nil)

	// Box-filter the HDR values so they are not clipped to 8 bits
	norm := 1.0 / float32(factor*factor)
	var x, y, sx, sy, c uint32
	for y = 0; y < outH; y++ {
		for x = 0; x < outW; x++ {
			dst := (y*outW + x) * 4
			for c = 0; c < 4; c++ {
				out.HDR[dst+c] = 0
			}
			for sy = 0; sy < factor; sy++ {
				src := ((y*factor+sy)*fb.width + x*factor) * 4
				for sx = 0; sx < factor; sx++ {
					for c = 0; c < 4; c++ {
						out.HDR[dst+c] += fb.accumulator[src+sx*4+c]
					}
				}
			}
			for c = 0; c < 4; c++ {
				out.HDR[dst+c] *= norm
			}
		}
	}
}

// Save rendered frames to disk. The image format is selected using the
// file extension (.png or .exr). If pathPattern contains a printf verb it
// is formatted with the frame index.
func SaveFrame(pathPattern string) (OutputStage, error) {
	var save func(path string, out *FrameOutput) error
	switch strings.ToLower(filepath.Ext(pathPattern)) {
	case ".png":
		save = savePNG
	case ".exr":
		save = saveEXR
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(pathPattern))
	}

	return func(out *FrameOutput) (time.Duration, error) {
		start := time.Now()

		path := pathPattern
		if strings.Contains(pathPattern, "%") {
			path = fmt.Sprintf(pathPattern, out.Index)
		}

		if err := save(path, out); err != nil {
			return 0, err
		}

		logger.Noticef("wrote frame %d to %s", out.Index, path)
		return time.Since(start), nil
	}, nil
}

func savePNG(path string, out *FrameOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out.Image)
}

// Export the untonemapped frame as a half-float EXR image.
func saveEXR(path string, out *FrameOutput) error {
	bounds := out.Image.Bounds()
	img := exr.NewRGBAImage(bounds)
	width := bounds.Dx()
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetRGBA(x, y, out.HDR[i], out.HDR[i+1], out.HDR[i+2], out.HDR[i+3])
		}
	}

	return exr.EncodeFile(path, img)
}
