package renderer

import (
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"
)

func TestSaveFrameFormats(t *testing.T) {
	type spec struct {
		path   string
		expErr error
	}
	specs := []spec{
		{"frame.png", nil},
		{"frame.PNG", nil},
		{"frame-%04d.exr", nil},
		{"frame.jpg", ErrUnsupportedFormat},
		{"frame", ErrUnsupportedFormat},
	}

	for specIndex, s := range specs {
		_, err := SaveFrame(s.path)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", specIndex, s.expErr, err)
		}
	}
}

func TestSaveFramePNG(t *testing.T) {
	out := makeTestOutput(4, 3)
	out.Index = 7

	pattern := filepath.Join(t.TempDir(), "frame-%03d.png")
	stage, err := SaveFrame(pattern)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = stage(out); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(filepath.Dir(pattern), "frame-007.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			expR, expG, expB, expA := out.Image.At(x, y).RGBA()
			if r != expR || g != expG || b != expB || a != expA {
				t.Fatalf("expected pixel (%d, %d) to be %v; got %v", x, y, out.Image.At(x, y), img.At(x, y))
			}
		}
	}
}

func TestSaveFrameEXRKeepsHDR(t *testing.T) {
	out := makeTestOutput(2, 2)
	out.HDR[4] = 3.5

	path := filepath.Join(t.TempDir(), "frame.exr")
	stage, err := SaveFrame(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = stage(out); err != nil {
		t.Fatal(err)
	}

	img, err := exr.DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}

	r, _, _, a := img.RGBA(1, 0)
	if r != 3.5 {
		t.Fatalf("expected red channel of pixel (1, 0) to be 3.5; got %f", r)
	}
	if a != out.HDR[7] {
		t.Fatalf("expected alpha channel of pixel (1, 0) to be %f; got %f", out.HDR[7], a)
	}
}

func TestFrameBuffersDownsample(t *testing.T) {
	fb := newFrameBuffers(4, 2)
	for i := range fb.accumulator {
		// Pixel index in the red channel and a constant alpha
		if i%4 == 3 {
			fb.accumulator[i] = 1
		} else {
			fb.accumulator[i] = float32(i / 4)
		}
	}

	var out FrameOutput
	fb.downsample(2, &out)

	bounds := out.Image.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 1 {
		t.Fatalf("expected 2x1 output image; got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Left output pixel averages source pixels 0, 1, 4 and 5 and the right
	// one averages 2, 3, 6 and 7.
	expRed := []float32{2.5, 4.5}
	for x, exp := range expRed {
		if got := out.HDR[x*4]; math.Abs(float64(got-exp)) > 1e-6 {
			t.Fatalf("expected red channel of pixel %d to be %f; got %f", x, exp, got)
		}
		if got := out.HDR[x*4+3]; got != 1 {
			t.Fatalf("expected alpha channel of pixel %d to be 1; got %f", x, got)
		}
	}

	// Without supersampling the output shares the frame buffers
	fb.downsample(1, &out)
	if out.Image != fb.image || &out.HDR[0] != &fb.accumulator[0] {
		t.Fatal("expected output to reference the frame buffers")
	}
}

func TestFrameBuffersResize(t *testing.T) {
	fb := newFrameBuffers(4, 2)
	img := fb.image

	fb.resize(4, 2)
	if fb.image != img {
		t.Fatal("expected buffers to be reused when dims do not change")
	}

	fb.resize(8, 3)
	if len(fb.accumulator) != 8*3*4 || fb.image.Bounds() != image.Rect(0, 0, 8, 3) {
		t.Fatalf("expected buffers to be reallocated for 8x3 frame; got %d values and bounds %v", len(fb.accumulator), fb.image.Bounds())
	}
}

func makeTestOutput(width, height int) *FrameOutput {
	out := &FrameOutput{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		HDR:   make([]float32, width*height*4),
	}
	for i := range out.Image.Pix {
		if i%4 == 3 {
			out.Image.Pix[i] = 255
			out.HDR[i] = 1
			continue
		}
		out.Image.Pix[i] = uint8(i * 7)
		out.HDR[i] = float32(out.Image.Pix[i]) / 255
	}
	return out
}
