package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/achilleasa/horizon/types"
)

func TestBlackHoleValidation(t *testing.T) {
	type spec struct {
		mutate func(bh *BlackHole)
		expErr error
	}
	specs := []spec{
		{func(bh *BlackHole) {}, nil},
		{func(bh *BlackHole) { bh.SchwarzschildRadius = 0 }, ErrInvalidHorizon},
		{func(bh *BlackHole) { bh.DiskInnerRadius = 1.2 }, ErrDiskInsideHorizon},
		{func(bh *BlackHole) { bh.DiskInnerRadius = 0.5 }, ErrDiskInsideHorizon},
		{func(bh *BlackHole) { bh.DiskOuterRadius = 1.8 }, ErrInvalidDiskBounds},
		{func(bh *BlackHole) { bh.MaxIterations = 0 }, ErrInvalidIterations},
		{func(bh *BlackHole) { bh.StepSize = -0.1 }, ErrInvalidStepSize},
	}

	for index, s := range specs {
		bh := DefaultBlackHole()
		s.mutate(&bh)
		if err := bh.Validate(); !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestCameraValidation(t *testing.T) {
	c := NewCamera(DefaultFOV)
	if err := c.Validate(); err != nil {
		t.Fatalf("expected default camera to be valid; got %v", err)
	}

	c.LookAt = c.Position
	if err := c.Validate(); err != ErrDegenerateCamera {
		t.Fatalf("expected ErrDegenerateCamera; got %v", err)
	}

	c = NewCamera(180)
	if err := c.Validate(); err != ErrInvalidFOV {
		t.Fatalf("expected ErrInvalidFOV; got %v", err)
	}
}

func TestCameraOrbitPreservesDistance(t *testing.T) {
	c := NewCamera(DefaultFOV)
	dist := c.Position.Sub(c.LookAt).Len()

	for i := 0; i < 50; i++ {
		c.Orbit(0.1, 0.05)
		if d := c.Position.Sub(c.LookAt).Len(); math.Abs(float64(d-dist)) > 1e-3 {
			t.Fatalf("[step %d] expected orbit distance %f; got %f", i, dist, d)
		}
		if fy := c.Forward()[1]; math.Abs(float64(fy)) > float64(maxOrbitElevation)+1e-4 {
			t.Fatalf("[step %d] expected orbit to stay away from the poles; forward.y = %f", i, fy)
		}
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(DefaultFOV)

	c.Move(Forward, 100)
	if d := c.LookAt.Sub(c.Position).Len(); math.Abs(float64(d-minLookAtDistance)) > 1e-4 {
		t.Fatalf("expected dolly to stop at %f from target; got %f", minLookAtDistance, d)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected camera to remain valid after dolly; got %v", err)
	}

	c = NewCamera(DefaultFOV)
	before := c.LookAt.Sub(c.Position)
	c.Move(Left, 2)
	if after := c.LookAt.Sub(c.Position); !types.ApproxEqual(before, after, 1e-5) {
		t.Fatalf("expected strafe to preserve the view vector %v; got %v", before, after)
	}
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3("0, 1.5,10")
	if err != nil {
		t.Fatal(err)
	}
	if exp := types.XYZ(0, 1.5, 10); v != exp {
		t.Fatalf("expected %v; got %v", exp, v)
	}

	if _, err = ParseVec3("1,2"); err != ErrInvalidVectorFormat {
		t.Fatalf("expected ErrInvalidVectorFormat; got %v", err)
	}
	if _, err = ParseVec3("1,b,3"); !errors.Is(err, ErrInvalidVectorFormat) {
		t.Fatalf("expected wrapped ErrInvalidVectorFormat; got %v", err)
	}
}

func TestFrameResize(t *testing.T) {
	f := NewFrame(NewScene(), 800, 600, 1.5)
	if math.Abs(float64(f.Aspect-800.0/600.0)) > 1e-6 {
		t.Fatalf("expected aspect %f; got %f", 800.0/600.0, f.Aspect)
	}

	f.Resize(1600, 600)
	if f.Width != 1600 || f.Height != 600 {
		t.Fatalf("expected 1600x600; got %dx%d", f.Width, f.Height)
	}
	if math.Abs(float64(f.Aspect-1600.0/600.0)) > 1e-6 {
		t.Fatalf("expected aspect %f; got %f", 1600.0/600.0, f.Aspect)
	}
	if f.Time != 1.5 {
		t.Fatalf("expected resize to keep frame time; got %f", f.Time)
	}
}
