package integrator

import (
	"math"
	"testing"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

func TestPrimaryRaysHaveUnitLength(t *testing.T) {
	type spec struct {
		pos    types.Vec3
		lookAt types.Vec3
		fov    float32
	}
	specs := []spec{
		{types.Vec3{0, 1.5, 10}, types.Vec3{0, 0, 0}, 50},
		{types.Vec3{-3, 4, 2}, types.Vec3{1, 0, -1}, 90},
		// Looking straight down and up use the polar basis
		{types.Vec3{0, 10, 0}, types.Vec3{0, 0, 0}, 60},
		{types.Vec3{0, -10, 0}, types.Vec3{0, 0, 0}, 30},
		{types.Vec3{0.001, 10, 0}, types.Vec3{0, 0, 0}, 120},
	}

	var frameW, frameH uint32 = 64, 48
	for index, s := range specs {
		camera := &scene.Camera{Position: s.pos, LookAt: s.lookAt, FOV: s.fov}
		rg := NewRayGenerator(camera, frameW, frameH)

		var x, y uint32
		for y = 0; y < frameH; y++ {
			for x = 0; x < frameW; x++ {
				ray := rg.Ray(x, y)
				if l := ray.Dir.Len(); math.Abs(float64(l-1)) > 1e-5 {
					t.Fatalf("[spec %d] ray(%d, %d) expected unit direction; got length %f", index, x, y, l)
				}
				if ray.Origin != s.pos {
					t.Fatalf("[spec %d] ray(%d, %d) expected origin %v; got %v", index, x, y, s.pos, ray.Origin)
				}
			}
		}
	}
}

func TestCenterPixelLooksForward(t *testing.T) {
	camera := scene.NewCamera(scene.DefaultFOV)
	rg := NewRayGenerator(camera, 801, 601)

	ray := rg.Ray(400, 300)
	if exp := camera.Forward(); !types.ApproxEqual(ray.Dir, exp, 1e-5) {
		t.Fatalf("expected center ray dir to be %v; got %v", exp, ray.Dir)
	}
}

func TestImageOrientation(t *testing.T) {
	camera := scene.NewCamera(scene.DefaultFOV)
	rg := NewRayGenerator(camera, 64, 64)

	top := rg.Ray(32, 0)
	bottom := rg.Ray(32, 63)
	if top.Dir[1] <= bottom.Dir[1] {
		t.Fatalf("expected row 0 to point above the last row; got %v and %v", top.Dir, bottom.Dir)
	}

	left := rg.Ray(0, 32)
	right := rg.Ray(63, 32)
	if left.Dir[0] >= right.Dir[0] {
		t.Fatalf("expected column 0 to point left of the last column; got %v and %v", left.Dir, right.Dir)
	}
}

func TestResizeOnlyChangesHorizontalMapping(t *testing.T) {
	camera := scene.NewCamera(scene.DefaultFOV)
	narrow := NewRayGenerator(camera, 800, 600)
	wide := NewRayGenerator(camera, 1600, 600)

	if narrow.tanFov != wide.tanFov {
		t.Fatalf("expected identical fov term; got %f and %f", narrow.tanFov, wide.tanFov)
	}

	var y uint32
	for y = 0; y < 600; y++ {
		_, v1 := narrow.NDC(0, y)
		_, v2 := wide.NDC(0, y)
		if v1 != v2 {
			t.Fatalf("row %d: expected identical vertical coordinate; got %f and %f", y, v1, v2)
		}

		// The vertical slope of the ray relative to the view axis must match
		r1 := narrow.Ray(400, y)
		r2 := wide.Ray(800, y)
		s1 := r1.Dir.Dot(narrow.up) / r1.Dir.Dot(narrow.forward)
		s2 := r2.Dir.Dot(wide.up) / r2.Dir.Dot(wide.forward)
		if math.Abs(float64(s1-s2)) > 1e-5 {
			t.Fatalf("row %d: expected identical vertical slope; got %f and %f", y, s1, s2)
		}
	}

	// Horizontal extent at the frame edges scales with the aspect ratio
	u1, _ := narrow.NDC(799, 0)
	u2, _ := wide.NDC(1599, 0)
	n1 := u1 / narrow.aspect
	n2 := u2 / wide.aspect
	if n1 <= 0.99 || n1 >= 1 || n2 <= 0.99 || n2 >= 1 {
		t.Fatalf("expected normalized edge coordinates just below 1; got %f and %f", n1, n2)
	}
	if math.Abs(float64(wide.aspect/narrow.aspect-2)) > 1e-6 {
		t.Fatalf("expected aspect ratio to double; got %f -> %f", narrow.aspect, wide.aspect)
	}
}
