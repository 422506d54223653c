package integrator

import (
	"math"
	"testing"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

func TestDiskColorIsFinite(t *testing.T) {
	bh := scene.DefaultBlackHole()
	dir := types.Vec3{0, -1, -1}.Normalize()

	for r := bh.DiskInnerRadius; r <= bh.DiskOuterRadius; r += 0.25 {
		for angle := 0.0; angle < 2*math.Pi; angle += 0.5 {
			hit := types.Vec3{r * float32(math.Cos(angle)), 0, r * float32(math.Sin(angle))}
			c := ShadeDisk(hit, dir, &bh, 3.5)
			for i := 0; i < 3; i++ {
				if math.IsNaN(float64(c[i])) || math.IsInf(float64(c[i]), 0) {
					t.Fatalf("expected finite color at %v; got %v", hit, c)
				}
			}
		}
	}
}

func TestDiskInnerEdge(t *testing.T) {
	type spec struct {
		rs, inner float32
	}
	specs := []spec{
		{1.2, 1.8},
		// Inner edge just outside the absorption radius
		{1.2, 1.22},
		{0.5, 0.506},
	}

	dir := types.Vec3{0.3, -1, -0.4}.Normalize()
	for specIndex, s := range specs {
		bh := scene.DefaultBlackHole()
		bh.SchwarzschildRadius = s.rs
		bh.DiskInnerRadius = s.inner
		if err := bh.Validate(); err != nil {
			t.Fatalf("[spec %d] expected valid black hole; got %v", specIndex, err)
		}

		factor := gravitationalRedshift(s.inner, s.rs)
		if math.IsNaN(float64(factor)) || factor < 0 || factor >= 1 {
			t.Fatalf("[spec %d] expected redshift factor in [0, 1) at the inner edge; got %f", specIndex, factor)
		}

		// Points on and a rounding error below the inner edge
		for _, r := range []float32{s.inner, s.inner * (1 - 1e-7), s.inner - 1e-6} {
			for angle := 0.0; angle < 2*math.Pi; angle += 0.25 {
				hit := types.Vec3{r * float32(math.Cos(angle)), 0, r * float32(math.Sin(angle))}
				c := ShadeDisk(hit, dir, &bh, 2)
				for i := 0; i < 3; i++ {
					if math.IsNaN(float64(c[i])) || math.IsInf(float64(c[i]), 0) {
						t.Fatalf("[spec %d] expected finite color at %v; got %v", specIndex, hit, c)
					}
				}
			}
		}
	}
}

func TestDopplerBeaming(t *testing.T) {
	bh := scene.DefaultBlackHole()

	// At (4, 0, 0) disk material orbits towards +z
	hit := types.Vec3{4, 0, 0}
	towardsMaterial := types.Vec3{0, -0.5, -1}.Normalize()
	awayFromMaterial := types.Vec3{0, -0.5, 1}.Normalize()

	approaching := ShadeDisk(hit, towardsMaterial, &bh, 0)
	receding := ShadeDisk(hit, awayFromMaterial, &bh, 0)

	sum := func(c types.Vec3) float32 { return c[0] + c[1] + c[2] }
	if sum(approaching) <= sum(receding) {
		t.Fatalf("expected approaching material to be brighter; got %v vs %v", approaching, receding)
	}
	if approaching[0]-approaching[2] <= receding[0]-receding[2] {
		t.Fatalf("expected approaching material to be shifted towards red; got %v vs %v", approaching, receding)
	}
}

func TestDiskBrightnessScalesColor(t *testing.T) {
	bh := scene.DefaultBlackHole()
	hit := types.Vec3{-2.5, 0, 1.5}
	dir := types.Vec3{0.2, -1, 0.3}.Normalize()

	bh.DiskBrightness = 1
	base := ShadeDisk(hit, dir, &bh, 1)
	bh.DiskBrightness = 3
	scaled := ShadeDisk(hit, dir, &bh, 1)

	if !types.ApproxEqual(scaled, base.Mul(3), 1e-4) {
		t.Fatalf("expected color to scale with brightness; got %v and %v", base, scaled)
	}
}

func TestDiskAnimation(t *testing.T) {
	bh := scene.DefaultBlackHole()
	hit := types.Vec3{0, 0, 3}
	dir := types.Vec3{0, -1, -0.2}.Normalize()

	c1 := ShadeDisk(hit, dir, &bh, 10)
	c2 := ShadeDisk(hit, dir, &bh, 10)
	if c1 != c2 {
		t.Fatalf("expected identical color for identical time; got %v and %v", c1, c2)
	}

	if c3 := ShadeDisk(hit, dir, &bh, 20); c3 == c1 {
		t.Fatalf("expected disk turbulence to change over time; got %v at both t=10 and t=20", c1)
	}
}
