package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/horizon/types"
)

func TestNoiseDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := randomPoint(rng, 50)
		n1 := Noise(p)
		n2 := Noise(p)
		if n1 != n2 {
			t.Fatalf("expected noise at %v to be deterministic; got %f and %f", p, n1, n2)
		}
		if n1 < 0 || n1 >= 1 {
			t.Fatalf("expected noise at %v to be in [0, 1); got %f", p, n1)
		}
	}
}

func TestNoiseMatchesHashAtLatticePoints(t *testing.T) {
	type spec struct {
		p types.Vec3
		n float64
	}
	specs := []spec{
		{types.Vec3{0, 0, 0}, 0},
		{types.Vec3{1, 0, 0}, 1},
		{types.Vec3{0, 1, 0}, latticeY},
		{types.Vec3{0, 0, 1}, latticeZ},
		{types.Vec3{2, 3, -4}, 2 + 3*latticeY - 4*latticeZ},
	}

	for index, s := range specs {
		exp := float32(hash(s.n))
		if out := Noise(s.p); math.Abs(float64(out-exp)) > 1e-6 {
			t.Fatalf("[spec %d] expected noise at lattice point %v to be %f; got %f", index, s.p, exp, out)
		}
	}
}

func TestNoiseAndFBMContinuity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	delta := types.Vec3{1e-3, 1e-3, 1e-3}

	for i := 0; i < 1000; i++ {
		p := randomPoint(rng, 20)
		if d := math.Abs(float64(Noise(p) - Noise(p.Add(delta)))); d > 0.02 {
			t.Fatalf("expected small noise delta near %v; got %f", p, d)
		}
		if d := math.Abs(float64(FBM(p) - FBM(p.Add(delta)))); d > 0.1 {
			t.Fatalf("expected small fbm delta near %v; got %f", p, d)
		}
	}
}

func TestFBMRange(t *testing.T) {
	// Sum of the octave amplitudes.
	maxFBM := float32(0.5 + 0.25 + 0.125 + 0.0625 + 0.03125)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		p := randomPoint(rng, 100)
		if f := FBM(p); f < 0 || f >= maxFBM {
			t.Fatalf("expected fbm at %v to be in [0, %f); got %f", p, maxFBM, f)
		}
	}
}

func randomPoint(rng *rand.Rand, scale float32) types.Vec3 {
	return types.Vec3{
		(rng.Float32()*2 - 1) * scale,
		(rng.Float32()*2 - 1) * scale,
		(rng.Float32()*2 - 1) * scale,
	}
}
