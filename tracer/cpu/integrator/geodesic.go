package integrator

import (
	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

const (
	// Rays closer than this multiple of the schwarzschild radius are absorbed.
	absorptionFactor float32 = 1.01

	// Rays further away than this from the origin escape.
	farPlane float32 = 100

	// Guards radius terms in denominators and detects degenerate positions.
	radiusEpsilon float32 = 1e-4

	// Rays moving slower than this vertically are not tested for disk
	// plane crossings.
	minVerticalSpeed float32 = 1e-4
)

// RayState is the integrator state for a single ray.
type RayState struct {
	Position types.Vec3
	Velocity types.Vec3

	// Squared magnitude of cross(origin, dir). It is computed once and held
	// fixed for the lifetime of the ray.
	AngularMomentumSq float32
}

// Initialize the integrator state for a ray.
func NewRayState(ray Ray) RayState {
	return RayState{
		Position:          ray.Origin,
		Velocity:          ray.Dir,
		AngularMomentumSq: ray.Origin.Cross(ray.Dir).LenSq(),
	}
}

// Advance the ray by one step. The bending acceleration is an inverse fifth
// power term scaled by the angular momentum; only the direction of the
// velocity changes, its magnitude is renormalized to 1.
func (s *RayState) Step(r, rsSq, stepSize float32) {
	rHat := s.Position.Mul(1.0 / r)
	r2 := r * r
	accMag := 1.5 * rsSq * s.AngularMomentumSq / (r2*r2*r + radiusEpsilon)
	acc := rHat.Mul(-accMag)

	s.Velocity = s.Velocity.Add(acc.Mul(stepSize)).Normalize()
	s.Position = s.Position.Add(s.Velocity.Mul(stepSize))
}

// Trace a ray through the black hole field for at most bh.MaxIterations
// steps. The disk shader is invoked at most once, on a disk hit.
func Trace(ray Ray, bh *scene.BlackHole, time float32) Result {
	state := NewRayState(ray)
	rs := bh.SchwarzschildRadius
	rsSq := rs * rs
	absorbRadius := rs * absorptionFactor

	var steps uint32
	for ; steps < bh.MaxIterations; steps++ {
		r := state.Position.Len()

		switch {
		case r < absorbRadius:
			return Result{Outcome: Absorbed, Steps: steps, Position: state.Position}
		case r > farPlane:
			return Result{Outcome: Escaped, Steps: steps, Position: state.Position}
		case r < radiusEpsilon:
			return Result{Outcome: Degenerate, Steps: steps, Position: state.Position}
		}

		prev := state.Position
		state.Step(r, rsSq, bh.StepSize)

		vy := state.Velocity[1]
		if prev[1]*state.Position[1] <= 0 && absf(vy) > minVerticalSpeed {
			t := types.Clamp(-prev[1]/vy, 0, bh.StepSize)
			hit := prev.Add(state.Velocity.Mul(t))
			hitR := hit.XZ().Len()

			if hitR >= bh.DiskInnerRadius && hitR <= bh.DiskOuterRadius {
				return Result{
					Outcome:   HitDisk,
					Steps:     steps + 1,
					Position:  hit,
					DiskColor: ShadeDisk(hit, state.Velocity, bh, time),
				}
			}
		}
	}

	return Result{Outcome: Exhausted, Steps: steps, Position: state.Position}
}
