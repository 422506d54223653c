package integrator

import (
	"math"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

var (
	diskInnerTint = types.Vec3{1.0, 0.8, 0.6}
	diskOuterTint = types.Vec3{1.0, 0.5, 0.0}

	// Additive tints for approaching (blue) and receding (red) material.
	dopplerBlueShift = types.Vec3{0.0, -0.2, -0.3}
	dopplerRedShift  = types.Vec3{0.3, 0.2, 0.0}
)

const (
	diskFalloffExp     float32 = 0.8
	turbulenceContrast float32 = 1.5
	minTurbulence      float32 = 0.1
	turbulenceTimeRate float32 = 0.1
	minDopplerGain     float32 = 0.3
	maxDopplerGain     float32 = 2.0
	redshiftFloor      float32 = 0.1
)

// ShadeDisk returns the color of the accretion disk at a disk plane hit
// point for a ray travelling along dir.
//
// The redshift term requires the hit radius to be larger than the
// schwarzschild radius which scene.BlackHole.Validate guarantees for any
// point inside the disk annulus.
func ShadeDisk(hit, dir types.Vec3, bh *scene.BlackHole, time float32) types.Vec3 {
	r := hit.XZ().Len()
	rs := bh.SchwarzschildRadius

	// Hits on the inner edge may land a rounding error below the inner radius
	alpha := powf(maxf(r-bh.DiskInnerRadius, 0)/(bh.DiskOuterRadius-bh.DiskInnerRadius), diskFalloffExp)
	baseColor := diskInnerTint.Mix(diskOuterTint, alpha)

	// Differential rotation: inner rings turn faster.
	angle := float32(math.Atan2(float64(hit[2]), float64(hit[0])))
	angle += time * bh.DiskRotationSpeed / (r + radiusEpsilon)
	rotX := float32(math.Cos(float64(angle))) * r
	rotZ := float32(math.Sin(float64(angle))) * r

	n := FBM(types.Vec3{rotX * bh.DiskDensity, rotZ * bh.DiskDensity, time * turbulenceTimeRate})
	n = maxf(powf(n, turbulenceContrast), minTurbulence)

	// Doppler beaming from the tangential orbital velocity.
	orbitalSpeed := bh.OrbitalSpeedFactor * sqrtf(rs/(r+radiusEpsilon))
	orbitalVelocity := types.Vec3{-hit[2], 0, hit[0]}.Normalize().Mul(orbitalSpeed)
	doppler := orbitalVelocity.Dot(dir.Mul(-1))
	shift := doppler*0.5 + 0.5

	color := baseColor.Mul(n)
	color = color.Mul(types.Mix(minDopplerGain, maxDopplerGain, shift))
	color = color.Add(dopplerBlueShift.Mix(dopplerRedShift, shift))

	color = color.Mul(gravitationalRedshift(r, rs) + redshiftFloor)

	return color.Mul(bh.DiskBrightness)
}

// Attenuation of light emitted at radius r. Callers must ensure r > rs.
func gravitationalRedshift(r, rs float32) float32 {
	return sqrtf(1 - rs/r)
}
