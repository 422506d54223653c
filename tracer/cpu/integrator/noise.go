package integrator

import (
	"math"

	"github.com/achilleasa/horizon/types"
)

// Lattice weights used to fold the integer cell coordinates into the hash
// input. They only need to decorrelate the axes.
const (
	latticeY = 157.0
	latticeZ = 113.0
)

func hash(n float64) float64 {
	return fractf(math.Sin(n) * 43758.5453)
}

// Noise evaluates a value-noise field at p. The output is in [0, 1) and
// depends only on p.
func Noise(p types.Vec3) float32 {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	ix, iy, iz := math.Floor(x), math.Floor(y), math.Floor(z)

	// Smoothstep the cell-local coordinates to hide the lattice creases.
	fx, fy, fz := x-ix, y-iy, z-iz
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	fz = fz * fz * (3 - 2*fz)

	n := ix + iy*latticeY + iz*latticeZ
	return float32(mix(
		mix(
			mix(hash(n), hash(n+1), fx),
			mix(hash(n+latticeY), hash(n+latticeY+1), fx),
			fy,
		),
		mix(
			mix(hash(n+latticeZ), hash(n+latticeZ+1), fx),
			mix(hash(n+latticeZ+latticeY), hash(n+latticeZ+latticeY+1), fx),
			fy,
		),
		fz,
	))
}

// Per-octave frequency multipliers. They are deliberately not exactly 2 so
// octaves do not line up on the same lattice.
var fbmLacunarity = [...]float32{2.02, 2.03, 2.01, 2.02}

// FBM sums 5 octaves of Noise with halving amplitude starting at 0.5.
func FBM(p types.Vec3) float32 {
	var (
		f   float32
		amp float32 = 0.5
	)
	for octave := 0; octave <= len(fbmLacunarity); octave++ {
		f += amp * Noise(p)
		amp *= 0.5
		if octave < len(fbmLacunarity) {
			p = p.Mul(fbmLacunarity[octave])
		}
	}
	return f
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
