package integrator

import (
	"math"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

// Above this |forward.y| the camera is considered to look straight up or
// down and cross(forward, worldUp) can no longer be used for the basis.
const polarThreshold = 0.999

// A ray with a unit length direction.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// RayGenerator maps pixel coordinates to world-space primary rays.
type RayGenerator struct {
	origin  types.Vec3
	forward types.Vec3
	right   types.Vec3
	up      types.Vec3

	tanFov float32
	aspect float32
	frameW float32
	frameH float32
}

// Create a ray generator for the given camera pose and frame dimensions.
// The camera basis is computed once and shared by all pixels.
func NewRayGenerator(camera *scene.Camera, frameW, frameH uint32) *RayGenerator {
	rg := &RayGenerator{
		origin:  camera.Position,
		forward: camera.LookAt.Sub(camera.Position).Normalize(),
		tanFov:  float32(math.Tan(0.5 * float64(camera.FOV) * math.Pi / 180.0)),
		frameW:  float32(frameW),
		frameH:  float32(frameH),
		aspect:  float32(frameW) / float32(frameH),
	}

	if absf(rg.forward[1]) > polarThreshold {
		rg.right = types.Vec3{1, 0, 0}
	} else {
		rg.right = rg.forward.Cross(types.Vec3{0, 1, 0}).Normalize()
	}
	rg.up = rg.right.Cross(rg.forward).Normalize()

	return rg
}

// Map a pixel to normalized device coordinates in [-1, 1]. The horizontal
// coordinate is scaled by the frame aspect ratio. Pixel row 0 is the top
// of the image.
func (rg *RayGenerator) NDC(x, y uint32) (u, v float32) {
	u = ((float32(x)+0.5)/rg.frameW*2 - 1) * rg.aspect
	v = 1 - (float32(y)+0.5)/rg.frameH*2
	return u, v
}

// Generate the primary ray for a pixel.
func (rg *RayGenerator) Ray(x, y uint32) Ray {
	u, v := rg.NDC(x, y)
	dir := rg.right.Mul(u * rg.tanFov).
		Add(rg.up.Mul(v * rg.tanFov)).
		Add(rg.forward).
		Normalize()

	return Ray{Origin: rg.origin, Dir: dir}
}
