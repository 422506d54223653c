package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/horizon/types"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraDirection uint8

// Supported camera movement directions.
const (
	Forward CameraDirection = iota
	Backward
	Left
	Right
)

const (
	// The camera never gets closer than this to its look-at target.
	minLookAtDistance float32 = 0.1

	// Max |forward.y| reachable by orbiting; past this point the ray
	// generator switches to its polar basis.
	maxOrbitElevation float32 = 0.995
)

var worldUp = types.Vec3{0, 1, 0}

// The camera type describes the viewer pose.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3

	// Vertical field of view in degrees.
	FOV float32
}

// Create a camera placed slightly above the disk plane looking at the origin.
func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.Vec3{0, 1.5, 10},
		LookAt:   types.Vec3{0, 0, 0},
		FOV:      fov,
	}
}

// Check that the camera pose defines a usable view.
func (c *Camera) Validate() error {
	if c.LookAt.Sub(c.Position).Len() < 1e-6 {
		return ErrDegenerateCamera
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return ErrInvalidFOV
	}
	return nil
}

// Get the normalized view direction.
func (c *Camera) Forward() types.Vec3 {
	return c.LookAt.Sub(c.Position).Normalize()
}

// Move the camera. Forward and backward dolly towards the look-at target
// while left and right strafe both the camera and its target.
func (c *Camera) Move(dir CameraDirection, amount float32) {
	forward := c.Forward()
	right := forward.Cross(worldUp).Normalize()
	if right.LenSq() == 0 {
		right = types.Vec3{1, 0, 0}
	}

	switch dir {
	case Forward:
		dist := c.LookAt.Sub(c.Position).Len()
		if dist-amount < minLookAtDistance {
			amount = dist - minLookAtDistance
		}
		c.Position = c.Position.Add(forward.Mul(amount))
	case Backward:
		c.Position = c.Position.Sub(forward.Mul(amount))
	case Left:
		c.Position = c.Position.Sub(right.Mul(amount))
		c.LookAt = c.LookAt.Sub(right.Mul(amount))
	case Right:
		c.Position = c.Position.Add(right.Mul(amount))
		c.LookAt = c.LookAt.Add(right.Mul(amount))
	}
}

// Orbit the camera around its look-at target. Yaw rotates around the world
// up axis and pitch around the camera right axis; pitch updates that would
// bring the camera over a pole are discarded.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := toMgl(c.Position.Sub(c.LookAt))

	yawQuat := mgl32.QuatRotate(yaw, toMgl(worldUp))
	offset = yawQuat.Rotate(offset)

	right := toMgl(worldUp).Cross(offset)
	if right.Len() > 1e-6 {
		pitchQuat := mgl32.QuatRotate(pitch, right.Normalize())
		pitched := pitchQuat.Rotate(offset)
		if float32(math.Abs(float64(pitched.Normalize()[1]))) <= maxOrbitElevation {
			offset = pitched
		}
	}

	c.Position = c.LookAt.Add(fromMgl(offset))
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera: pos (%3.3f, %3.3f, %3.3f) look-at (%3.3f, %3.3f, %3.3f) fov %3.1f",
		c.Position[0], c.Position[1], c.Position[2],
		c.LookAt[0], c.LookAt[1], c.LookAt[2],
		c.FOV,
	)
}

func toMgl(v types.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func fromMgl(v mgl32.Vec3) types.Vec3 {
	return types.Vec3{v[0], v[1], v[2]}
}
