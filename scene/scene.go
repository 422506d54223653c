package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/horizon/types"
)

// The default vertical field of view in degrees.
const DefaultFOV float32 = 50

// A scene combines the camera pose with the black hole configuration.
type Scene struct {
	Camera    *Camera
	BlackHole BlackHole
}

// Create a scene with the default camera and black hole configuration.
func NewScene() *Scene {
	return &Scene{
		Camera:    NewCamera(DefaultFOV),
		BlackHole: DefaultBlackHole(),
	}
}

// Validate the scene camera and black hole configuration.
func (sc *Scene) Validate() error {
	if err := sc.Camera.Validate(); err != nil {
		return err
	}
	return sc.BlackHole.Validate()
}

// Parse a vector from a "x,y,z" string.
func ParseVec3(val string) (types.Vec3, error) {
	var out types.Vec3

	tokens := strings.Split(val, ",")
	if len(tokens) != 3 {
		return out, ErrInvalidVectorFormat
	}

	for i, token := range tokens {
		f, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return out, fmt.Errorf("%w: %s", ErrInvalidVectorFormat, err.Error())
		}
		out[i] = float32(f)
	}

	return out, nil
}
