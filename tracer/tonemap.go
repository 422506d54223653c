package tracer

import (
	"fmt"

	"github.com/achilleasa/horizon/types"
)

// A Tonemapper maps an HDR color channel to the [0, 1] range.
type Tonemapper func(v float32) float32

// Clamp colors to [0, 1]. This matches how an 8-bit display target
// presents out of range colors.
func TonemapClamp() Tonemapper {
	return func(v float32) float32 {
		return types.Clamp(v, 0, 1)
	}
}

// Apply simple Reinhard tone-mapping with the given exposure.
func TonemapSimpleReinhard(exposure float32) Tonemapper {
	return func(v float32) float32 {
		v *= exposure
		if v <= 0 {
			return 0
		}
		return v / (1 + v)
	}
}

// Lookup a tonemapper by name.
func TonemapperByName(name string, exposure float32) (Tonemapper, error) {
	switch name {
	case "clamp":
		return TonemapClamp(), nil
	case "reinhard":
		return TonemapSimpleReinhard(exposure), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTonemapper, name)
}

// Convert a tonemapped channel value to 8 bits.
func ToByte(v float32) uint8 {
	return uint8(types.Clamp(v, 0, 1)*255 + 0.5)
}
