package integrator

import (
	"fmt"

	"github.com/achilleasa/horizon/types"
)

// Outcome describes how a traced ray terminated.
type Outcome uint8

// The supported ray outcomes.
const (
	// The step budget ran out before any other terminal condition.
	Exhausted Outcome = iota

	// The ray crossed the absorption radius.
	Absorbed

	// The ray crossed the far plane.
	Escaped

	// The ray reached the origin where the field is undefined.
	Degenerate

	// The ray crossed the accretion disk.
	HitDisk

	// Used for sizing outcome histograms.
	NumOutcomes
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "exhausted"
	case Absorbed:
		return "absorbed"
	case Escaped:
		return "escaped"
	case Degenerate:
		return "degenerate"
	case HitDisk:
		return "disk"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

var (
	opaqueBlack      = types.Vec4{0, 0, 0, 1}
	transparentBlack = types.Vec4{}
)

// Result is the tagged outcome of a ray trace.
type Result struct {
	Outcome Outcome

	// Number of integration steps taken.
	Steps uint32

	// Position of the ray when it terminated. For disk hits this is the
	// interpolated crossing point.
	Position types.Vec3

	// Shaded disk color; only set for HitDisk outcomes.
	DiskColor types.Vec3
}

// Get the pixel color for this result. Every outcome except HitDisk and
// Degenerate resolves to opaque black.
func (r Result) Color() types.Vec4 {
	switch r.Outcome {
	case HitDisk:
		return r.DiskColor.Vec4(1)
	case Degenerate:
		return transparentBlack
	}
	return opaqueBlack
}
