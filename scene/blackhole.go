package scene

// BlackHole holds the configuration scalars for the black hole and its
// accretion disk. The disk lies in the y=0 plane.
type BlackHole struct {
	SchwarzschildRadius float32
	DiskInnerRadius     float32
	DiskOuterRadius     float32

	// Integrator step budget and step length.
	MaxIterations uint32
	StepSize      float32

	DiskBrightness     float32
	DiskDensity        float32
	OrbitalSpeedFactor float32
	DiskRotationSpeed  float32
}

// Get the default black hole configuration.
func DefaultBlackHole() BlackHole {
	return BlackHole{
		SchwarzschildRadius: 1.2,
		DiskInnerRadius:     1.8,
		DiskOuterRadius:     6.0,
		MaxIterations:       400,
		StepSize:            0.04,
		DiskBrightness:      7.0,
		DiskDensity:         15.0,
		OrbitalSpeedFactor:  0.5,
		DiskRotationSpeed:   0.1,
	}
}

// Validate the configuration. A disk that reaches into the horizon would
// make the gravitational redshift term of the disk shader imaginary so it
// is rejected here.
func (bh *BlackHole) Validate() error {
	switch {
	case bh.SchwarzschildRadius <= 0:
		return ErrInvalidHorizon
	case bh.DiskInnerRadius <= bh.SchwarzschildRadius:
		return ErrDiskInsideHorizon
	case bh.DiskOuterRadius <= bh.DiskInnerRadius:
		return ErrInvalidDiskBounds
	case bh.MaxIterations == 0:
		return ErrInvalidIterations
	case bh.StepSize <= 0:
		return ErrInvalidStepSize
	}
	return nil
}
