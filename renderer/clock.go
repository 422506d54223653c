package renderer

import "time"

// A Clock maps a frame index to the animation time in seconds that is
// passed to the tracers for that frame.
type Clock interface {
	Time(frameIndex uint32) float32
}

// FixedClock derives frame times from the frame index so that repeated
// renders of the same frame are identical.
type FixedClock struct {
	// Time of the first frame.
	Start float32

	// Frames per second. If zero, all frames share the Start time.
	FPS float32
}

func (c FixedClock) Time(frameIndex uint32) float32 {
	if c.FPS <= 0 {
		return c.Start
	}
	return c.Start + float32(frameIndex)/c.FPS
}

// WallClock reports the wall-clock time elapsed since it was created.
type WallClock struct {
	start time.Time
}

// Create a wall clock that starts ticking now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Time(_ uint32) float32 {
	return float32(time.Since(c.start).Seconds())
}
