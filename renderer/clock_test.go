package renderer

import (
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	type spec struct {
		clock      FixedClock
		frameIndex uint32
		expTime    float32
	}
	specs := []spec{
		{FixedClock{}, 0, 0},
		{FixedClock{}, 10, 0},
		{FixedClock{Start: 2}, 10, 2},
		{FixedClock{FPS: 4}, 2, 0.5},
		{FixedClock{Start: 1, FPS: 2}, 3, 2.5},
	}

	for specIndex, s := range specs {
		if got := s.clock.Time(s.frameIndex); got != s.expTime {
			t.Fatalf("[spec %d] expected time %f; got %f", specIndex, s.expTime, got)
		}
	}
}

func TestWallClock(t *testing.T) {
	clock := NewWallClock()
	first := clock.Time(0)
	if first < 0 {
		t.Fatalf("expected non-negative time; got %f", first)
	}

	time.Sleep(10 * time.Millisecond)
	if second := clock.Time(0); second <= first {
		t.Fatalf("expected wall clock to advance; got %f then %f", first, second)
	}
}
