package integrator

import (
	"testing"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/types"
)

func BenchmarkTraceAbsorbed(b *testing.B) {
	sc := scene.NewScene()
	ray := NewRayGenerator(sc.Camera, 801, 601).Ray(400, 300)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Trace(ray, &sc.BlackHole, 0)
	}
}

func BenchmarkTraceExhausted(b *testing.B) {
	bh := scene.DefaultBlackHole()
	ray := Ray{types.Vec3{0, 1.5, 10}, types.Vec3{0, 0, 1}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Trace(ray, &bh, 0)
	}
}

func BenchmarkTraceDiskHit(b *testing.B) {
	bh := scene.DefaultBlackHole()
	ray := Ray{types.Vec3{0, 2, 4}, types.Vec3{0, -1, 0}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Trace(ray, &bh, 1.5)
	}
}

func BenchmarkFBM(b *testing.B) {
	p := types.Vec3{12.5, -3.25, 0.1}
	for i := 0; i < b.N; i++ {
		FBM(p)
	}
}
