package vecmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/internal/vecmath"
)

func TestNormalizeZeroVectorReturnsZero(t *testing.T) {
	n := vecmath.Normalize(vecmath.Zero)
	assert.Equal(t, vecmath.Zero, n)
}

func TestNormalizeUnitLength(t *testing.T) {
	n := vecmath.Normalize(vecmath.New(3, 4, 0))
	assert.InDelta(t, 1, vecmath.Length(n), 1e-9)
}

func TestReflectAboutNormal(t *testing.T) {
	d := vecmath.New(1, -1, 0)
	n := vecmath.New(0, 1, 0)
	r := vecmath.Reflect(d, n)
	assert.InDelta(t, 1, r.X, 1e-9)
	assert.InDelta(t, 1, r.Y, 1e-9)
}

func TestCrossIsPerpendicularToBothOperands(t *testing.T) {
	a := vecmath.New(1, 0, 0)
	b := vecmath.New(0, 1, 0)
	c := vecmath.Cross(a, b)
	assert.InDelta(t, 0, vecmath.Dot(c, a), 1e-9)
	assert.InDelta(t, 0, vecmath.Dot(c, b), 1e-9)
}

func TestRNGVector2InUnitInterval(t *testing.T) {
	rng := vecmath.NewRNG(42, 0)
	for i := 0; i < 1000; i++ {
		u1, u2 := rng.Vector2()
		assert.True(t, u1 >= 0 && u1 < 1)
		assert.True(t, u2 >= 0 && u2 < 1)
	}
}

func TestRNGDistinctWorkersDiverge(t *testing.T) {
	a := vecmath.NewRNG(1, 0)
	b := vecmath.NewRNG(1, 1)
	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestRayAtEvaluatesParametricPoint(t *testing.T) {
	r := vecmath.NewRay(vecmath.New(1, 1, 1), vecmath.New(0, 0, 1))
	p := r.At(5)
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 6, p.Z, 1e-9)
}

func TestRadiansConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, vecmath.Radians(180), 1e-9)
}
