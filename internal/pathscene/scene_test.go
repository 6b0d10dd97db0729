package pathscene_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathtracer/internal/material"
	"pathtracer/internal/mesh"
	"pathtracer/internal/pathscene"
	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

type seqSampler struct{ r *rand.Rand }

func (s seqSampler) Vector2() (float64, float64) { return s.r.Float64(), s.r.Float64() }

func quadModel(z float64, mat material.Material) *pathscene.Model {
	v0 := vecmath.New(-1, -1, z)
	v1 := vecmath.New(1, -1, z)
	v2 := vecmath.New(1, 1, z)
	v3 := vecmath.New(-1, 1, z)
	tris := []mesh.Triangle{
		mesh.NewTriangle(v0, v2, v1, mat, 0),
		mesh.NewTriangle(v0, v3, v2, mat, 1),
	}
	return pathscene.NewModel(tris, mat)
}

func TestIntersectBeforeBuildReturnsSceneNotBuilt(t *testing.T) {
	scene := pathscene.NewScene(vecmath.Zero)
	_, err := scene.Intersect(vecmath.NewRay(vecmath.New(0, 0, -5), vecmath.New(0, 0, 1)))

	var notBuilt rerr.SceneNotBuilt
	assert.ErrorAs(t, err, &notBuilt)
}

func TestIntersectAfterBuildHitsModel(t *testing.T) {
	mat := material.NewLambertian(vecmath.New(0.5, 0.5, 0.5), vecmath.Zero)
	scene := pathscene.NewScene(vecmath.New(0.1, 0.1, 0.1))
	scene.AddModel(quadModel(5, mat))
	require.NoError(t, scene.Build())

	hit, err := scene.Intersect(vecmath.NewRay(vecmath.New(0, 0, -5), vecmath.New(0, 0, 1)))
	require.NoError(t, err)
	assert.True(t, hit.Hit)
	assert.InDelta(t, 10, hit.Distance, 1e-9)
}

func TestHasEmittersFalseWithoutEmissiveModels(t *testing.T) {
	mat := material.NewLambertian(vecmath.New(0.5, 0.5, 0.5), vecmath.Zero)
	scene := pathscene.NewScene(vecmath.Zero)
	scene.AddModel(quadModel(5, mat))
	require.NoError(t, scene.Build())

	assert.False(t, scene.HasEmitters())
}

func TestSampleLightRestrictedToEmissiveSubset(t *testing.T) {
	dark := material.NewLambertian(vecmath.New(0.5, 0.5, 0.5), vecmath.Zero)
	bright := material.NewLambertian(vecmath.Zero, vecmath.New(8, 8, 8))

	scene := pathscene.NewScene(vecmath.Zero)
	scene.AddModel(quadModel(5, dark))
	scene.AddModel(quadModel(9, bright))
	require.NoError(t, scene.Build())
	require.True(t, scene.HasEmitters())

	rng := seqSampler{r: rand.New(rand.NewPCG(5, 6))}
	for i := 0; i < 50; i++ {
		sp := scene.SampleLight(rng)
		assert.InDelta(t, 9, sp.Point.Z, 1e-9, "every light sample must land on the emissive quad at z=9")
	}
}
