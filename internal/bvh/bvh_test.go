package bvh_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathtracer/internal/bvh"
	"pathtracer/internal/material"
	"pathtracer/internal/mesh"
	"pathtracer/internal/vecmath"
)

func triangleGrid(n int) []mesh.Object {
	mat := material.NewLambertian(vecmath.New(0.8, 0.8, 0.8), vecmath.Zero)
	objs := make([]mesh.Object, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 2
		v0 := vecmath.New(x, 0, 0)
		v1 := vecmath.New(x+1, 0, 0)
		v2 := vecmath.New(x, 1, 0)
		objs = append(objs, mesh.NewTriangle(v0, v1, v2, mat, mesh.PrimitiveHandle(i)))
	}
	return objs
}

func TestBuildBoundsContainEveryPrimitive(t *testing.T) {
	objs := triangleGrid(17)
	tree := bvh.Build(objs)
	root := tree.Root()

	var walk func(n *bvh.Node)
	walk = func(n *bvh.Node) {
		require.NotNil(t, n)
		if n.Leaf != nil {
			b := n.Leaf.Bounds()
			assert.True(t, n.Bounds.Contains(b.PMin))
			assert.True(t, n.Bounds.Contains(b.PMax))
			assert.True(t, root.Bounds.Contains(b.PMin))
			assert.True(t, root.Bounds.Contains(b.PMax))
			return
		}
		if n.Left != nil {
			walk(n.Left)
		}
		if n.Right != nil {
			walk(n.Right)
		}
	}
	walk(tree.Root())
}

func TestTotalAreaIsSumOfPrimitiveAreas(t *testing.T) {
	objs := triangleGrid(9)
	tree := bvh.Build(objs)

	var want float64
	for _, o := range objs {
		want += o.SurfaceArea()
	}
	assert.InDelta(t, want, tree.TotalArea(), 1e-9)
}

// scenario C: BVH traversal must agree with an exhaustive linear scan.
func TestIntersectAgreesWithLinearScan(t *testing.T) {
	objs := triangleGrid(33)
	tree := bvh.Build(objs)

	rng := rand.New(rand.NewPCG(7, 13))
	for i := 0; i < 200; i++ {
		origin := vecmath.New(rng.Float64()*70-5, -5, -1)
		dir := vecmath.New(0, rng.Float64()*2-0.2, rng.Float64()*2+0.1)
		r := vecmath.NewRay(origin, dir)

		var best mesh.Intersection
		best.Distance = math.Inf(1)
		for _, o := range objs {
			hit := o.Intersect(r)
			if hit.Hit && hit.Distance < best.Distance {
				best = hit
			}
		}

		got := tree.Intersect(r)
		assert.Equal(t, best.Hit, got.Hit)
		if best.Hit {
			assert.InDelta(t, best.Distance, got.Distance, 1e-9)
		}
	}
}

type seqSampler struct {
	r *rand.Rand
}

func (s seqSampler) Vector2() (float64, float64) { return s.r.Float64(), s.r.Float64() }

// BVH.Sample must converge so that mean(1/pdf) over many draws equals the
// tree's total surface area.
func TestSamplePdfConvergesToTotalArea(t *testing.T) {
	objs := triangleGrid(5)
	tree := bvh.Build(objs)

	rng := seqSampler{r: rand.New(rand.NewPCG(1, 2))}
	const n = 20000
	var sum float64
	for i := 0; i < n; i++ {
		sp := tree.Sample(rng)
		require.Greater(t, sp.Pdf, 0.0)
		sum += 1 / sp.Pdf
	}
	mean := sum / n
	assert.InDelta(t, tree.TotalArea(), mean, 1e-9)
}

func TestEmptyTreeIsAlwaysAMiss(t *testing.T) {
	tree := bvh.Build(nil)
	r := vecmath.NewRay(vecmath.New(0, 0, -10), vecmath.New(0, 0, 1))
	hit := tree.Intersect(r)
	assert.False(t, hit.Hit)
}
