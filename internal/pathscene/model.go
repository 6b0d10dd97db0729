// Package pathscene assembles triangle models into the path tracer's scene:
// a list of Models, each backed by its own local BVH, aggregated under a
// single top-level BVH whose leaves are the Models themselves.
package pathscene

import (
	"pathtracer/internal/bounds"
	"pathtracer/internal/bvh"
	"pathtracer/internal/material"
	"pathtracer/internal/mesh"
	"pathtracer/internal/vecmath"
)

// Model is a triangle mesh sharing one material, with its own local BVH.
// It implements mesh.Object so the top-level BVH can treat a whole model as
// a single leaf primitive.
type Model struct {
	Triangles []mesh.Triangle
	Material  material.Material
	bounds    bounds.AABB
	area      float64
	localBVH  *bvh.Tree
}

// NewModel builds a Model from a flat triangle list sharing one material.
// The local BVH is built immediately; Models are immutable once built, same
// as the top-level scene BVH (§6: "no further models may be added after
// build" applies one level up, in Scene).
func NewModel(triangles []mesh.Triangle, mat material.Material) *Model {
	objs := make([]mesh.Object, len(triangles))
	b := bounds.Empty()
	var area float64
	for i, tri := range triangles {
		objs[i] = tri
		b = bounds.Union(b, tri.Bounds())
		area += tri.Area
	}
	return &Model{
		Triangles: triangles,
		Material:  mat,
		bounds:    b,
		area:      area,
		localBVH:  bvh.Build(objs),
	}
}

func (m *Model) Bounds() bounds.AABB {
	return m.bounds
}

func (m *Model) SurfaceArea() float64 {
	return m.area
}

func (m *Model) Intersect(r vecmath.Ray) mesh.Intersection {
	return m.localBVH.Intersect(r)
}

func (m *Model) Sample(rng mesh.AreaSampler) mesh.SamplePoint {
	return m.localBVH.Sample(rng)
}

// HasEmission reports whether this model's shared material emits.
func (m *Model) HasEmission() bool {
	return m.Material.HasEmission()
}
