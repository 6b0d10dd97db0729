package mesh

import (
	"pathtracer/internal/bounds"
	"pathtracer/internal/vecmath"
)

// Object is the unified contract the BVH traverses: any primitive (a
// Triangle, or an aggregate like Model) exposes its bounds, its aggregate
// surface area, a ray intersection, and an area-weighted sample.
type Object interface {
	Bounds() bounds.AABB
	SurfaceArea() float64
	Intersect(r vecmath.Ray) Intersection
	Sample(rng AreaSampler) SamplePoint
}

// Bounds returns the tightest AABB containing the triangle's three
// vertices.
func (t Triangle) Bounds() bounds.AABB {
	b := bounds.FromPoints(t.V0, t.V1)
	return bounds.UnionPoint(b, t.V2)
}

// SurfaceArea returns the triangle's precomputed area.
func (t Triangle) SurfaceArea() float64 {
	return t.Area
}
