// Package mesh implements the triangle primitive and the unified Object
// contract the BVH traverses.
package mesh

import (
	"math"

	"pathtracer/internal/material"
	"pathtracer/internal/vecmath"
)

const triangleEpsilon = 1e-9

// PrimitiveHandle is a stable, append-only-arena index identifying the
// primitive an Intersection hit. It replaces the shared-pointer
// cycles/weak-reference/global-registry schemes a naive port would reach
// for: a hit just carries an integer back to its owning triangle.
type PrimitiveHandle int

// Triangle is an immutable primitive: vertices, cached edges, face normal,
// and area are derived once at construction and never mutated afterward.
type Triangle struct {
	V0, V1, V2 vecmath.Vector3
	E1, E2     vecmath.Vector3
	Normal     vecmath.Vector3
	Area       float64
	Material   material.Material
	Handle     PrimitiveHandle
}

// NewTriangle constructs a Triangle from three vertices in source order,
// deriving edges, face normal, and area once.
func NewTriangle(v0, v1, v2 vecmath.Vector3, mat material.Material, handle PrimitiveHandle) Triangle {
	e1 := vecmath.Sub(v1, v0)
	e2 := vecmath.Sub(v2, v0)
	cross := vecmath.Cross(e1, e2)
	return Triangle{
		V0: v0, V1: v1, V2: v2,
		E1: e1, E2: e2,
		Normal:   vecmath.Normalize(cross),
		Area:     vecmath.Length(cross) / 2,
		Material: mat,
		Handle:   handle,
	}
}

// Intersection is the unified hit record produced by any Object. When Hit
// is false, every other field reads as its sentinel (Distance = +Inf).
type Intersection struct {
	Hit      bool
	Point    vecmath.Vector3
	Normal   vecmath.Vector3
	Distance float64
	Emit     vecmath.Vector3
	Primitive PrimitiveHandle
	Material  material.Material
}

func miss() Intersection {
	return Intersection{Distance: math.Inf(1)}
}

// Intersect implements Möller–Trumbore, back-face culled: a ray whose
// direction points into the same hemisphere as the face normal misses,
// which callers rely on for closed meshes.
func (t Triangle) Intersect(r vecmath.Ray) Intersection {
	if vecmath.Dot(r.Direction, t.Normal) > 0 {
		return miss()
	}

	pvec := vecmath.Cross(r.Direction, t.E2)
	det := vecmath.Dot(t.E1, pvec)
	if math.Abs(det) < triangleEpsilon {
		return miss()
	}
	invDet := 1 / det

	tvec := vecmath.Sub(r.Origin, t.V0)
	u := vecmath.Dot(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return miss()
	}

	qvec := vecmath.Cross(tvec, t.E1)
	v := vecmath.Dot(r.Direction, qvec) * invDet
	if v < 0 || u+v > 1 {
		return miss()
	}

	dist := vecmath.Dot(t.E2, qvec) * invDet
	if dist <= r.TMin || dist > r.TMax {
		return miss()
	}

	return Intersection{
		Hit:       true,
		Point:     r.At(dist),
		Normal:    t.Normal,
		Distance:  dist,
		Emit:      t.Material.Emission,
		Primitive: t.Handle,
		Material:  t.Material,
	}
}

// AreaSampler is the minimal uniform-sampling surface triangle sampling
// needs.
type AreaSampler interface {
	Vector2() (u1, u2 float64)
}

// SamplePoint is a point drawn from a primitive's surface, used by area
// light sampling. Pdf is with respect to surface area (1/area for a single
// triangle; the BVH rescales it across the full emissive set).
type SamplePoint struct {
	Point     vecmath.Vector3
	Normal    vecmath.Vector3
	Pdf       float64
	Emit      vecmath.Vector3
	Primitive PrimitiveHandle
	Material  material.Material
}

// Sample draws a uniform point on the triangle's surface via the standard
// sqrt(u1) parameterization: x = sqrt(u1); point =
// (1-x)v0 + x(1-u2)v1 + x*u2*v2.
func (t Triangle) Sample(rng AreaSampler) SamplePoint {
	u1, u2 := rng.Vector2()
	x := math.Sqrt(u1)
	point := vecmath.Add(
		vecmath.Add(vecmath.Scale(t.V0, 1-x), vecmath.Scale(t.V1, x*(1-u2))),
		vecmath.Scale(t.V2, x*u2),
	)
	return SamplePoint{
		Point:     point,
		Normal:    t.Normal,
		Pdf:       1 / t.Area,
		Emit:      t.Material.Emission,
		Primitive: t.Handle,
		Material:  t.Material,
	}
}
