// Package bounds implements axis-aligned bounding boxes and the ray/AABB
// slab test used by the BVH. This is the only package permitted to use an
// epsilon guard for near-parallel rays; that numeric epsilon must not leak
// into the rest of the geometry pipeline.
package bounds

import (
	"math"

	"pathtracer/internal/vecmath"
)

const parallelEpsilon = 1e-9

// AABB is an axis-aligned box with PMin <= PMax componentwise. A
// default-constructed AABB (via Empty) is empty and union-absorbs any point
// or box without bias.
type AABB struct {
	PMin vecmath.Vector3
	PMax vecmath.Vector3
}

// Empty returns the identity AABB for Union: any union with it yields the
// other operand unchanged.
func Empty() AABB {
	inf := math.Inf(1)
	return AABB{
		PMin: vecmath.New(inf, inf, inf),
		PMax: vecmath.New(-inf, -inf, -inf),
	}
}

// FromPoints returns the tightest AABB containing both points.
func FromPoints(a, b vecmath.Vector3) AABB {
	return AABB{PMin: vecmath.Min(a, b), PMax: vecmath.Max(a, b)}
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{PMin: vecmath.Min(a.PMin, b.PMin), PMax: vecmath.Max(a.PMax, b.PMax)}
}

// UnionPoint returns the smallest AABB containing a and the point p.
func UnionPoint(a AABB, p vecmath.Vector3) AABB {
	return AABB{PMin: vecmath.Min(a.PMin, p), PMax: vecmath.Max(a.PMax, p)}
}

// Contains reports whether p lies within a (inclusive).
func (a AABB) Contains(p vecmath.Vector3) bool {
	return p.X >= a.PMin.X && p.X <= a.PMax.X &&
		p.Y >= a.PMin.Y && p.Y <= a.PMax.Y &&
		p.Z >= a.PMin.Z && p.Z <= a.PMax.Z
}

// Center returns (PMin+PMax)/2.
func (a AABB) Center() vecmath.Vector3 {
	return vecmath.Scale(vecmath.Add(a.PMin, a.PMax), 0.5)
}

// Diagonal returns PMax-PMin.
func (a AABB) Diagonal() vecmath.Vector3 {
	return vecmath.Sub(a.PMax, a.PMin)
}

// MaxExtentAxis returns the axis (0=X, 1=Y, 2=Z) along which the box is
// longest. Ties resolve to X over Y over Z.
func (a AABB) MaxExtentAxis() int {
	d := a.Diagonal()
	axis := 0
	best := d.X
	if d.Y > best {
		axis, best = 1, d.Y
	}
	if d.Z > best {
		axis = 2
	}
	return axis
}

// Intersect performs the slab test: for each axis, compute the entry/exit
// parametric distance, tracking the running intersection of all three axis
// intervals. A direction component with |d_i| <= epsilon is treated as
// parallel to that axis and the ray is rejected unless the origin already
// lies within the slab on that axis.
func (a AABB) Intersect(r vecmath.Ray) bool {
	tEnter := r.TMin
	tExit := r.TMax

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Component(axis)
		d := r.Direction.Component(axis)
		lo := a.PMin.Component(axis)
		hi := a.PMax.Component(axis)

		if math.Abs(d) <= parallelEpsilon {
			if o < lo || o > hi {
				return false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return false
		}
	}

	return tExit >= math.Max(tEnter, 0)
}
