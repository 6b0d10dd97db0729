// Package sdf implements the analytic signed-distance primitives and the
// CSG operator-chain scene graph the ray marcher evaluates. Every Shape's
// distance function is Lipschitz-1 (|grad sdf| <= 1 in the valid domain) so
// sphere tracing converges.
package sdf

import (
	"math"

	"pathtracer/internal/vecmath"
)

// Shape is a closed-form signed distance function over R^3.
type Shape interface {
	Distance(p vecmath.Vector3) float64
}

// Sphere is centered at Center with the given Radius.
type Sphere struct {
	Center vecmath.Vector3
	Radius float64
}

func (s Sphere) Distance(p vecmath.Vector3) float64 {
	return vecmath.Length(vecmath.Sub(p, s.Center)) - s.Radius
}

// Cube is an axis-aligned box centered at Center with half-extents
// HalfSize.
type Cube struct {
	Center   vecmath.Vector3
	HalfSize vecmath.Vector3
}

func (c Cube) Distance(p vecmath.Vector3) float64 {
	local := vecmath.Sub(p, c.Center)
	q := vecmath.New(
		math.Abs(local.X)-c.HalfSize.X,
		math.Abs(local.Y)-c.HalfSize.Y,
		math.Abs(local.Z)-c.HalfSize.Z,
	)
	outside := vecmath.Length(vecmath.Max(q, vecmath.Zero))
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

// CubeFrame is the wireframe of a box: its twelve edges as bars of
// thickness Thickness, with open faces.
type CubeFrame struct {
	Center    vecmath.Vector3
	HalfSize  vecmath.Vector3
	Thickness float64
}

func (c CubeFrame) Distance(p vecmath.Vector3) float64 {
	local := vecmath.Sub(p, c.Center)
	px, py, pz := math.Abs(local.X)-c.HalfSize.X, math.Abs(local.Y)-c.HalfSize.Y, math.Abs(local.Z)-c.HalfSize.Z
	qx, qy, qz := math.Abs(px+c.Thickness)-c.Thickness, math.Abs(py+c.Thickness)-c.Thickness, math.Abs(pz+c.Thickness)-c.Thickness

	d1 := boxEdge(vecmath.New(px, qy, qz))
	d2 := boxEdge(vecmath.New(qx, py, qz))
	d3 := boxEdge(vecmath.New(qx, qy, pz))
	return math.Min(d1, math.Min(d2, d3))
}

func boxEdge(q vecmath.Vector3) float64 {
	outside := vecmath.Length(vecmath.Max(q, vecmath.Zero))
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

// Torus lies in the local XZ plane, with MajorRadius the ring radius and
// MinorRadius the tube radius.
type Torus struct {
	Center      vecmath.Vector3
	MajorRadius float64
	MinorRadius float64
}

func (t Torus) Distance(p vecmath.Vector3) float64 {
	local := vecmath.Sub(p, t.Center)
	qx := math.Hypot(local.X, local.Z) - t.MajorRadius
	return math.Hypot(qx, local.Y) - t.MinorRadius
}

// DeathStar is a sphere with a smaller spherical cavity subtracted, offset
// along Y by HoleOffset.
type DeathStar struct {
	Center     vecmath.Vector3
	Radius     float64
	HoleRadius float64
	HoleOffset float64
}

// Distance evaluates the two-sphere CSG profile in the (axial, radial)
// plane, axial along Y and radial the distance from the Y axis: a is the
// axial coordinate and b the radial coordinate of the circle where the
// outer sphere and the hole sphere intersect, and the near-rim branch
// returns the exact Euclidean distance to that intersection circle rather
// than the max(sphere, -hole) CSG approximation, which is wrong in the rim
// neighborhood.
func (d DeathStar) Distance(p vecmath.Vector3) float64 {
	local := vecmath.Sub(p, d.Center)
	ra, rb, hd := d.Radius, d.HoleRadius, d.HoleOffset

	axial := local.Y
	radial := math.Hypot(local.X, local.Z)

	a := (ra*ra - rb*rb + hd*hd) / (2 * hd)
	b := math.Sqrt(math.Max(ra*ra-a*a, 0))

	if axial*b-radial*a > hd*math.Max(b-radial, 0) {
		return math.Hypot(axial-a, radial-b)
	}
	return math.Max(vecmath.Length(local)-ra, -(math.Hypot(axial-hd, radial)-rb))
}

// Helix is an infinite, periodic helical tube of radius Radius wound
// around the Y axis with axial rise Pitch per full turn, evaluated via the
// closed-form nearest-point-on-helix-line projection (no sampling, no
// Turns bound: the projection is exact and naturally periodic).
type Helix struct {
	Center     vecmath.Vector3
	Radius     float64
	Pitch      float64
	TubeRadius float64
}

// Distance projects p onto the helix's tangent line in the unrolled
// (axial, arc-length) plane, rounds to the nearest full turn, and maps the
// rounded point back onto the 3D curve before taking the Euclidean
// distance to it.
func (h Helix) Distance(p vecmath.Vector3) float64 {
	local := vecmath.Sub(p, h.Center)
	const tau = 2 * math.Pi
	r1 := h.Radius

	nLineX, nLineY := h.Pitch, tau*r1
	pLineX, pLineY := nLineY, -nLineX
	repeat := nLineX * nLineY

	angle := math.Atan2(local.Z, local.X)
	pcX, pcY := local.Y, r1*angle

	ppX := pcX*pLineX + pcY*pLineY
	ppY := pcX*nLineX + pcY*nLineY
	ppX = math.Round(ppX/repeat) * repeat

	qcDenom := nLineX*nLineX + nLineY*nLineY
	qcX := (nLineX*ppY + pLineX*ppX) / qcDenom
	qcY := (nLineY*ppY + pLineY*ppX) / qcDenom / r1

	q := vecmath.New(math.Cos(qcY)*r1, qcX, math.Sin(qcY)*r1)
	return vecmath.Length(vecmath.Sub(local, q)) - h.TubeRadius - 1e-4
}
