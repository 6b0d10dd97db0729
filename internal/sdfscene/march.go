package sdfscene

import (
	"pathtracer/internal/sdf"
	"pathtracer/internal/vecmath"
)

const (
	MaxSteps       = 300
	MarchAccuracy  = 1e-3
	normalEpsilon  = 1e-3
)

// MarchHit is the result of sphere marching a ray against the scene.
type MarchHit struct {
	Hit      bool
	Point    vecmath.Vector3
	Distance float64
	Root     sdf.NodeRef
}

// March sphere-traces r against the scene up to maxDistance, taking steps
// equal to the current SDF value (a safe lower bound on distance to the
// nearest surface) for up to MaxSteps iterations.
func (s *Scene) March(r vecmath.Ray, maxDistance float64) MarchHit {
	t := 0.0
	for step := 0; step < MaxSteps; step++ {
		p := r.At(t)
		d, root := s.Distance(p)
		if d <= MarchAccuracy {
			return MarchHit{Hit: true, Point: p, Distance: t, Root: root}
		}
		t += d
		if t >= maxDistance {
			return MarchHit{}
		}
	}
	return MarchHit{}
}

// Normal computes the surface normal at p via central differences against
// the specific root chain's distance function, with step h = normalEpsilon.
// The raw central difference is divided by 2h to renormalize — omitting
// that division is a common porting bug this implementation avoids.
func (s *Scene) Normal(p vecmath.Vector3, root sdf.NodeRef) vecmath.Vector3 {
	h := normalEpsilon
	dx := s.Arena.Distance(root, vecmath.Add(p, vecmath.New(h, 0, 0))) -
		s.Arena.Distance(root, vecmath.Sub(p, vecmath.New(h, 0, 0)))
	dy := s.Arena.Distance(root, vecmath.Add(p, vecmath.New(0, h, 0))) -
		s.Arena.Distance(root, vecmath.Sub(p, vecmath.New(0, h, 0)))
	dz := s.Arena.Distance(root, vecmath.Add(p, vecmath.New(0, 0, h))) -
		s.Arena.Distance(root, vecmath.Sub(p, vecmath.New(0, 0, h)))

	grad := vecmath.Scale(vecmath.New(dx, dy, dz), 1/(2*h))
	return vecmath.Normalize(grad)
}
