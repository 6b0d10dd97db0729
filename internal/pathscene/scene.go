package pathscene

import (
	"pathtracer/internal/bvh"
	"pathtracer/internal/mesh"
	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

// Scene owns a list of Models and the top-level BVH built over them. No
// further models may be added after Build.
type Scene struct {
	models      []*Model
	topBVH      *bvh.Tree
	emissiveBVH *bvh.Tree
	built       bool
	background  vecmath.Vector3
}

func NewScene(background vecmath.Vector3) *Scene {
	return &Scene{background: background}
}

// AddModel registers a model with the scene. Must be called before Build.
func (s *Scene) AddModel(m *Model) {
	s.models = append(s.models, m)
}

// Build constructs the top-level BVH over all models and a second BVH
// restricted to the emissive subset, used by direct-light sampling.
func (s *Scene) Build() error {
	objs := make([]mesh.Object, len(s.models))
	var emissive []mesh.Object
	for i, m := range s.models {
		objs[i] = m
		if m.HasEmission() {
			emissive = append(emissive, m)
		}
	}
	s.topBVH = bvh.Build(objs)
	if len(emissive) > 0 {
		s.emissiveBVH = bvh.Build(emissive)
	}
	s.built = true
	return nil
}

// Built reports whether Build has been called.
func (s *Scene) Built() bool {
	return s.built
}

// Background returns the scene's background radiance, returned on a
// primary-ray miss (not an error).
func (s *Scene) Background() vecmath.Vector3 {
	return s.background
}

// Intersect casts r against the top-level BVH. Returns SceneNotBuilt if
// called before Build.
func (s *Scene) Intersect(r vecmath.Ray) (mesh.Intersection, error) {
	if !s.built {
		return mesh.Intersection{}, rerr.SceneNotBuilt{}
	}
	return s.topBVH.Intersect(r), nil
}

// HasEmitters reports whether the scene contains any emissive model.
func (s *Scene) HasEmitters() bool {
	return s.emissiveBVH != nil
}

// SampleLight draws an area-weighted point from the emissive subset. The
// caller must check HasEmitters first: internal/estimator raises
// InvalidConfig at its first-light-sample site when direct lighting would
// need to sample an empty emissive set (§7).
func (s *Scene) SampleLight(rng bvh.Sampler) mesh.SamplePoint {
	return s.emissiveBVH.Sample(rng)
}
