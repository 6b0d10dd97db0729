package sdfscene

import (
	"math"

	"pathtracer/internal/material"
	"pathtracer/internal/vecmath"
)

const shadowMaxDistance = 100.0

// checkerboardAlbedo overrides the ground's albedo with a checkerboard of
// unit squares in world-space XZ, alternating between the base albedo and
// 0.2 times it, per §6's
// "SDF renderer applies checkerboard albedo override" to the marked ground.
func checkerboardAlbedo(p vecmath.Vector3, base vecmath.Vector3) vecmath.Vector3 {
	cx := math.Mod(math.Floor(p.X), 2)
	cz := math.Mod(math.Floor(p.Z), 2)
	if cx < 0 {
		cx += 2
	}
	if cz < 0 {
		cz += 2
	}
	if math.Mod(cx+cz, 2) == 0 {
		return base
	}
	return vecmath.Scale(base, 0.2)
}

// Shade evaluates PBR shading at a march hit: direct lighting via the
// directional light with a shadow march, plus a single reflection bounce
// for metallic materials (Metallic > 0, at depth 0 only) blended in by
// Metallic*(1-Roughness), and the scene's ambient term folded in by
// material.DirectPBR.
func (s *Scene) Shade(hit MarchHit, viewDir vecmath.Vector3, depth int) vecmath.Vector3 {
	if !hit.Hit {
		return s.Background
	}

	n := s.Normal(hit.Point, hit.Root)
	mat := s.Arena.MaterialAt(hit.Root)
	if s.HasGround && hit.Root == s.Ground {
		mat.Albedo = checkerboardAlbedo(hit.Point, mat.Albedo)
	}

	wi := vecmath.Normalize(vecmath.Negate(s.Light.Direction))
	wo := vecmath.Normalize(vecmath.Negate(viewDir))

	lit := s.Light.Radiance
	if s.inShadow(hit.Point, wi) {
		lit = vecmath.Zero
	}

	color := material.DirectPBR(mat, wi, wo, n, lit)

	if depth < 1 && mat.Metallic > 0 {
		reflectDir := vecmath.Reflect(viewDir, n)
		reflectOrigin := vecmath.Add(hit.Point, vecmath.Scale(n, 2*MarchAccuracy))
		reflectRay := vecmath.NewRay(reflectOrigin, reflectDir)
		reflectHit := s.March(reflectRay, shadowMaxDistance)
		reflected := s.Shade(reflectHit, reflectDir, depth+1)
		color = vecmath.Lerp(color, reflected, mat.Metallic*(1-mat.Roughness))
	}

	return color
}

// inShadow casts a shadow ray from p toward the light direction and reports
// whether it hits scene geometry before clearing shadowMaxDistance.
func (s *Scene) inShadow(p, wi vecmath.Vector3) bool {
	origin := vecmath.Add(p, vecmath.Scale(wi, 2*MarchAccuracy))
	ray := vecmath.NewRay(origin, wi)
	shadowHit := s.March(ray, shadowMaxDistance)
	return shadowHit.Hit
}
