// Package material implements the renderer's BRDFs as a tagged variant, not
// an open capability hierarchy: every shading call dispatches on Kind rather
// than through an interface per-variant.
package material

import (
	"math"

	"pathtracer/internal/vecmath"
)

type Kind int

const (
	Lambertian Kind = iota
	PBR
)

const emissionEpsilon = 1e-6

// Material is a sum type over {Lambertian(albedo, emission),
// PBR(albedo, emission, metallic, roughness, ao)}. Only the fields relevant
// to Kind are meaningful; constructors zero the rest.
type Material struct {
	Kind      Kind
	Albedo    vecmath.Vector3
	Emission  vecmath.Vector3
	Metallic  float64
	Roughness float64
	AO        float64
}

func NewLambertian(albedo, emission vecmath.Vector3) Material {
	return Material{Kind: Lambertian, Albedo: albedo, Emission: emission}
}

func NewPBR(albedo, emission vecmath.Vector3, metallic, roughness, ao float64) Material {
	return Material{
		Kind:      PBR,
		Albedo:    albedo,
		Emission:  emission,
		Metallic:  metallic,
		Roughness: roughness,
		AO:        ao,
	}
}

// HasEmission reports whether the emission term's length exceeds epsilon.
func (m Material) HasEmission() bool {
	return vecmath.Length(m.Emission) > emissionEpsilon
}

// Eval evaluates the BRDF f_r(wi, wo, n). wi and wo are unit directions
// pointing away from the surface (toward the incoming light and toward the
// viewer, respectively); n is the unit shading normal.
func (m Material) Eval(wi, wo, n vecmath.Vector3) vecmath.Vector3 {
	switch m.Kind {
	case PBR:
		return pbrEval(m, wi, wo, n)
	default:
		return lambertianEval(m, wo, n)
	}
}

// Sample draws a world-space direction from the material's importance
// sampling strategy given the outgoing direction wo and shading normal n.
func (m Material) Sample(rng RNG, wo, n vecmath.Vector3) vecmath.Vector3 {
	switch m.Kind {
	case PBR:
		return cosineWeightedHemisphere(rng, n)
	default:
		return uniformHemisphere(rng, n)
	}
}

// PDF returns the sampling density for a previously-drawn direction wi.
func (m Material) PDF(wi, wo, n vecmath.Vector3) float64 {
	switch m.Kind {
	case PBR:
		if vecmath.Dot(n, wi) <= 0 {
			return 0
		}
		return vecmath.Dot(n, wi) / math.Pi
	default:
		if vecmath.Dot(n, wo) <= 0 {
			return 0
		}
		return 1 / (2 * math.Pi)
	}
}

// RNG is the minimal uniform-sampling surface the material package needs;
// satisfied by *vecmath.RNG without importing vecmath's RNG type directly
// into call sites that only need sampling.
type RNG interface {
	Vector2() (u1, u2 float64)
}

// lambertianEval returns albedo/pi when the outgoing direction is above the
// hemisphere, else zero.
func lambertianEval(m Material, wo, n vecmath.Vector3) vecmath.Vector3 {
	if vecmath.Dot(n, wo) <= 0 {
		return vecmath.Zero
	}
	return vecmath.Scale(m.Albedo, 1/math.Pi)
}

// uniformHemisphere draws a direction uniformly over the hemisphere about n.
// The source material's sampler is uniform-hemisphere while its pdf is
// 1/(2*pi); both are retained as a deliberate pairing (see spec's design
// notes) rather than upgraded to cosine-weighted sampling.
func uniformHemisphere(rng RNG, n vecmath.Vector3) vecmath.Vector3 {
	u1, u2 := rng.Vector2()
	z := u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	local := vecmath.New(r*math.Cos(phi), r*math.Sin(phi), z)
	return localToWorld(local, n)
}

// cosineWeightedHemisphere draws a direction with pdf = cos(theta)/pi, used
// by the PBR diffuse lobe's sampling strategy.
func cosineWeightedHemisphere(rng RNG, n vecmath.Vector3) vecmath.Vector3 {
	u1, u2 := rng.Vector2()
	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	local := vecmath.New(r*math.Cos(phi), r*math.Sin(phi), math.Sqrt(math.Max(0, 1-u1)))
	return localToWorld(local, n)
}

// localToWorld rotates a direction expressed in the local frame (z-up) about
// shading normal n into world space using an arbitrary orthonormal basis.
func localToWorld(local, n vecmath.Vector3) vecmath.Vector3 {
	var up vecmath.Vector3
	if math.Abs(n.X) > 0.9 {
		up = vecmath.New(0, 1, 0)
	} else {
		up = vecmath.New(1, 0, 0)
	}
	tangent := vecmath.Normalize(vecmath.Cross(up, n))
	bitangent := vecmath.Cross(n, tangent)
	return vecmath.Normalize(vecmath.Add(
		vecmath.Add(vecmath.Scale(tangent, local.X), vecmath.Scale(bitangent, local.Y)),
		vecmath.Scale(n, local.Z),
	))
}
