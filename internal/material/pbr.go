package material

import (
	"math"

	"pathtracer/internal/vecmath"
)

const pbrEpsilon = 1e-4

// pbrEval implements the Cook-Torrance microfacet BRDF used by the SDF
// renderer's PBR shading: F0 = mix(0.04, albedo, metallic); D is GGX with
// alpha = roughness^2; G is Smith-Schlick-GGX with k = (r+1)^2/8; F is
// Schlick's approximation.
func pbrEval(m Material, wi, wo, n vecmath.Vector3) vecmath.Vector3 {
	nl := vecmath.Dot(n, wi)
	nv := vecmath.Dot(n, wo)
	if nl <= 0 || nv <= 0 {
		return vecmath.Zero
	}

	h := vecmath.Normalize(vecmath.Add(wi, wo))
	nh := math.Max(vecmath.Dot(n, h), 0)
	vh := math.Max(vecmath.Dot(wo, h), 0)

	f0 := vecmath.Lerp(vecmath.New(0.04, 0.04, 0.04), m.Albedo, m.Metallic)

	d := ggxDistribution(nh, m.Roughness)
	g := smithSchlickGGX(nv, m.Roughness) * smithSchlickGGX(nl, m.Roughness)
	f := schlickFresnel(vh, f0)

	specDenom := 4*math.Max(nv, 0)*math.Max(nl, 0) + pbrEpsilon
	specular := vecmath.Scale(f, d*g/specDenom)

	oneMinusF := vecmath.Sub(vecmath.New(1, 1, 1), f)
	diffuse := vecmath.Scale(vecmath.Mul(oneMinusF, m.Albedo), (1-m.Metallic)/math.Pi)

	return vecmath.Add(diffuse, specular)
}

// DirectPBR evaluates the full direct-lighting term used by the SDF
// renderer: (diffuse+specular)*L_i*max(n.l,0) + ambient, where
// ambient = 0.03*albedo*(1-ao).
func DirectPBR(m Material, wi, wo, n, lightRadiance vecmath.Vector3) vecmath.Vector3 {
	nl := math.Max(vecmath.Dot(n, wi), 0)
	brdf := pbrEval(m, wi, wo, n)
	direct := vecmath.Scale(vecmath.Mul(brdf, lightRadiance), nl)
	ambient := vecmath.Scale(m.Albedo, 0.03*(1-m.AO))
	return vecmath.Add(direct, ambient)
}

func ggxDistribution(nh, roughness float64) float64 {
	alpha := roughness * roughness
	alpha2 := alpha * alpha
	denom := nh*nh*(alpha2-1) + 1
	return alpha2 / (math.Pi * denom * denom)
}

func smithSchlickGGX(nDotV, roughness float64) float64 {
	r := roughness + 1
	k := (r * r) / 8
	return nDotV / (nDotV*(1-k) + k)
}

func schlickFresnel(cosTheta float64, f0 vecmath.Vector3) vecmath.Vector3 {
	scale := math.Pow(1-cosTheta, 5)
	return vecmath.Add(f0, vecmath.Scale(vecmath.Sub(vecmath.New(1, 1, 1), f0), scale))
}
