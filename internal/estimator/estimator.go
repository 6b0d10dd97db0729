package estimator

import (
	"pathtracer/internal/bvh"
	"pathtracer/internal/mesh"
	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

// HardDepthLimit is a defensive fatal: the estimator must not recurse
// infinitely. RussianRoulette terminates in expectation and MaximumBounces
// terminates by construction, so tripping this indicates a strategy
// misconfiguration, not ordinary noise.
const HardDepthLimit = 64

const shadowSlack = 1e-3

// Scene is the minimal surface the estimator needs from a path-traced
// scene: ray intersection and area-weighted light sampling.
type Scene interface {
	Intersect(r vecmath.Ray) (mesh.Intersection, error)
	HasEmitters() bool
	SampleLight(rng bvh.Sampler) mesh.SamplePoint
	Background() vecmath.Vector3
}

// RNG is the uniform-sampling surface the estimator needs.
type RNG interface {
	Float64() float64
	Vector2() (u1, u2 float64)
}

// Shade estimates the radiance leaving hit toward wo (the direction back to
// the viewer/previous vertex), at the given bounce depth, under strategy.
// This is the first-light-sample site: a scene with no emitters is an
// InvalidConfig, raised here rather than pushed further down the call
// stack, the moment direct lighting is actually invoked against it.
func Shade(scene Scene, rng RNG, hit mesh.Intersection, wo vecmath.Vector3, depth int, strategy Strategy) (vecmath.Vector3, error) {
	if depth >= HardDepthLimit {
		panic("estimator: exceeded hard depth limit; strategy is misconfigured")
	}

	if hit.Material.HasEmission() {
		return hit.Material.Emission, nil
	}

	n := hit.Normal
	direct, err := directLighting(scene, rng, hit, wo, n)
	if err != nil {
		return vecmath.Zero, err
	}
	indirect, err := indirectLighting(scene, rng, hit, wo, n, depth, strategy)
	if err != nil {
		return vecmath.Zero, err
	}

	return vecmath.Add(direct, indirect), nil
}

func directLighting(scene Scene, rng RNG, hit mesh.Intersection, wo, n vecmath.Vector3) (vecmath.Vector3, error) {
	if !scene.HasEmitters() {
		return vecmath.Zero, &rerr.InvalidConfig{Reason: "direct lighting invoked against a scene with an empty emissive set"}
	}

	light := scene.SampleLight(rng)
	toLight := vecmath.Sub(light.Point, hit.Point)
	lightDistSq := vecmath.LengthSquared(toLight)
	if lightDistSq <= 0 || light.Pdf <= 0 {
		return vecmath.Zero, nil
	}
	ws := vecmath.Normalize(toLight)

	cosTheta := vecmath.Dot(n, ws)
	cosThetaPrime := vecmath.Dot(light.Normal, vecmath.Negate(ws))
	if cosTheta <= 0 || cosThetaPrime <= 0 {
		return vecmath.Zero, nil
	}

	shadowOrigin := vecmath.Add(hit.Point, vecmath.Scale(n, 1e-4))
	shadowRay := vecmath.NewRay(shadowOrigin, ws)
	shadowHit, err := scene.Intersect(shadowRay)
	if err != nil {
		return vecmath.Zero, nil
	}
	if shadowHit.Hit && shadowHit.Distance*shadowHit.Distance <= lightDistSq-shadowSlack {
		return vecmath.Zero, nil // occluded before reaching the light
	}

	brdf := hit.Material.Eval(ws, wo, n)
	scale := cosTheta * cosThetaPrime / lightDistSq / light.Pdf
	return vecmath.Scale(vecmath.Mul(brdf, light.Emit), scale), nil
}

func indirectLighting(scene Scene, rng RNG, hit mesh.Intersection, wo, n vecmath.Vector3, depth int, strategy Strategy) (vecmath.Vector3, error) {
	decision := strategy.decide(depth, rng.Float64())
	if !decision.Continue {
		return vecmath.Zero, nil
	}

	wi := hit.Material.Sample(rng, vecmath.Negate(wo), n)
	pdf := hit.Material.PDF(wi, wo, n)
	if pdf <= 0 {
		return vecmath.Zero, nil
	}

	bounceOrigin := vecmath.Add(hit.Point, vecmath.Scale(n, 1e-4))
	bounceRay := vecmath.NewRay(bounceOrigin, wi)
	nextHit, err := scene.Intersect(bounceRay)
	if err != nil || !nextHit.Hit || nextHit.Material.HasEmission() {
		return vecmath.Zero, nil
	}

	incoming, err := Shade(scene, rng, nextHit, vecmath.Negate(wi), depth+1, strategy)
	if err != nil {
		return vecmath.Zero, err
	}
	brdf := hit.Material.Eval(wi, wo, n)
	cosTheta := vecmath.Dot(n, wi)
	if cosTheta <= 0 {
		return vecmath.Zero, nil
	}

	scale := cosTheta / pdf * decision.Weight
	return vecmath.Scale(vecmath.Mul(incoming, brdf), scale), nil
}
