// Command pathtrace_demo renders a small Cornell-box-style scene with the
// Monte-Carlo path tracer and writes the result as a binary PPM to stdout.
// Scene construction is programmatic, matching the library's "no scene
// file format" surface: there is nothing here to parse.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"pathtracer/internal/estimator"
	"pathtracer/internal/material"
	"pathtracer/internal/mesh"
	"pathtracer/internal/pathscene"
	"pathtracer/internal/render"
	"pathtracer/internal/vecmath"
)

func quad(v0, v1, v2, v3 vecmath.Vector3, mat material.Material, next mesh.PrimitiveHandle) []mesh.Triangle {
	return []mesh.Triangle{
		mesh.NewTriangle(v0, v2, v1, mat, next),
		mesh.NewTriangle(v0, v3, v2, mat, next+1),
	}
}

func buildScene() *pathscene.Scene {
	scene := pathscene.NewScene(vecmath.Zero)

	white := material.NewLambertian(vecmath.New(0.73, 0.73, 0.73), vecmath.Zero)
	red := material.NewLambertian(vecmath.New(0.65, 0.05, 0.05), vecmath.Zero)
	green := material.NewLambertian(vecmath.New(0.12, 0.45, 0.15), vecmath.Zero)
	light := material.NewLambertian(vecmath.Zero, vecmath.New(15, 15, 15))
	metal := material.NewPBR(vecmath.New(0.8, 0.8, 0.85), vecmath.Zero, 0.9, 0.25, 1.0)

	floor := quad(
		vecmath.New(-2, -2, 1), vecmath.New(2, -2, 1), vecmath.New(2, -2, 6), vecmath.New(-2, -2, 6),
		white, 0)
	ceiling := quad(
		vecmath.New(-2, 2, 1), vecmath.New(-2, 2, 6), vecmath.New(2, 2, 6), vecmath.New(2, 2, 1),
		white, 2)
	back := quad(
		vecmath.New(-2, -2, 6), vecmath.New(2, -2, 6), vecmath.New(2, 2, 6), vecmath.New(-2, 2, 6),
		white, 4)
	leftWall := quad(
		vecmath.New(-2, -2, 1), vecmath.New(-2, -2, 6), vecmath.New(-2, 2, 6), vecmath.New(-2, 2, 1),
		red, 6)
	rightWall := quad(
		vecmath.New(2, -2, 1), vecmath.New(2, 2, 1), vecmath.New(2, 2, 6), vecmath.New(2, -2, 6),
		green, 8)
	ceilingLight := quad(
		vecmath.New(-0.5, 1.99, 2.5), vecmath.New(-0.5, 1.99, 3.5), vecmath.New(0.5, 1.99, 3.5), vecmath.New(0.5, 1.99, 2.5),
		light, 10)
	box := quad(
		vecmath.New(-0.6, -2, 3), vecmath.New(0.6, -2, 3), vecmath.New(0.6, -0.8, 3), vecmath.New(-0.6, -0.8, 3),
		metal, 12)

	scene.AddModel(pathscene.NewModel(floor, white))
	scene.AddModel(pathscene.NewModel(ceiling, white))
	scene.AddModel(pathscene.NewModel(back, white))
	scene.AddModel(pathscene.NewModel(leftWall, red))
	scene.AddModel(pathscene.NewModel(rightWall, green))
	scene.AddModel(pathscene.NewModel(ceilingLight, light))
	scene.AddModel(pathscene.NewModel(box, metal))

	return scene
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pathtrace_demo: logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	scene := buildScene()
	if err := scene.Build(); err != nil {
		sugar.Fatalw("scene build failed", "error", err)
	}

	cam := render.Camera{
		Eye:        vecmath.New(0, 0, -3.2),
		Width:      320,
		Height:     240,
		FOVDegrees: 54,
		MirrorX:    true,
	}
	cfg := render.Config{
		Width:           cam.Width,
		Height:          cam.Height,
		FOVDegrees:      cam.FOVDegrees,
		Background:      vecmath.Zero,
		Strategy:        estimator.NewMaximumBounces(6),
		SamplesPerPixel: 32,
		WorkerCount:     8,
		Seed:            1,
	}
	fb := render.NewFramebuffer(cam.Width, cam.Height)

	trace := func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error) {
		ray := cam.Ray(x, y)
		hit, err := scene.Intersect(ray)
		if err != nil {
			return vecmath.Zero, err
		}
		if !hit.Hit {
			return scene.Background(), nil
		}
		return estimatorShade(scene, rng, hit, ray.Direction, cfg.Strategy)
	}

	if err := render.Render(cfg, fb, trace, sugar); err != nil {
		sugar.Fatalw("render failed", "error", err)
	}

	if err := fb.WritePPM(os.Stdout); err != nil {
		sugar.Fatalw("ppm encode failed", "error", err)
	}
	sugar.Infow("pathtrace_demo: render complete", "width", cam.Width, "height", cam.Height)
}

func estimatorShade(scene *pathscene.Scene, rng *vecmath.RNG, hit mesh.Intersection, viewDir vecmath.Vector3, strategy estimator.Strategy) (vecmath.Vector3, error) {
	return estimator.Shade(scene, rng, hit, vecmath.Negate(viewDir), 0, strategy)
}
