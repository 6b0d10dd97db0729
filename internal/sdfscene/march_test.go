package sdfscene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathtracer/internal/material"
	"pathtracer/internal/sdf"
	"pathtracer/internal/sdfscene"
	"pathtracer/internal/vecmath"
)

func unitSphereScene() *sdfscene.Scene {
	light := sdfscene.DirectionalLight{Direction: vecmath.New(0, -1, 0), Radiance: vecmath.New(1, 1, 1)}
	scene := sdfscene.NewScene(vecmath.New(0, 0, 0), light)
	mat := material.NewPBR(vecmath.New(0.8, 0.8, 0.8), vecmath.Zero, 0, 0.5, 1)
	scene.AddRoot(sdf.Node{Shape: sdf.Sphere{Center: vecmath.Zero, Radius: 1}, Op: sdf.Nop, Material: mat, Next: sdf.NoNext})
	return scene
}

func TestMarchHitsUnitSphere(t *testing.T) {
	scene := unitSphereScene()
	r := vecmath.NewRay(vecmath.New(0, 0, -10), vecmath.New(0, 0, 1))

	hit := scene.March(r, 100)
	require.True(t, hit.Hit)
	assert.InDelta(t, 9, hit.Distance, sdfscene.MarchAccuracy)
}

func TestMarchMissesWhenNothingInPath(t *testing.T) {
	scene := unitSphereScene()
	r := vecmath.NewRay(vecmath.New(0, 0, -10), vecmath.New(1, 0, 0))

	hit := scene.March(r, 100)
	assert.False(t, hit.Hit)
}

func TestNormalMatchesAnalyticOnSphere(t *testing.T) {
	scene := unitSphereScene()
	r := vecmath.NewRay(vecmath.New(0, 0, -10), vecmath.New(0, 0, 1))
	hit := scene.March(r, 100)
	require.True(t, hit.Hit)

	n := scene.Normal(hit.Point, hit.Root)
	analytic := vecmath.Normalize(vecmath.Sub(hit.Point, vecmath.Zero))

	assert.InDelta(t, analytic.X, n.X, 1e-2)
	assert.InDelta(t, analytic.Y, n.Y, 1e-2)
	assert.InDelta(t, analytic.Z, n.Z, 1e-2)
}

func TestShadeBackgroundOnMiss(t *testing.T) {
	scene := unitSphereScene()
	color := scene.Shade(sdfscene.MarchHit{}, vecmath.New(0, 0, 1), 0)
	assert.Equal(t, scene.Background, color)
}
