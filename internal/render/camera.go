package render

import (
	"math"

	"pathtracer/internal/vecmath"
)

// Camera generates primary rays for a pixel grid: half-pixel-centered NDC,
// aspect x tan(fov/2) scaling, cast from a fixed eye. MirrorX selects the
// path tracer's right-handed (-x, y, 1) convention versus the SDF
// renderer's (x, y, 1) convention — preserved exactly as the two engines
// differ, not unified, per the coordinate-convention design note.
type Camera struct {
	Eye          vecmath.Vector3
	Width        int
	Height       int
	FOVDegrees   float64
	MirrorX      bool
}

// Ray returns the primary ray through pixel (i, j), i across width and j
// down height, using a half-pixel-centered NDC sample.
func (c Camera) Ray(i, j int) vecmath.Ray {
	aspect := float64(c.Width) / float64(c.Height)
	scale := math.Tan(vecmath.Radians(c.FOVDegrees) / 2)

	ndcX := (float64(i)+0.5)/float64(c.Width)*2 - 1
	ndcY := 1 - (float64(j)+0.5)/float64(c.Height)*2

	x := ndcX * aspect * scale
	y := ndcY * scale

	if c.MirrorX {
		x = -x
	}

	dir := vecmath.Normalize(vecmath.New(x, y, 1))
	return vecmath.NewRay(c.Eye, dir)
}
