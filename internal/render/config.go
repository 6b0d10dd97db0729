package render

import (
	"math"

	"pathtracer/internal/estimator"
	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

// Config is the renderer's programmatic configuration surface (§6). There
// is no CLI: callers build one of these directly.
type Config struct {
	Width, Height    int
	FOVDegrees       float64
	Background       vecmath.Vector3
	Strategy         estimator.Strategy
	SamplesPerPixel  int
	WorkerCount      int
	Seed             uint64
}

// Validate checks the invariants §7 classifies as InvalidConfig: non-finite
// fov, zero image dimensions. Emptiness of the emissive set is checked by
// internal/estimator at first-light-sample time, not here, since it only
// matters when direct lighting is actually invoked.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &rerr.InvalidConfig{Reason: "width and height must be positive"}
	}
	if math.IsNaN(c.FOVDegrees) || math.IsInf(c.FOVDegrees, 0) || c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return &rerr.InvalidConfig{Reason: "fov must be finite and within (0, 180) degrees"}
	}
	if c.SamplesPerPixel <= 0 {
		return &rerr.InvalidConfig{Reason: "samples_per_pixel must be positive"}
	}
	if c.WorkerCount <= 0 {
		return &rerr.InvalidConfig{Reason: "worker_count must be positive"}
	}
	return nil
}
