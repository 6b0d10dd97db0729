package render_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"pathtracer/internal/estimator"
	"pathtracer/internal/render"
	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

func validConfig() render.Config {
	return render.Config{
		Width:           4,
		Height:          4,
		FOVDegrees:      60,
		Strategy:        estimator.NewMaximumBounces(2),
		SamplesPerPixel: 1,
		WorkerCount:     2,
		Seed:            1,
	}
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Width = 0
	fb := render.NewFramebuffer(1, 1)

	err := render.Render(cfg, fb, func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error) {
		return vecmath.Zero, nil
	}, nil)

	var invalid *rerr.InvalidConfig
	assert.ErrorAs(t, err, &invalid)
}

func TestRenderRejectsNilFramebuffer(t *testing.T) {
	err := render.Render(validConfig(), nil, func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error) {
		return vecmath.Zero, nil
	}, nil)

	assert.ErrorIs(t, err, rerr.NoFramebuffer{})
}

func TestRenderFillsEveryPixel(t *testing.T) {
	cfg := validConfig()
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)

	err := render.Render(cfg, fb, func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error) {
		return vecmath.New(float64(x), float64(y), 0), nil
	}, nil)
	require.NoError(t, err)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := fb.Mean(x, y)
			assert.InDelta(t, float64(x), c.X, 1e-9)
			assert.InDelta(t, float64(y), c.Y, 1e-9)
		}
	}
}

// A failing band must not cancel its siblings, and every band that fails
// contributes its own error to the aggregate rather than only the first.
func TestRenderAggregatesErrorsAcrossBands(t *testing.T) {
	cfg := validConfig()
	cfg.WorkerCount = 4
	cfg.Height = 4
	fb := render.NewFramebuffer(cfg.Width, cfg.Height)

	boom := errors.New("boom")
	err := render.Render(cfg, fb, func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error) {
		return vecmath.Zero, boom
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 4, len(multierr.Errors(err)))
}
