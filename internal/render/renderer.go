package render

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

// PixelFunc computes the radiance for one sample at pixel (x, y) using a
// worker-local RNG. It must be pure and allocation-light: the estimator and
// intersection routines underneath never take locks, so no PixelFunc may
// either. An error return aborts that pixel's remaining samples and the
// rest of its band, but lets sibling bands keep running to completion.
type PixelFunc func(x, y int, rng *vecmath.RNG) (vecmath.Vector3, error)

// Render runs the tile policy (§5): the image is partitioned into
// cfg.WorkerCount horizontal bands, each worker owns its own PRNG seeded
// from cfg.Seed plus its worker id, and writes only its own framebuffer
// rows — no synchronization is needed on the writes themselves. Every
// band's goroutine always returns nil to errgroup so one band's failure
// never cancels its siblings; failures across every band are instead
// aggregated with multierr, so a systemic failure (e.g. the same
// InvalidConfig tripped in every band) is reported once per band rather
// than silently collapsed to a single occurrence.
func Render(cfg Config, fb *Framebuffer, trace PixelFunc, logger *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if fb == nil {
		return rerr.NoFramebuffer{}
	}

	bands := splitBands(fb.Height, cfg.WorkerCount)

	var mu sync.Mutex
	var combined error

	g := new(errgroup.Group)
	for workerID, b := range bands {
		workerID, b := workerID, b
		g.Go(func() error {
			rng := vecmath.NewRNG(cfg.Seed, workerID)
			if err := renderBand(cfg, fb, b, rng, trace); err != nil {
				mu.Lock()
				combined = multierr.Append(combined, err)
				mu.Unlock()
				return nil
			}
			if logger != nil {
				logger.Debugw("render: tile complete", "worker", workerID, "yStart", b.yStart, "yEnd", b.yEnd)
			}
			return nil
		})
	}
	_ = g.Wait() // every goroutine above always returns nil; errors travel via combined

	return combined
}

type band struct {
	yStart, yEnd int
}

// splitBands partitions [0, height) into up to workerCount contiguous,
// roughly equal horizontal bands. Never produces more bands than rows.
func splitBands(height, workerCount int) []band {
	if workerCount > height {
		workerCount = height
	}
	bands := make([]band, 0, workerCount)
	base := height / workerCount
	remainder := height % workerCount
	y := 0
	for i := 0; i < workerCount; i++ {
		size := base
		if i < remainder {
			size++
		}
		bands = append(bands, band{yStart: y, yEnd: y + size})
		y += size
	}
	return bands
}

func renderBand(cfg Config, fb *Framebuffer, b band, rng *vecmath.RNG, trace PixelFunc) error {
	for y := b.yStart; y < b.yEnd; y++ {
		for x := 0; x < cfg.Width; x++ {
			var sum vecmath.Vector3
			for s := 0; s < cfg.SamplesPerPixel; s++ {
				c, err := trace(x, y, rng)
				if err != nil {
					return err
				}
				sum = vecmath.Add(sum, c)
			}
			mean := vecmath.Scale(sum, 1/float64(cfg.SamplesPerPixel))
			fb.Set(x, y, mean, Overwrite)
		}
	}
	return nil
}
