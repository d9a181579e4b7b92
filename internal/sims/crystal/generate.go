package crystal

import (
	"context"

	"crystal-ca/internal/core"
	"crystal-ca/internal/noise"
)

// Result is the outcome of a generation run.
type Result struct {
	Raster *core.Raster
	Grid   *Grid
	Stats  Stats
	Seeds  []SeedCell

	Seed      int64
	NoiseSeed int64
}

// Generate validates cfg, seeds and grows a grid, and rasterizes it. The noise
// seed is always drawn first from the random source so that pinning it via
// cfg.NoiseSeed keeps the rest of the random sequence unchanged.
//
// An unsaturated grid returns the partial Result together with an
// *UnsaturatedError; Result.Raster is nil in that case. Cancelling ctx or a
// stalled seed placement (ErrSeedingStalled) returns a nil Result.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := core.NewRNG(cfg.Seed)
	noiseSeed := int64(rng.IntRange(0, noise.SeedRange))
	if cfg.NoiseSeed != nil {
		noiseSeed = *cfg.NoiseSeed
	}

	grid := NewGrid(cfg.Width, cfg.Height)
	opts = append([]Option{WithField(noise.New(noiseSeed))}, opts...)
	e := NewEngine(cfg, grid, rng, opts...)
	seeds, err := e.Seed(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Grid: grid, Stats: stats, Seeds: seeds, Seed: cfg.Seed, NoiseSeed: noiseSeed}
	raster, err := grid.Raster()
	if err != nil {
		return res, err
	}
	res.Raster = raster
	return res, nil
}
