package crystal

import (
	"context"
	"fmt"
	"math"

	"crystal-ca/internal/noise"
)

// ErrSeedingStalled reports that seed placement gave up because almost no cell
// was accepted. It wraps ErrInvalidConfig: the noise settings leave the
// acceptance probability at or near zero.
var ErrSeedingStalled = fmt.Errorf("%w: seed placement stalled", ErrInvalidConfig)

const (
	// minSeedAttempts is the smallest per-seed attempt budget.
	minSeedAttempts = 1 << 20
	// seedAttemptsPerCell scales the budget with the grid so the last seeds
	// of a nearly full grid can still find their cell.
	seedAttemptsPerCell = 16
	ctxCheckInterval    = 1024
)

// SeedCell records where a seed crystal was placed.
type SeedCell struct {
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Crystal *Crystal `yaml:"-"`
}

// Seed places cfg.NSeeds crystals at distinct empty cells by rejection
// sampling against the engine's noise field, and schedules each one's growth
// at tick zero. Denser regions of the field accept more often, so seeds
// cluster.
//
// Each seed gets a bounded number of attempts; exceeding it returns
// ErrSeedingStalled together with the seeds placed so far.
func (e *Engine) Seed(ctx context.Context) ([]SeedCell, error) {
	field := e.field
	if field == nil {
		field = noise.Constant(1)
	}
	size := e.grid.Size()
	budget := max(minSeedAttempts, seedAttemptsPerCell*size.Area())
	maxSpeed := float64(e.cfg.LatencyMax)
	seeds := make([]SeedCell, 0, e.cfg.NSeeds)
	attempts := 0
	for len(seeds) < e.cfg.NSeeds {
		if attempts%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				e.recordSeeds(seeds)
				return seeds, err
			}
		}
		if attempts == budget {
			e.recordSeeds(seeds)
			return seeds, fmt.Errorf("%w: seed %d of %d not accepted after %d attempts",
				ErrSeedingStalled, len(seeds)+1, e.cfg.NSeeds, attempts)
		}
		attempts++

		x := e.rng.IntN(size.W)
		y := e.rng.IntN(size.H)
		if e.grid.Occupied(x, y) {
			continue
		}
		density := noise.Density(field.Eval(float64(x)*e.cfg.NoiseScale, float64(y)*e.cfg.NoiseScale))
		if e.rng.Float64() > math.Pow(density, e.cfg.NoiseImportance) {
			continue
		}
		c := NewCrystal(maxSpeed, e.cfg, e.rng)
		e.Propagate(c, x, y, 0)
		e.grid.Place(x, y, c)
		seeds = append(seeds, SeedCell{X: x, Y: y, Crystal: c})
		attempts = 0
	}
	e.recordSeeds(seeds)
	e.log.Debug("seeds placed", "count", len(seeds), "pending", e.ring.Pending())
	return seeds, nil
}

func (e *Engine) recordSeeds(seeds []SeedCell) {
	e.stats.Seeds += len(seeds)
	e.stats.Crystals += len(seeds)
}
