// Package ui draws the viewer overlays and side panel.
package ui

import (
	"fmt"
	"math"

	"crystal-ca/internal/noise"
	"crystal-ca/internal/sims/crystal"
)

// DensityMask returns the seed acceptance probability of every cell in
// row-major order, as used by seed placement.
func DensityMask(field noise.Field, cfg crystal.Config) []float32 {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}
	mask := make([]float32, cfg.Width*cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			d := noise.Density(field.Eval(float64(x)*cfg.NoiseScale, float64(y)*cfg.NoiseScale))
			mask[y*cfg.Width+x] = float32(math.Pow(d, cfg.NoiseImportance))
		}
	}
	return mask
}

// StatsLines formats a run summary for the side panel.
func StatsLines(res *crystal.Result) []string {
	if res == nil {
		return nil
	}
	s := res.Stats
	return []string{
		fmt.Sprintf("seed        %d", res.Seed),
		fmt.Sprintf("noise seed  %d", res.NoiseSeed),
		fmt.Sprintf("seeds       %d", s.Seeds),
		fmt.Sprintf("crystals    %d", s.Crystals),
		fmt.Sprintf("mutations   %d", s.Mutations),
		fmt.Sprintf("rounds      %d", s.Rounds),
		fmt.Sprintf("ticks       %d", s.Ticks),
		fmt.Sprintf("wasted      %d", s.WastedRounds),
		fmt.Sprintf("discarded   %d", s.Discarded),
	}
}
