package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystal-ca/internal/noise"
	"crystal-ca/internal/sims/crystal"
)

func TestDensityMaskConstantField(t *testing.T) {
	cfg := crystal.DefaultConfig()
	cfg.Width, cfg.Height = 4, 3
	cfg.NoiseImportance = 2

	mask := DensityMask(noise.Constant(0), cfg)
	require.Len(t, mask, 12)
	for _, v := range mask {
		assert.InDelta(t, 0.25, v, 1e-6)
	}

	cfg.NoiseImportance = 0
	for _, v := range DensityMask(noise.Constant(-1), cfg) {
		assert.InDelta(t, 1, v, 1e-6, "importance 0 disables the bias")
	}
}

func TestDensityMaskInUnitRange(t *testing.T) {
	cfg := crystal.DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.NoiseScale = 0.1
	for _, v := range DensityMask(noise.New(7), cfg) {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestStatsLines(t *testing.T) {
	assert.Nil(t, StatsLines(nil))

	res := &crystal.Result{Seed: 5, NoiseSeed: 17, Stats: crystal.Stats{Seeds: 3, Rounds: 4}}
	lines := StatsLines(res)
	assert.Contains(t, lines, "noise seed  17")
	assert.Contains(t, lines, "rounds      4")
}
