package manifest

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystal-ca/internal/sims/crystal"
)

func smallRun(t *testing.T) (crystal.Config, *crystal.Result) {
	t.Helper()
	cfg := crystal.DefaultConfig()
	cfg.Width, cfg.Height = 48, 32
	cfg.NSeeds = 4
	cfg.Seed = 321
	res, err := crystal.Generate(context.Background(), cfg)
	require.NoError(t, err)
	return cfg, res
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "out/crystals.yaml", SidecarPath("out/crystals.png"))
	assert.Equal(t, "image.yaml", SidecarPath("image"))
}

func TestNewRunIDIsUUIDv7(t *testing.T) {
	id, err := uuid.Parse(NewRunID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestManifestPinsSeeds(t *testing.T) {
	cfg, res := smallRun(t)
	m := New("run-1", cfg, res, "out.png", 1500*time.Millisecond)

	require.NotNil(t, m.Config.NoiseSeed)
	assert.Equal(t, res.NoiseSeed, *m.Config.NoiseSeed)
	assert.Equal(t, int64(321), m.Config.Seed)
	assert.Equal(t, "1.5s", m.Elapsed)
	assert.Len(t, m.Seeds, 4)
	assert.Nil(t, cfg.NoiseSeed, "caller config is not modified")
}

func TestManifestReplaysRun(t *testing.T) {
	cfg, res := smallRun(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, New(NewRunID(), cfg, res, "out.png", time.Second).Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, res.Stats, loaded.Stats)
	assert.Equal(t, "out.png", loaded.Output)
	require.Len(t, loaded.Seeds, len(res.Seeds))
	assert.Equal(t, res.Seeds[0].X, loaded.Seeds[0].X)

	replay, err := crystal.Generate(context.Background(), loaded.Config)
	require.NoError(t, err)
	if !slices.Equal(res.Raster.Cells(), replay.Raster.Cells()) {
		t.Fatal("manifest config must reproduce the raster")
	}
}

func TestLoadRejectsUnpinnedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run_id: x\nconfig:\n  seed: 4\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "no noise_seed")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read manifest")
}
