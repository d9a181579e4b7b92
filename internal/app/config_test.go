package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystal-ca/internal/sims/crystal"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(args))
	return cfg
}

func TestResolveDefaults(t *testing.T) {
	cc, err := parse(t).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 400, cc.Width)
	assert.Equal(t, 300, cc.Height)
	assert.Equal(t, crystal.DefaultConfig().LatencyMax, cc.LatencyMax)
}

func TestResolveFlags(t *testing.T) {
	cfg := parse(t, "--scale", "4", "--width", "64", "--seeds", "5", "--mut-prob", "0.5")
	cc, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, 64, cc.Width)
	assert.Equal(t, 5, cc.NSeeds)
	assert.Equal(t, 0.5, cc.MutProb)
}

func TestResolveFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 50\nheight: 40\nseeds: 3\n"), 0o644))

	cc, err := parse(t, "--config", path, "--seeds", "8").Resolve()
	require.NoError(t, err)
	assert.Equal(t, 50, cc.Width)
	assert.Equal(t, 40, cc.Height)
	assert.Equal(t, 8, cc.NSeeds)
}

func TestResolveRejectsBadValues(t *testing.T) {
	_, err := parse(t, "--scale", "0").Resolve()
	assert.Error(t, err)

	_, err = parse(t, "--latency-max", "0").Resolve()
	assert.ErrorIs(t, err, crystal.ErrInvalidConfig)

	_, err = parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")).Resolve()
	assert.Error(t, err)
}
