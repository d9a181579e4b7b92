package crystal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 1000, cfg.Height)
	assert.Equal(t, 10, cfg.LatencyMax)
	assert.Equal(t, 40, cfg.NSeeds)
	assert.Equal(t, FloatRange{Min: 1, Max: 2}, cfg.MinSpeed)
	assert.Equal(t, IntRange{Min: -30, Max: 30}, cfg.BrightMut)
	assert.Equal(t, IntRange{Min: -10, Max: 2}, cfg.LatencyMut)
	assert.Nil(t, cfg.NoiseSeed)
}

func TestFromMapAppliesAndIgnores(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":              "32",
		"height":         "16",
		"seeds":          "nope",
		"mut_prob":       "0.5",
		"bright_mut.min": "-5",
		"noise_seed":     "77",
		"unknown":        "1",
	})
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
	assert.Equal(t, 40, cfg.NSeeds, "unparsable values keep the default")
	assert.Equal(t, 0.5, cfg.MutProb)
	assert.Equal(t, -5, cfg.BrightMut.Min)
	require.NotNil(t, cfg.NoiseSeed)
	assert.Equal(t, int64(77), *cfg.NoiseSeed)

	assert.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestApplyReportsProblems(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorContains(t, cfg.Apply("colour", "red"), "unknown parameter")
	assert.ErrorContains(t, cfg.Apply("seeds", "many"), `parameter "seeds"`)
	require.NoError(t, cfg.Apply("latency_mut.max", "4"))
	assert.Equal(t, 4, cfg.LatencyMut.Max)
}

func TestWithKeepsReceiver(t *testing.T) {
	base := DefaultConfig()
	changed := base.With(map[string]string{"width": "8"}).WithNoiseSeed(3)
	assert.Equal(t, 1000, base.Width)
	assert.Nil(t, base.NoiseSeed)
	assert.Equal(t, 8, changed.Width)
	assert.Equal(t, int64(3), *changed.NoiseSeed)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":           func(c *Config) { c.Width = 0 },
		"latency too small":    func(c *Config) { c.LatencyMax = 0 },
		"latency too large":    func(c *Config) { c.LatencyMax = 256 },
		"negative seeds":       func(c *Config) { c.NSeeds = -1 },
		"too many seeds":       func(c *Config) { c.Width, c.Height, c.NSeeds = 2, 2, 5 },
		"empty brightness":     func(c *Config) { c.BrightMin = c.BrightMax },
		"bright overflow":      func(c *Config) { c.BrightMax = 300 },
		"bad min speed":        func(c *Config) { c.MinSpeed = FloatRange{Min: 0, Max: 1} },
		"negative importance":  func(c *Config) { c.NoiseImportance = -1 },
		"importance too large": func(c *Config) { c.NoiseImportance = MaxNoiseImportance + 1 },
		"mut prob above one":   func(c *Config) { c.MutProb = 1.5 },
		"empty bright mut":     func(c *Config) { c.BrightMut = IntRange{Min: 3, Max: 3} },
		"empty latency mut":    func(c *Config) { c.LatencyMut = IntRange{Min: 2, Max: -10} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateAcceptsImportanceBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseImportance = MaxNoiseImportance
	assert.NoError(t, cfg.Validate())
}

// Every leaf of the YAML form is a key Apply understands, so a config printed
// by `params --format yaml` can be replayed through --set.
func TestYAMLKeysAcceptedByApply(t *testing.T) {
	want := DefaultConfig().WithNoiseSeed(31)
	want.Width = 77
	want.Seed = 5
	want.MinSpeed = FloatRange{Min: 1.25, Max: 3}
	want.LatencyMut = IntRange{Min: -4, Max: 1}

	var doc yaml.Node
	require.NoError(t, doc.Encode(want))
	leaves := map[string]string{}
	yamlLeaves("", &doc, leaves)
	require.Contains(t, leaves, "min_speed.min")
	require.Contains(t, leaves, "bright_mut.max")

	var got Config
	for k, v := range leaves {
		require.NoError(t, got.Apply(k, v), k)
	}
	assert.Equal(t, want, got)
}

func yamlLeaves(prefix string, n *yaml.Node, out map[string]string) {
	switch n.Kind {
	case yaml.DocumentNode:
		yamlLeaves(prefix, n.Content[0], out)
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			yamlLeaves(key, n.Content[i+1], out)
		}
	default:
		out[prefix] = n.Value
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
width: 320
height: 200
seeds: 12
min_speed:
  min: 1.5
  max: 2.5
noise_seed: 4242
`))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, 12, cfg.NSeeds)
	assert.Equal(t, FloatRange{Min: 1.5, Max: 2.5}, cfg.MinSpeed)
	assert.Equal(t, 10, cfg.LatencyMax)
	assert.Equal(t, 0.0001, cfg.MutProb)
	require.NotNil(t, cfg.NoiseSeed)
	assert.Equal(t, int64(4242), *cfg.NoiseSeed)

	_, err = ParseConfig([]byte("width: [1, 2"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crystal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latency_max: 4\nmut_prob: 0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.LatencyMax)
	assert.Equal(t, 0.0, cfg.MutProb)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--width=64", "--seeds=3", "--seed=9"}))
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 3, cfg.NSeeds)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 1000, cfg.Height)
}

func TestParametersGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultConfig().Parameters().WriteText(&buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_params", buf.Bytes())
}

func TestParametersPinnedNoiseSeed(t *testing.T) {
	snap := DefaultConfig().WithNoiseSeed(12).Parameters()
	run := snap.Groups[len(snap.Groups)-1]
	require.Equal(t, "Run", run.Name)
	assert.Equal(t, "12", run.Params[1].Value)
}
