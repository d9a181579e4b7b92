package crystal

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks configuration values the generator cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// MaxNoiseImportance bounds the density exponent. Larger exponents drive the
// seed acceptance probability to zero almost everywhere.
const MaxNoiseImportance = 100

// FloatRange is a half-open interval [Min, Max).
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is a half-open interval [Min, Max).
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Config holds every tunable of a generation run. It is built once and passed
// by value into each component.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// LatencyMax is both the largest growth delay and the delay ring size.
	LatencyMax int `yaml:"latency_max"`
	NSeeds     int `yaml:"seeds"`

	BrightMin int `yaml:"bright_min"`
	BrightMax int `yaml:"bright_max"`

	// MinSpeed bounds the random guard that keeps every delay finite.
	MinSpeed FloatRange `yaml:"min_speed"`

	NoiseScale      float64 `yaml:"noise_scale"`
	NoiseImportance float64 `yaml:"noise_importance"`

	MutProb    float64  `yaml:"mut_prob"`
	BrightMut  IntRange `yaml:"bright_mut"`
	LatencyMut IntRange `yaml:"latency_mut"`

	// Seed drives the uniform random source. NoiseSeed pins the noise field;
	// when nil it is drawn from the random source.
	Seed      int64  `yaml:"seed"`
	NoiseSeed *int64 `yaml:"noise_seed,omitempty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:           1000,
		Height:          1000,
		LatencyMax:      10,
		NSeeds:          40,
		BrightMin:       50,
		BrightMax:       250,
		MinSpeed:        FloatRange{Min: 1.0, Max: 2.0},
		NoiseScale:      0.0002,
		NoiseImportance: 5.0,
		MutProb:         0.0001,
		BrightMut:       IntRange{Min: -30, Max: 30},
		LatencyMut:      IntRange{Min: -10, Max: 2},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().With(cfg)
}

// With returns a copy of c with the given overrides applied. Unknown keys and
// unparsable values are ignored.
func (c Config) With(overrides map[string]string) Config {
	for k, v := range overrides {
		_ = c.Apply(k, v)
	}
	return c
}

// WithNoiseSeed returns a copy of c with the noise seed pinned.
func (c Config) WithNoiseSeed(seed int64) Config {
	c.NoiseSeed = &seed
	return c
}

// Apply sets a single key on c. Keys are the YAML paths, with nested range
// bounds written as "min_speed.min". It reports unknown keys and parse failures.
func (c *Config) Apply(key, value string) error {
	var err error
	switch key {
	case "width", "w":
		c.Width, err = strconv.Atoi(value)
	case "height", "h":
		c.Height, err = strconv.Atoi(value)
	case "latency_max":
		c.LatencyMax, err = strconv.Atoi(value)
	case "seeds":
		c.NSeeds, err = strconv.Atoi(value)
	case "bright_min":
		c.BrightMin, err = strconv.Atoi(value)
	case "bright_max":
		c.BrightMax, err = strconv.Atoi(value)
	case "min_speed.min":
		c.MinSpeed.Min, err = strconv.ParseFloat(value, 64)
	case "min_speed.max":
		c.MinSpeed.Max, err = strconv.ParseFloat(value, 64)
	case "noise_scale":
		c.NoiseScale, err = strconv.ParseFloat(value, 64)
	case "noise_importance":
		c.NoiseImportance, err = strconv.ParseFloat(value, 64)
	case "mut_prob":
		c.MutProb, err = strconv.ParseFloat(value, 64)
	case "bright_mut.min":
		c.BrightMut.Min, err = strconv.Atoi(value)
	case "bright_mut.max":
		c.BrightMut.Max, err = strconv.Atoi(value)
	case "latency_mut.min":
		c.LatencyMut.Min, err = strconv.Atoi(value)
	case "latency_mut.max":
		c.LatencyMut.Max, err = strconv.Atoi(value)
	case "seed":
		c.Seed, err = strconv.ParseInt(value, 10, 64)
	case "noise_seed":
		var s int64
		if s, err = strconv.ParseInt(value, 10, 64); err == nil {
			c.NoiseSeed = &s
		}
	default:
		return fmt.Errorf("unknown parameter %q", key)
	}
	if err != nil {
		return fmt.Errorf("parameter %q: %w", key, err)
	}
	return nil
}

// Bind attaches the most common settings to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "image width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "image height in pixels")
	fs.IntVar(&c.NSeeds, "seeds", c.NSeeds, "number of seed crystals")
	fs.IntVar(&c.LatencyMax, "latency-max", c.LatencyMax, "largest growth delay (delay ring size)")
	fs.Float64Var(&c.MutProb, "mut-prob", c.MutProb, "mutation probability per propagation")
	fs.Float64Var(&c.NoiseScale, "noise-scale", c.NoiseScale, "noise field zoom")
	fs.Float64Var(&c.NoiseImportance, "noise-importance", c.NoiseImportance, "exponent applied to the seed density")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// Validate reports every setting that would make a run impossible. Seed
// placement still gives up with ErrSeedingStalled when a noise field accepts
// almost no cell.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	if c.Width <= 0 || c.Height <= 0 {
		fail("dimensions %dx%d must be positive", c.Width, c.Height)
	}
	if c.LatencyMax < 1 || c.LatencyMax > 255 {
		fail("latency_max %d outside [1, 255]", c.LatencyMax)
	}
	if c.NSeeds < 0 {
		fail("seeds %d must not be negative", c.NSeeds)
	} else if c.Width > 0 && c.Height > 0 && c.NSeeds > c.Width*c.Height {
		fail("seeds %d exceed the %d grid cells", c.NSeeds, c.Width*c.Height)
	}
	if c.BrightMin < 0 || c.BrightMax > 255 || c.BrightMin >= c.BrightMax {
		fail("brightness range [%d, %d) must be non-empty within [0, 255]", c.BrightMin, c.BrightMax)
	}
	if c.MinSpeed.Min <= 0 || c.MinSpeed.Min >= c.MinSpeed.Max {
		fail("min_speed range [%g, %g) must be non-empty and positive", c.MinSpeed.Min, c.MinSpeed.Max)
	}
	if c.NoiseScale < 0 {
		fail("noise_scale %g must not be negative", c.NoiseScale)
	}
	if c.NoiseImportance < 0 || c.NoiseImportance > MaxNoiseImportance {
		fail("noise_importance %g outside [0, %d]", c.NoiseImportance, MaxNoiseImportance)
	}
	if c.MutProb < 0 || c.MutProb > 1 {
		fail("mut_prob %g outside [0, 1]", c.MutProb)
	}
	if c.BrightMut.Min >= c.BrightMut.Max {
		fail("bright_mut range [%d, %d) is empty", c.BrightMut.Min, c.BrightMut.Max)
	}
	if c.LatencyMut.Min >= c.LatencyMut.Max {
		fail("latency_mut range [%d, %d) is empty", c.LatencyMut.Min, c.LatencyMut.Max)
	}
	return errors.Join(errs...)
}
