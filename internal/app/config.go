package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"crystal-ca/internal/sims/crystal"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Scale      int
	PanelWidth int
	Out        string
	ConfigPath string

	Crystal crystal.Config

	crystalFlags *pflag.FlagSet
}

// NewConfig returns a Config populated with sensible defaults. The default
// grid is smaller than the generator's so it fits on screen.
func NewConfig() *Config {
	cc := crystal.DefaultConfig()
	cc.Width, cc.Height = 400, 300
	cc.NSeeds = 20
	return &Config{Scale: 2, PanelWidth: 260, Out: "crystals.png", Crystal: cc}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "side panel width in pixels (0 hides it)")
	fs.StringVar(&c.Out, "out", c.Out, "image path written when S is pressed")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML config file")

	c.crystalFlags = pflag.NewFlagSet("crystal", pflag.ContinueOnError)
	c.Crystal.Bind(c.crystalFlags)
	fs.AddFlagSet(c.crystalFlags)
}

// Resolve returns the crystal configuration to run: the --config file when
// given, with explicitly set flags applied on top.
func (c *Config) Resolve() (crystal.Config, error) {
	if c.Scale < 1 {
		return crystal.Config{}, fmt.Errorf("scale %d must be at least 1", c.Scale)
	}
	if c.PanelWidth < 0 {
		return crystal.Config{}, fmt.Errorf("panel width %d must not be negative", c.PanelWidth)
	}
	cfg := c.Crystal
	if c.ConfigPath != "" {
		loaded, err := crystal.LoadConfig(c.ConfigPath)
		if err != nil {
			return crystal.Config{}, err
		}
		cfg = loaded
		if c.crystalFlags != nil {
			var errs []error
			c.crystalFlags.Visit(func(f *pflag.Flag) {
				errs = append(errs, cfg.Apply(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String()))
			})
			if err := errors.Join(errs...); err != nil {
				return crystal.Config{}, err
			}
		}
	}
	return cfg, cfg.Validate()
}
