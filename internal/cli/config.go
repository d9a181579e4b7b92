package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"crystal-ca/internal/sims/crystal"
)

// ConfigOptions collects the ways a command can shape a crystal.Config.
// Precedence: defaults < --config file < flags < --set overrides.
type ConfigOptions struct {
	Path string
	Sets []string

	flags *pflag.FlagSet
}

// bind registers the config flags on fs.
func (o *ConfigOptions) bind(fs *pflag.FlagSet) {
	o.flags = pflag.NewFlagSet("config", pflag.ContinueOnError)
	scratch := crystal.DefaultConfig()
	scratch.Bind(o.flags)
	o.flags.Int64("noise-seed", 0, "pin the noise field seed (drawn from --seed when unset)")
	fs.AddFlagSet(o.flags)

	fs.StringVar(&o.Path, "config", "", "YAML config file")
	fs.StringArrayVar(&o.Sets, "set", nil, "parameter override in key=value form (repeatable)")
}

// resolve builds and validates the config.
func (o *ConfigOptions) resolve() (crystal.Config, error) {
	cfg := crystal.DefaultConfig()
	if o.Path != "" {
		loaded, err := crystal.LoadConfig(o.Path)
		if err != nil {
			return crystal.Config{}, err
		}
		cfg = loaded
	}

	var applyErr error
	if o.flags != nil {
		o.flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed || applyErr != nil {
				return
			}
			applyErr = cfg.Apply(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
		})
	}
	if applyErr != nil {
		return crystal.Config{}, applyErr
	}

	for _, kv := range o.Sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return crystal.Config{}, fmt.Errorf("override %q is not key=value", kv)
		}
		if err := cfg.Apply(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return crystal.Config{}, err
		}
	}
	return cfg, cfg.Validate()
}
