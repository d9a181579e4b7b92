package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ParamsOptions holds flags for the params command.
type ParamsOptions struct {
	*RootOptions
	Config ConfigOptions
	Format string // "text" | "yaml"
}

// NewParamsCommand creates the params command.
func NewParamsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParamsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the effective parameters",
		Long: `Print the parameters a generate run would use after applying the config
file, flags and --set overrides. The yaml format can be fed back via --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(opts, cmd)
		},
	}

	opts.Config.bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|yaml)")

	return cmd
}

func runParams(opts *ParamsOptions, cmd *cobra.Command) error {
	cfg, err := opts.Config.resolve()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	switch opts.Format {
	case "text":
		return cfg.Parameters().WriteText(cmd.OutOrStdout())
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return WrapExitError(ExitFailure, "failed to encode parameters", err)
		}
		return enc.Close()
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be text or yaml", opts.Format))
}
