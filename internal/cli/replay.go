package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crystal-ca/internal/manifest"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Verify bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <manifest> <output>",
		Short: "Regenerate an image from a run manifest",
		Long: `Regenerate the image recorded by a run manifest (see generate --manifest).

With --verify the run statistics must match the manifest exactly.

Example:
  crystal replay out/crystals.yaml again.png --verify`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "fail if the replayed statistics differ from the manifest")

	return cmd
}

func runReplay(opts *ReplayOptions, manifestPath, output string, cmd *cobra.Command) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load manifest", err)
	}
	if err := m.Config.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid manifest configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose).With("replay_of", m.RunID)
	res, err := produce(cmd.Context(), logger, m.Config, output, false)
	if err != nil {
		return err
	}
	if opts.Verify && res.Stats != m.Stats {
		return NewExitError(ExitFailure, fmt.Sprintf("replay diverged: got %+v, manifest has %+v", res.Stats, m.Stats))
	}
	return nil
}
