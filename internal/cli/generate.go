package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"crystal-ca/internal/manifest"
	"crystal-ca/internal/render"
	"crystal-ca/internal/sims/crystal"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Config   ConfigOptions
	Manifest bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Grow crystals and write the image",
		Long: `Grow crystals and write the resulting grayscale image to <output>.

The format follows the extension: .png, .bmp, .tif, .tiff or .pgm.

Example:
  crystal generate crystals.png
  crystal generate --seed 42 --seeds 80 --manifest out/crystals.png
  crystal generate --config params.yaml --set mut_prob=0.001 crystals.tiff`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Nothing to write to: show usage and stop before any work.
				return cmd.Usage()
			}
			return runGenerate(opts, args[0], cmd)
		},
	}

	opts.Config.bind(cmd.Flags())
	cmd.Flags().BoolVar(&opts.Manifest, "manifest", false, "write a YAML run manifest next to the image")

	return cmd
}

func runGenerate(opts *GenerateOptions, output string, cmd *cobra.Command) error {
	if _, err := render.FormatFromPath(output); err != nil {
		return WrapExitError(ExitCommandError, "invalid output path", err)
	}
	cfg, err := opts.Config.resolve()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	_, err = produce(cmd.Context(), logger, cfg, output, opts.Manifest)
	return err
}

// produce runs one generation and writes the image (and optionally the
// manifest). It is shared by generate and replay.
func produce(ctx context.Context, logger *slog.Logger, cfg crystal.Config, output string, writeManifest bool) (*crystal.Result, error) {
	runID := manifest.NewRunID()
	log := logger.With("run_id", runID)
	start := time.Now()

	log.Info("simulating growth",
		"width", cfg.Width,
		"height", cfg.Height,
		"seeds", cfg.NSeeds,
		"seed", cfg.Seed,
	)
	res, err := crystal.Generate(ctx, cfg, crystal.WithLogger(log))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn("growth interrupted, no image written")
		return nil, WrapExitError(ExitInterrupted, "interrupted", err)
	}
	if errors.Is(err, crystal.ErrUnsaturated) {
		log.Error("growth left empty cells, no image written", "error", err)
		return res, WrapExitError(ExitUnsaturated, "growth did not fill the grid", err)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	log.Info("growth finished",
		"noise_seed", res.NoiseSeed,
		"rounds", res.Stats.Rounds,
		"ticks", res.Stats.Ticks,
		"mutations", res.Stats.Mutations,
	)

	log.Info("saving image", "path", output)
	if err := render.Save(output, res.Raster); err != nil {
		return res, WrapExitError(ExitFailure, "failed to save image", err)
	}
	elapsed := time.Since(start)

	if writeManifest {
		path := manifest.SidecarPath(output)
		if err := manifest.New(runID, cfg, res, output, elapsed).Write(path); err != nil {
			return res, WrapExitError(ExitFailure, "failed to write manifest", err)
		}
		log.Info("manifest written", "path", path)
	}
	log.Info("finished", "elapsed", elapsed.Round(time.Millisecond))
	return res, nil
}
