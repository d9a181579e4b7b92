package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"crystal-ca/internal/sims/crystal"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	Config    ConfigOptions
	SeedList  []int
	Latencies []int
	Workers   int
	FIFO      bool
}

// SweepResult is the outcome of one candidate.
type SweepResult struct {
	NSeeds      int
	LatencyMax  int
	Stats       crystal.Stats
	Unsaturated bool
	Elapsed     time.Duration
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare growth statistics across seed counts and latencies",
		Long: `Run one generation per (seeds, latency_max) combination in parallel and
print growth statistics for each. No images are written.

Example:
  crystal sweep --width 256 --height 256 --seed 7 --seed-list 1,10,40 --latency-list 3,10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), opts, cmd)
		},
	}

	opts.Config.bind(cmd.Flags())
	cmd.Flags().IntSliceVar(&opts.SeedList, "seed-list", []int{10, 40, 160}, "seed counts to evaluate")
	cmd.Flags().IntSliceVar(&opts.Latencies, "latency-list", []int{5, 10}, "latency_max values to evaluate")
	cmd.Flags().IntVar(&opts.Workers, "workers", runtime.NumCPU(), "parallel candidate evaluations")
	cmd.Flags().BoolVar(&opts.FIFO, "fifo", false, "consume bucket events first-in-first-out")

	return cmd
}

func runSweep(ctx context.Context, opts *SweepOptions, cmd *cobra.Command) error {
	base, err := opts.Config.resolve()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if base.Seed == 0 {
		base.Seed = time.Now().UnixNano()
	}

	var candidates []crystal.Config
	for _, latency := range opts.Latencies {
		for _, n := range opts.SeedList {
			cfg := base
			cfg.LatencyMax = latency
			cfg.NSeeds = n
			if err := cfg.Validate(); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid candidate seeds=%d latency_max=%d", n, latency), err)
			}
			candidates = append(candidates, cfg)
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	logger.Info("evaluating candidates", "count", len(candidates), "workers", opts.Workers, "seed", base.Seed)

	results, err := Sweep(ctx, candidates, opts.Workers, opts.FIFO)
	if errors.Is(err, context.Canceled) {
		return WrapExitError(ExitInterrupted, "sweep interrupted", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "sweep failed", err)
	}
	return writeSweepTable(cmd.OutOrStdout(), results)
}

// Sweep generates every candidate on a bounded worker pool. Results keep the
// candidate order.
func Sweep(ctx context.Context, candidates []crystal.Config, workers int, fifo bool) ([]SweepResult, error) {
	if workers <= 0 {
		workers = 1
	}
	order := crystal.OrderLIFO
	if fifo {
		order = crystal.OrderFIFO
	}

	results := make([]SweepResult, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range candidates {
		g.Go(func() error {
			start := time.Now()
			res, err := crystal.Generate(ctx, cfg, crystal.WithOrder(order))
			unsaturated := errors.Is(err, crystal.ErrUnsaturated)
			if err != nil && !unsaturated {
				return fmt.Errorf("seeds=%d latency_max=%d: %w", cfg.NSeeds, cfg.LatencyMax, err)
			}
			results[i] = SweepResult{
				NSeeds:      cfg.NSeeds,
				LatencyMax:  cfg.LatencyMax,
				Stats:       res.Stats,
				Unsaturated: unsaturated,
				Elapsed:     time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeSweepTable(w io.Writer, results []SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "seeds\tlatency\trounds\tticks\twasted\tmutations\tcrystals\tdiscarded\tsaturated\telapsed\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%t\t%s\t\n",
			r.NSeeds, r.LatencyMax, r.Stats.Rounds, r.Stats.Ticks, r.Stats.WastedRounds,
			r.Stats.Mutations, r.Stats.Crystals, r.Stats.Discarded, !r.Unsaturated,
			r.Elapsed.Round(time.Millisecond))
	}
	return tw.Flush()
}
