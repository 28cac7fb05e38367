package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edric-shen/differential-privacy/dpagg"
	"github.com/edric-shen/differential-privacy/internal/config"
	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

func mergeCmd() *cobra.Command {
	var (
		epsilon   float64
		delta     float64
		lower     float64
		upper     float64
		noiseKind string
		alpha     float64
	)

	cmd := &cobra.Command{
		Use:   "merge <summary-file> <summary-file> [...]",
		Short: "Merge two or more summaries produced by 'run --summary-out'",
		Long: `merge combines the partial state from two or more summary files into a
single BoundedMean, configured identically to the shards that produced them,
and prints the merged result and confidence interval as JSON.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args, epsilon, delta, lower, upper, noiseKind, alpha)
		},
	}

	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "privacy budget epsilon (overrides DPMEAN_EPSILON)")
	cmd.Flags().Float64Var(&delta, "delta", 0, "privacy budget delta (overrides DPMEAN_DELTA)")
	cmd.Flags().Float64Var(&lower, "lower", 0, "lower clamping bound (overrides DPMEAN_LOWER)")
	cmd.Flags().Float64Var(&upper, "upper", 0, "upper clamping bound (overrides DPMEAN_UPPER)")
	cmd.Flags().StringVar(&noiseKind, "noise", "", "noise mechanism: laplace or gaussian (overrides DPMEAN_NOISE_KIND)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "confidence interval significance level (overrides DPMEAN_ALPHA)")

	return cmd
}

func runMerge(files []string, epsilon, delta, lower, upper float64, noiseKind string, alpha float64) error {
	env, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opt := buildOptions(env, epsilon, delta, lower, upper, noiseKind)
	if alpha == 0 {
		alpha = env.Alpha
	}

	bm, err := dpagg.NewBoundedMean(opt)
	if err != nil {
		return fmt.Errorf("construct aggregator: %w", err)
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read summary %s: %w", path, err)
		}
		if err := bm.MergeWith(data); err != nil {
			return fmt.Errorf("merge summary %s: %w", path, err)
		}
	}
	log.Infof("dpmean: merged %d summaries", len(files))

	mean, err := bm.Result()
	if err != nil {
		return fmt.Errorf("compute result: %w", err)
	}
	ci, err := bm.ComputeConfidenceInterval(alpha)
	if err != nil {
		return fmt.Errorf("compute confidence interval: %w", err)
	}

	out := runResult{Mean: mean, ConfidenceLower: ci.LowerBound, ConfidenceUpper: ci.UpperBound}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
