package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edric-shen/differential-privacy/dpagg"
	"github.com/edric-shen/differential-privacy/internal/config"
	"github.com/edric-shen/differential-privacy/noise"
	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

type runResult struct {
	Mean            float64 `json:"mean"`
	ConfidenceLower float64 `json:"confidence_lower"`
	ConfidenceUpper float64 `json:"confidence_upper"`
}

func runCmd() *cobra.Command {
	var (
		inputFile string
		summaryOut string
		epsilon   float64
		delta     float64
		lower     float64
		upper     float64
		noiseKind string
		alpha     float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest contributions and print a differentially private mean",
		Long: `run reads newline-delimited floating point contributions from stdin (or
--input), ingests them into a BoundedMean, and prints the result and its
confidence interval as JSON.

Environment variables (flags take precedence):
  DPMEAN_EPSILON                           total privacy budget (default 1.0)
  DPMEAN_DELTA                             total delta, required with --noise gaussian
  DPMEAN_LOWER, DPMEAN_UPPER                clamping bounds
  DPMEAN_MAX_PARTITIONS_CONTRIBUTED        L0 sensitivity (default 1)
  DPMEAN_MAX_CONTRIBUTIONS_PER_PARTITION   L-infinity sensitivity (default 1)
  DPMEAN_NOISE_KIND                        laplace or gaussian (default laplace)
  DPMEAN_ALPHA                             confidence interval significance level`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(inputFile, summaryOut, epsilon, delta, lower, upper, noiseKind, alpha)
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "", "path to a file of newline-delimited floats (default: stdin)")
	cmd.Flags().StringVar(&summaryOut, "summary-out", "", "path to write a mergeable summary of this run")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "privacy budget epsilon (overrides DPMEAN_EPSILON)")
	cmd.Flags().Float64Var(&delta, "delta", 0, "privacy budget delta (overrides DPMEAN_DELTA)")
	cmd.Flags().Float64Var(&lower, "lower", 0, "lower clamping bound (overrides DPMEAN_LOWER)")
	cmd.Flags().Float64Var(&upper, "upper", 0, "upper clamping bound (overrides DPMEAN_UPPER)")
	cmd.Flags().StringVar(&noiseKind, "noise", "", "noise mechanism: laplace or gaussian (overrides DPMEAN_NOISE_KIND)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "confidence interval significance level (overrides DPMEAN_ALPHA)")

	return cmd
}

func runRun(inputFile, summaryOut string, epsilon, delta, lower, upper float64, noiseKind string, alpha float64) error {
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

	in := io.Reader(os.Stdin)
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	n, err := ingest(bm, in)
	if err != nil {
		return err
	}
	log.Infof("dpmean: ingested %d contributions", n)

	if summaryOut != "" {
		// GetSerializableSummary and Result are mutually exclusive
		// finalization paths, so a shard destined for merge skips Result
		// entirely and just flushes its partial state to disk.
		data, err := bm.GetSerializableSummary()
		if err != nil {
			return fmt.Errorf("serialize summary: %w", err)
		}
		if err := os.WriteFile(summaryOut, data, 0o600); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		return nil
	}

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

func ingest(bm *dpagg.BoundedMean, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return n, fmt.Errorf("parse contribution %q: %w", line, err)
		}
		if err := bm.Add(v); err != nil {
			return n, fmt.Errorf("add contribution: %w", err)
		}
		n++
	}
	return n, scanner.Err()
}

func buildOptions(env config.EnvConfig, epsilon, delta, lower, upper float64, noiseKind string) *dpagg.BoundedMeanOptions {
	if epsilon == 0 {
		epsilon = env.Epsilon
	}
	if delta == 0 {
		delta = env.Delta
	}
	if lower == 0 {
		lower = env.Lower
	}
	if upper == 0 {
		upper = env.Upper
	}
	if noiseKind == "" {
		noiseKind = env.NoiseKind
	}

	var n noise.Noise
	if strings.EqualFold(noiseKind, "gaussian") {
		n = noise.Gaussian()
	} else {
		n = noise.Laplace()
	}

	return &dpagg.BoundedMeanOptions{
		Epsilon:                      epsilon,
		Delta:                        delta,
		Noise:                        n,
		MaxPartitionsContributed:     env.MaxPartitionsContributed,
		MaxContributionsPerPartition: env.MaxContributionsPerPartition,
		Lower:                        lower,
		Upper:                        upper,
	}
}
