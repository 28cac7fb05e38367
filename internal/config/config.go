// Package config loads the runtime parameters of the dpmean CLI from
// environment variables, to be layered under flag overrides.
package config

import "github.com/kelseyhightower/envconfig"

// EnvConfig holds the environment-variable defaults for a BoundedMean run.
// Field names map to environment variables with the DPMEAN_ prefix
// (e.g. Epsilon maps to DPMEAN_EPSILON).
type EnvConfig struct {
	// Epsilon is the total privacy budget epsilon.
	// Env: DPMEAN_EPSILON (default: 1.0)
	Epsilon float64 `envconfig:"EPSILON" default:"1.0"`
	// Delta is the total privacy budget delta, required with Gaussian noise.
	// Env: DPMEAN_DELTA
	Delta float64 `envconfig:"DELTA" default:"0"`
	// Lower bounds the accepted contributions.
	// Env: DPMEAN_LOWER
	Lower float64 `envconfig:"LOWER" default:"0"`
	// Upper bounds the accepted contributions.
	// Env: DPMEAN_UPPER
	Upper float64 `envconfig:"UPPER" default:"1"`
	// MaxPartitionsContributed bounds the L0 sensitivity.
	// Env: DPMEAN_MAX_PARTITIONS_CONTRIBUTED (default: 1)
	MaxPartitionsContributed int64 `envconfig:"MAX_PARTITIONS_CONTRIBUTED" default:"1"`
	// MaxContributionsPerPartition bounds the L-infinity sensitivity.
	// Env: DPMEAN_MAX_CONTRIBUTIONS_PER_PARTITION (default: 1)
	MaxContributionsPerPartition int64 `envconfig:"MAX_CONTRIBUTIONS_PER_PARTITION" default:"1"`
	// NoiseKind selects the noise mechanism: "laplace" or "gaussian".
	// Env: DPMEAN_NOISE_KIND (default: laplace)
	NoiseKind string `envconfig:"NOISE_KIND" default:"laplace"`
	// Alpha is the significance level used for confidence intervals.
	// Env: DPMEAN_ALPHA (default: 0.05)
	Alpha float64 `envconfig:"ALPHA" default:"0.05"`
}

// Load reads an EnvConfig from environment variables prefixed with DPMEAN.
func Load() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("dpmean", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}
