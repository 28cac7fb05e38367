package main

import (
	"strings"
	"testing"

	"github.com/edric-shen/differential-privacy/dpagg"
	"github.com/edric-shen/differential-privacy/internal/config"
	"github.com/edric-shen/differential-privacy/noise"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_FlagsOverrideEnv(t *testing.T) {
	env := config.EnvConfig{
		Epsilon:                      1.0,
		Delta:                        0,
		Lower:                        0,
		Upper:                        10,
		MaxPartitionsContributed:     1,
		MaxContributionsPerPartition: 1,
		NoiseKind:                    "laplace",
	}

	opt := buildOptions(env, 2.0, 0, -5, 5, "gaussian")
	require.Equal(t, 2.0, opt.Epsilon)
	require.Equal(t, -5.0, opt.Lower)
	require.Equal(t, 5.0, opt.Upper)
	require.Equal(t, noise.GaussianNoise, noise.ToKind(opt.Noise))
}

func TestBuildOptions_LowerAndUpperFallBackIndependently(t *testing.T) {
	env := config.EnvConfig{
		Epsilon:                      1.0,
		Lower:                        -20,
		Upper:                        10,
		MaxPartitionsContributed:     1,
		MaxContributionsPerPartition: 1,
		NoiseKind:                    "laplace",
	}

	// Only --upper is overridden; --lower stays at its zero default and must
	// fall back to env.Lower rather than being silently coerced to 0.
	opt := buildOptions(env, 0, 0, 0, 5, "")
	require.Equal(t, -20.0, opt.Lower)
	require.Equal(t, 5.0, opt.Upper)
}

func TestBuildOptions_FallsBackToEnv(t *testing.T) {
	env := config.EnvConfig{
		Epsilon:                      1.5,
		Lower:                        0,
		Upper:                        10,
		MaxPartitionsContributed:     2,
		MaxContributionsPerPartition: 3,
		NoiseKind:                    "laplace",
	}

	opt := buildOptions(env, 0, 0, 0, 0, "")
	require.Equal(t, 1.5, opt.Epsilon)
	require.Equal(t, 0.0, opt.Lower)
	require.Equal(t, 10.0, opt.Upper)
	require.Equal(t, int64(2), opt.MaxPartitionsContributed)
	require.Equal(t, noise.LaplaceNoise, noise.ToKind(opt.Noise))
}

func TestIngest_ParsesNewlineDelimitedFloats(t *testing.T) {
	env := config.EnvConfig{Epsilon: 1, Lower: 0, Upper: 10, MaxPartitionsContributed: 1, MaxContributionsPerPartition: 1, NoiseKind: "laplace"}
	opt := buildOptions(env, 0, 0, 0, 0, "")
	bm, err := dpagg.NewBoundedMean(opt)
	require.NoError(t, err)

	n, err := ingest(bm, strings.NewReader("1\n2\n\n3\n"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestIngest_RejectsMalformedLine(t *testing.T) {
	env := config.EnvConfig{Epsilon: 1, Lower: 0, Upper: 10, MaxPartitionsContributed: 1, MaxContributionsPerPartition: 1, NoiseKind: "laplace"}
	opt := buildOptions(env, 0, 0, 0, 0, "")
	bm, err := dpagg.NewBoundedMean(opt)
	require.NoError(t, err)

	_, err = ingest(bm, strings.NewReader("not-a-number"))
	require.Error(t, err)
}
