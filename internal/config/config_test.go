package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.Epsilon)
	require.Equal(t, 0.0, cfg.Delta)
	require.Equal(t, "laplace", cfg.NoiseKind)
	require.Equal(t, int64(1), cfg.MaxPartitionsContributed)
}

func TestLoad_OverriddenByEnv(t *testing.T) {
	t.Setenv("DPMEAN_EPSILON", "2.5")
	t.Setenv("DPMEAN_NOISE_KIND", "gaussian")
	t.Setenv("DPMEAN_DELTA", "0.001")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2.5, cfg.Epsilon)
	require.Equal(t, "gaussian", cfg.NoiseKind)
	require.Equal(t, 0.001, cfg.Delta)
}
