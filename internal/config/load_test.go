package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cIBS", cfg.DatasetName)
	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, 0.0001, cfg.TimeScale)
	assert.Equal(t, 0.3, cfg.DummyDuration)
	assert.Equal(t, 3, cfg.MinFixations)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.False(t, cfg.UseRedis())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATASET_NAME", "MCS")
	t.Setenv("HUMAN_SCANPATHS_DIR", "/data/mcs/human")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("MULTIMATCH_DUMMY_DURATION", "0.25")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "MCS", cfg.DatasetName)
	assert.Equal(t, "/data/mcs/human", cfg.HumanScanpathsDir)
	assert.Equal(t, 0.25, cfg.DummyDuration)
	assert.True(t, cfg.UseRedis())
}
