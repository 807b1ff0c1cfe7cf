// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	DatasetEnvConfig
	LogEnvConfig
	CacheEnvConfig
	RedisEnvConfig
	MultimatchEnvConfig
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatasetEnvConfig points at the inputs and outputs of one dataset.
type DatasetEnvConfig struct {
	DatasetName        string `env:"DATASET_NAME, default=cIBS"`
	HumanScanpathsDir  string `env:"HUMAN_SCANPATHS_DIR, default=Datasets/cIBS/human_scanpaths"`
	DatasetResultsDir  string `env:"DATASET_RESULTS_DIR, default=Results/cIBS_dataset"`
	ProbabilityMapsDir string `env:"PROBABILITY_MAPS_DIR"`
}

// LogEnvConfig controls the global log level.
type LogEnvConfig struct {
	Environment string `env:"ENVIRONMENT, default=prod"`
	LogLevel    string `env:"LOG_LEVEL"`
}

// CacheEnvConfig selects where the human baseline is cached.
type CacheEnvConfig struct {
	CacheBackend string `env:"CACHE_BACKEND, default=file"`
}

// RedisEnvConfig configures Redis connection.
type RedisEnvConfig struct {
	RedisHost     string `env:"REDIS_HOST, default=127.0.0.1"`
	RedisPort     int    `env:"REDIS_PORT, default=6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB, default=0"`
}

// MultimatchEnvConfig holds the constants used when building fixation
// sequences for alignment.
type MultimatchEnvConfig struct {
	TimeScale     float64 `env:"MULTIMATCH_TIME_SCALE, default=0.0001"`
	DummyDuration float64 `env:"MULTIMATCH_DUMMY_DURATION, default=0.3"`
	MinFixations  int     `env:"MULTIMATCH_MIN_FIXATIONS, default=3"`
}

const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

func (c CacheEnvConfig) UseRedis() bool {
	return strings.EqualFold(c.CacheBackend, CacheBackendRedis)
}
