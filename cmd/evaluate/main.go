package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/vsbench/scanpath-eval/internal/config"
	"github.com/vsbench/scanpath-eval/internal/utils/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogEnvConfig)
	defer logger.Logger.Sync() //nolint:errcheck

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
}
