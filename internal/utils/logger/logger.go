// Package logger provides a global logger for the application
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"

	"github.com/vsbench/scanpath-eval/internal/config"
)

// Logger backs Sugar. It is a no-op until Init runs.
var Logger = zap.NewNop()

// Level picks the log level for an environment. LOG_LEVEL wins when it parses.
func Level(cfg config.LogEnvConfig) zerolog.Level {
	if cfg.LogLevel != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			return level
		}
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level - falling back to environment default")
	}

	switch strings.ToLower(cfg.Environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init sets up the global zerolog logger with console output on stderr and
// the zap logger returned by Sugar.
//
//	cfg, _ := config.LoadConfig(ctx)
//	logger.Init(cfg.LogEnvConfig)
func Init(cfg config.LogEnvConfig) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	logLevel := Level(cfg)
	zerolog.SetGlobalLevel(logLevel)

	var (
		z   *zap.Logger
		err error
	)
	if logLevel <= zerolog.DebugLevel {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to build zap logger, pipeline logs disabled")
	} else {
		Logger = z
	}

	log.Info().Str("environment", cfg.Environment).Str("level", logLevel.String()).Msg("Logging initialized")
}

// Sugar returns a sugared logger for easier use
func Sugar() *zap.SugaredLogger {
	return Logger.Sugar()
}
