package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/vsbench/scanpath-eval/internal/config"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogEnvConfig
		want zerolog.Level
	}{
		{"prod", config.LogEnvConfig{Environment: "prod"}, zerolog.InfoLevel},
		{"dev", config.LogEnvConfig{Environment: "dev"}, zerolog.TraceLevel},
		{"test upper case", config.LogEnvConfig{Environment: "TEST"}, zerolog.TraceLevel},
		{"unknown", config.LogEnvConfig{Environment: "staging"}, zerolog.InfoLevel},
		{"override", config.LogEnvConfig{Environment: "prod", LogLevel: "DEBUG"}, zerolog.DebugLevel},
		{"bad override", config.LogEnvConfig{Environment: "dev", LogLevel: "loud"}, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.cfg))
		})
	}
}

func TestSugarBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Sugar().Infow("not initialized", "ok", true)
	})
}
