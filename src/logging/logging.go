// Package logging builds the process logger and classifies transport errors.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production zap logger at level ("debug", "info", "warn", "error").
// An empty level means info.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}
