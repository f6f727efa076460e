package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config selects the encoder and minimum level.
type Config struct {
	Level  string
	Format string
}

// New builds the process logger. "console" selects the development encoder;
// anything else logs JSON.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		parsed, err := zap.ParseAtomicLevel(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var zc zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
