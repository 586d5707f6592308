package app

import (
	"log/slog"

	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/requestid"
)

// NewLogger builds the process logger: JSON in production and staging, text
// otherwise, with the request ID attached to every record.
func NewLogger(cfg LogConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithContextExtractors(requestid.Extractor()),
	}
	if cfg.Level != "" {
		opts = append(opts, logger.WithLevelName(cfg.Level))
	}
	return logger.New(opts...)
}
