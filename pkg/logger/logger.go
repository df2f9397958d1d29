package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Debug bool
}

// NewLogger builds the zap logger shared by every component. Debug switches to the
// development encoder and enables debug level output.
func NewLogger(cfg *LoggerConfig, options ...zap.Option) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}

	var c zap.Config
	if cfg.Debug {
		c = zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		c = zap.NewProductionConfig()
		c.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return c.Build(options...)
}
