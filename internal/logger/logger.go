package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewNamed creates a zap logger for env, tagged with the service name.
// "production" yields JSON at info level; anything else a colored console
// logger at debug level.
func NewNamed(env, name string) (*zap.Logger, error) {
	return build(configFor(env), env, name)
}

// NewNamedLevel is NewNamed with an explicit level (debug|info|warn|error).
// An empty or unknown level keeps the env default.
func NewNamedLevel(env, name, level string) (*zap.Logger, error) {
	cfg := configFor(env)
	if lvl, err := zapcore.ParseLevel(level); err == nil && level != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return build(cfg, env, name)
}

func configFor(env string) zap.Config {
	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func build(cfg zap.Config, env, name string) (*zap.Logger, error) {
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.Named(name).With(zap.String("env", env)), nil
}
