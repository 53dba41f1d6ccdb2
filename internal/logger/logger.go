// Package logger builds the zap logger shared by the server components.
package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New returns a production logger for env "prod" or "production" and a
// colourised development logger otherwise.
func New(env string) (*zap.Logger, error) {
    var cfg zap.Config
    switch env {
    case "prod", "production":
        cfg = zap.NewProductionConfig()
        cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
    default:
        cfg = zap.NewDevelopmentConfig()
        cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
        cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    }
    return cfg.Build()
}
