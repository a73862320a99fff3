// Package logger provides structured logging for Inkwell.
//
// It wraps Uber's zap logger with a production configuration and a
// configurable level. Both the API server and the email worker call
// InitLogger once at startup and use the global Log afterwards:
//
//	logger.InitLogger("debug") // debug, info, warn, error
//	logger.Log.Info("user registered", zap.String("username", username))
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

func InitLogger(level string) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	Log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}
