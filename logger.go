package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setLogger logs to stderr, stdout may carry the alignments.
// When log is set a json copy of the logs is kept there as well.
func setLogger(debug bool, log string) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.Lock(os.Stderr), level),
	}

	if log != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   log,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level,
		))
	}

	opts := []zap.Option{}
	if debug {
		opts = append(opts, zap.AddCaller())
	}

	logger = zap.New(zapcore.NewTee(cores...), opts...)
	sugar = logger.Sugar()
}
