// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a json logger at the requested level, falling back to error
// level when the value cannot be parsed.
func NewLogger(l string) *Logger {
	logger := new(Logger)

	var lvl string

	switch lvl = strings.ToLower(l); lvl {
	case "debug", "info", "warn", "error":
	default:
		lvl = "error"
	}

	level, _ := zap.ParseAtomicLevel(lvl)

	c := zap.Config{
		Level:            level,
		Encoding:         "json",
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "@timestamp",
			LevelKey:       "log.level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	z := zap.Must(c.Build())

	logger.SugaredLogger = z.Sugar()
	logger.security = NewSecurityLogger(z.Named("security"))

	logger.Debugf("Logging level set to %s", lvl)

	return logger
}
