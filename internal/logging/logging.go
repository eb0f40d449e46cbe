// Package logging builds the zap logger used by the stretch command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrUnknownFormat is returned for encoders other than console and json.
var ErrUnknownFormat = errors.New("logging: unknown format")

// Config describes the logger outputs.
type Config struct {
	Level  string
	Format string // "console" or "json"

	// File, when set, adds a size-rotated JSON sink.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Output receives console records. Defaults to stderr.
	Output io.Writer
}

// ParseLevel maps a level name to its zap level. The empty string is info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}

	var level zapcore.Level

	err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name))))
	if err != nil {
		return level, fmt.Errorf("logging: %w", err)
	}

	return level, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New builds a logger. The returned logger should be synced by the caller.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var consoleEncoder zapcore.Encoder

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		consoleEncoder = zapcore.NewConsoleEncoder(encoderConfig())
	case "json":
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(out), level)

	if cfg.File != "" {
		err = os.MkdirAll(filepath.Dir(cfg.File), 0o755)
		if err != nil {
			return nil, fmt.Errorf("logging: failed to create log directory: %w", err)
		}

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})

		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), fileWriter, level))
	}

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
