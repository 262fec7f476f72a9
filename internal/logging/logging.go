// Package logging builds the zap logger shared by every command. Each process
// gets a run ID so log lines from one invocation can be grepped together.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Level is a zap level name; empty means info
	Level string
	// File receives JSON logs. Empty disables file logging.
	File string
	// Console receives human-readable logs at warn and above, or at the
	// configured level when Verbose is set. Nil disables console logging.
	Console io.Writer
	Verbose bool
}

// DefaultFile returns the log location under the user cache dir
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prsplit", "prsplit.log")
}

// New returns a logger tagged with a fresh run_id and a func that flushes and
// closes its outputs.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, errors.WithHint(
				errors.Wrapf(err, "logging level %q", opts.Level),
				"use one of debug, info, warn, error")
		}
		level = l
	}
	if opts.Verbose && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core
	closeFile := func() {}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "create log dir")
		}
		sink, closeSink, err := zap.Open(opts.File)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		closeFile = closeSink
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), sink, level))
	}

	if opts.Console != nil {
		consoleLevel := zapcore.WarnLevel
		if opts.Verbose {
			consoleLevel = level
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			zapcore.Lock(zapcore.AddSync(opts.Console)),
			consoleLevel,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("run_id", uuid.NewString()))
	cleanup := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger, cleanup, nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
