// Package logging builds the application's zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lojacapivara/catalog/internal/config"
)

// New builds a logger for cfg.
//
// Development mode logs human-readable lines at debug level, production mode
// logs JSON at info level. verbose forces debug level in either mode. With
// file output enabled, records are also written as JSON to a rotating file.
func New(cfg config.LoggerConfig, verbose bool) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	// stdout carries command output
	zapConfig.OutputPaths = []string{"stderr"}
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if !cfg.FileEnable {
		return zapConfig.Build(zap.AddCaller())
	}

	core := zapcore.NewTee(
		fileCore(cfg.Filename, zapConfig.Level),
		zapcore.NewCore(
			consoleEncoder(cfg.Mode),
			zapcore.Lock(os.Stderr),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Install builds a logger for cfg and makes it the zap global.
// The returned function restores the previous global and flushes the logger.
func Install(cfg config.LoggerConfig, verbose bool) (*zap.Logger, func(), error) {
	logger, err := New(cfg, verbose)
	if err != nil {
		return nil, nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		undo()
	}, nil
}

// NewFileOnly builds a logger that never writes to the terminal, for the
// full-screen UI. It is a no-op logger when file output is disabled.
func NewFileOnly(cfg config.LoggerConfig, verbose bool) *zap.Logger {
	if !cfg.FileEnable {
		return zap.NewNop()
	}
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	return zap.New(fileCore(cfg.Filename, level), zap.AddCaller())
}

func fileCore(filename string, level zapcore.LevelEnabler) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(rotator),
		level,
	)
}

func consoleEncoder(mode string) zapcore.Encoder {
	if mode == "production" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}
