// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	level       zapcore.Level
	development bool
	output      io.Writer
	fields      map[string]any
}

// Option configures [New].
type Option func(*config)

// WithLevel sets the minimum enabled level by name ("debug", "info",
// "warn", "error"). Unknown names select info.
func WithLevel(name string) Option {
	return func(cfg *config) {
		level, err := zapcore.ParseLevel(name)
		if err != nil {
			level = zapcore.InfoLevel
		}
		cfg.level = level
	}
}

// WithDevelopment toggles the human-readable console encoder.
func WithDevelopment(enabled bool) Option {
	return func(cfg *config) {
		cfg.development = enabled
	}
}

// WithOutput sends entries to w instead of stderr. A nil writer is ignored.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		if w != nil {
			cfg.output = w
		}
	}
}

// WithFields attaches fields to every entry.
func WithFields(fields map[string]any) Option {
	return func(cfg *config) {
		if cfg.fields == nil {
			cfg.fields = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			cfg.fields[k] = v
		}
	}
}

// New returns a logger writing JSON entries to stderr unless configured
// otherwise.
func New(opts ...Option) (*zap.Logger, error) {
	cfg := config{level: zapcore.InfoLevel}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	zc := zap.NewProductionConfig()
	encoding := "json"
	if cfg.development {
		zc = zap.NewDevelopmentConfig()
		encoding = "console"
	}
	zc.Encoding = encoding
	zc.Level = zap.NewAtomicLevelAt(cfg.level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = cfg.fields
	zc.DisableStacktrace = true

	if cfg.output == nil {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
		return zc.Build()
	}

	var enc zapcore.Encoder
	if cfg.development {
		enc = zapcore.NewConsoleEncoder(zc.EncoderConfig)
	} else {
		enc = zapcore.NewJSONEncoder(zc.EncoderConfig)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(cfg.output), zc.Level)
	logger := zap.New(core)
	if len(cfg.fields) > 0 {
		fs := make([]zap.Field, 0, len(cfg.fields))
		for k, v := range cfg.fields {
			fs = append(fs, zap.Any(k, v))
		}
		logger = logger.With(fs...)
	}
	return logger, nil
}
