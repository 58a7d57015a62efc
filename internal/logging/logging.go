// Package logging builds the zap logger used by the CLI. Library packages
// take a *zap.Logger and default to a no-op one.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// verbosity counts from -v flags
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // + run summaries
	VerbosityDebug = 2 // + phase boundaries
)

// VerbosityToLevel maps -v counts to zap levels; anything past -vv is
// debug.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

type Options struct {
	Verbosity int
	JSON      bool
	// Writer defaults to stderr; stdout carries generated output.
	Writer io.Writer
}

func encoderConfig(json bool) zapcore.EncoderConfig {
	if json {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}
	// консоль: без времени и caller, только уровень и сообщение
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func New(opts Options) *zap.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	cfg := encoderConfig(opts.JSON)
	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), VerbosityToLevel(opts.Verbosity))
	return zap.New(core)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
