// Package logger builds the JSON logr.Logger used across masterweb and carries
// it through request contexts.
package logger

import (
	"context"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	VersionKey   = "version"
)

// New returns a logr.Logger backed by a zap JSON core writing to stderr, and a
// sync func to flush it on exit. level follows zapcore (-1 debug, 0 info, ...).
func New(level int8, version string) (logr.Logger, func()) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	).With([]zapcore.Field{zap.String(VersionKey, version)})

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }
}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger stored in ctx, or a discard logger.
func FromContext(ctx context.Context) logr.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
		return l
	}
	return logr.Discard()
}
