// Package logging wraps zap with loosely typed key/value pairs and
// trace-aware context variants, so callers never import zap directly.
package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is safe for concurrent use. The zero value is not usable; build one
// with NewJSON or NewNop.
type Logger struct {
	core   *zap.Logger
	synced atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// NewJSON builds a production JSON logger writing to stdout at the given level.
func NewJSON(level Level) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level)
	return &Logger{core: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))}
}

func NewNop() *Logger {
	return &Logger{core: zap.NewNop()}
}

// Default returns the process-wide logger. It is a nop until SetDefault runs.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return NewNop()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	defaultLogger.Store(l)
}

// Sync flushes buffered entries. Safe to defer from main; repeated calls are nops.
func (l *Logger) Sync() error {
	if l == nil || l.core == nil {
		return nil
	}
	if !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.core.Sync()
}

func (l *Logger) Debug(msg string, kv ...any) { l.write(nil, zap.DebugLevel, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.write(nil, zap.InfoLevel, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.write(nil, zap.WarnLevel, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.write(nil, zap.ErrorLevel, msg, kv) }

func (l *Logger) DebugContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zap.DebugLevel, msg, kv)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zap.InfoLevel, msg, kv)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zap.WarnLevel, msg, kv)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zap.ErrorLevel, msg, kv)
}

func (l *Logger) write(ctx context.Context, level zapcore.Level, msg string, kv []any) {
	logger := l
	if logger == nil || logger.core == nil {
		logger = Default()
	}

	ce := logger.core.Check(level, msg)
	if ce == nil {
		return
	}

	fields := toFields(kv)
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	ce.Write(fields...)
}

// toFields interprets kv as alternating keys and values. A trailing key
// without a value and non-string keys are kept rather than dropped, so a
// miswired call site still surfaces in the output.
func toFields(kv []any) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2+2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			key = "field"
		}
		if i+1 >= len(kv) {
			fields = append(fields, zap.Any(key, "(missing)"))
			break
		}
		switch v := kv[i+1].(type) {
		case error:
			fields = append(fields, zap.NamedError(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}
	return fields
}
