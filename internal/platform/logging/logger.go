// Package logging is a thin key/value facade over zap. Context-aware
// methods attach the active OpenTelemetry trace and span ids.
package logging

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"syscall"

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

// Format selects the zap encoder.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ParseFormat falls back to JSON for anything but "console".
func ParseFormat(v string) Format {
	if strings.EqualFold(strings.TrimSpace(v), string(FormatConsole)) {
		return FormatConsole
	}
	return FormatJSON
}

type Options struct {
	Level  Level
	Format Format
	// Writer defaults to stderr so log lines never interleave with the
	// draft prompts on stdout.
	Writer io.Writer
}

type Logger struct {
	zap *zap.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

func New(opts Options) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	encoder := zapcore.NewJSONEncoder(encoderCfg)
	if opts.Format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), opts.Level)
	return FromZap(zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))
}

func NewJSON(level Level, w io.Writer) *Logger {
	return New(Options{Level: level, Format: FormatJSON, Writer: w})
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil || l.zap == nil {
		return Default().zap
	}
	return l.zap
}

// Sync flushes buffered entries. Terminals reject fsync with EINVAL or
// ENOTTY; those are not reported.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	err := l.zap.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{zap: l.Zap().With(pairsToFields(args, 0)...)}
}

// Named adds a dot-separated component name to every entry.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.Zap().Named(name)}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

// write builds fields only once zap has decided the entry is enabled.
func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	ce := l.Zap().Check(level, msg)
	if ce == nil {
		return
	}

	spanCtx := trace.SpanContextFromContext(contextOrBackground(ctx))
	extra := 0
	if spanCtx.IsValid() {
		extra = 2
	}

	fields := pairsToFields(args, extra)
	if spanCtx.IsValid() {
		fields = append(fields,
			zap.Stringer("trace_id", spanCtx.TraceID()),
			zap.Stringer("span_id", spanCtx.SpanID()),
		)
	}
	ce.Write(fields...)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// pairsToFields reads args as alternating key/value pairs. A non-string
// key becomes "arg" and a dangling key gets a nil value.
func pairsToFields(args []any, extra int) []zap.Field {
	fields := make([]zap.Field, 0, (len(args)+1)/2+extra)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}

		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}

		switch v := value.(type) {
		case error:
			fields = append(fields, zap.NamedError(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}
	return fields
}
