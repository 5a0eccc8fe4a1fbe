// Package logging builds the zap loggers used by the command-line tools.
// Library packages never log; they return errors instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Format selects the log encoding.
type Format int

const (
	// FormatAuto uses the console encoding on terminals and JSON otherwise.
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// ParseFormat accepts auto, console or json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "console", "text":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown log format %q (want auto, console or json)", s)
	}
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

type config struct {
	level  zapcore.Level
	format Format
	out    io.Writer
	fields []zap.Field
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level.
func WithLevel(level zapcore.Level) Option {
	return func(c *config) { c.level = level }
}

// WithVerbose lowers the level to debug when verbose is set.
func WithVerbose(verbose bool) Option {
	return func(c *config) {
		if verbose {
			c.level = zapcore.DebugLevel
		}
	}
}

// WithFormat selects the encoding.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithOutput sets the destination. The default is stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithFields attaches fields to every entry.
func WithFields(fields ...zap.Field) Option {
	return func(c *config) { c.fields = append(c.fields, fields...) }
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     encodeRFC3339NanoUTC,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func encodeRFC3339NanoUTC(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// New builds a logger. The default is warn level on stderr with the
// encoding chosen by FormatAuto.
func New(opts ...Option) *zap.Logger {
	cfg := config{level: zapcore.WarnLevel, out: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	format := cfg.format
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(cfg.out) {
			format = FormatConsole
		}
	}

	var enc zapcore.Encoder
	if format == FormatConsole {
		ec := encoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		ec.CallerKey = zapcore.OmitKey
		if isTerminal(cfg.out) {
			ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(ec)
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(cfg.out)), zap.NewAtomicLevelAt(cfg.level))
	return zap.New(core, zap.AddCaller()).With(cfg.fields...)
}

// Sync flushes l, ignoring the error stderr and stdout return on some
// platforms.
func Sync(l *zap.Logger) {
	if err := l.Sync(); err != nil && !strings.Contains(err.Error(), "inappropriate ioctl for device") &&
		!strings.Contains(err.Error(), "invalid argument") {
		fmt.Fprintf(os.Stderr, "log sync: %v\n", err)
	}
}
