package logger

import (
	"context"
	"io"

	"github.com/ttacon/chalk"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var DefaultLogLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

type loggerContextKey struct{}

var key = loggerContextKey{}

type extendedSugaredLogger struct {
	SugaredLogger
	level zap.AtomicLevel
}

func (l *extendedSugaredLogger) Zap() *zap.SugaredLogger {
	return l.SugaredLogger.(*zap.SugaredLogger)
}

func (l *extendedSugaredLogger) AtomicLevel() zap.AtomicLevel {
	return l.level
}

func (l *extendedSugaredLogger) XWith(args ...interface{}) ExtendedSugaredLogger {
	return &extendedSugaredLogger{
		SugaredLogger: l.With(args...),
		level:         zap.NewAtomicLevelAt(l.level.Level()),
	}
}

func (l *extendedSugaredLogger) XNamed(name string) ExtendedSugaredLogger {
	return &extendedSugaredLogger{
		SugaredLogger: l.Named(name),
		level:         zap.NewAtomicLevelAt(l.level.Level()),
	}
}

type LoggerOptions struct {
	logLevel zapcore.Level
	writer   io.Writer
	color    *bool
}

type LoggerOption func(*LoggerOptions)

func (o *LoggerOptions) apply(opts ...LoggerOption) {
	for _, op := range opts {
		op(o)
	}
}

func WithLogLevel(l zapcore.Level) LoggerOption {
	return func(o *LoggerOptions) {
		o.logLevel = l
	}
}

func WithWriter(w io.Writer) LoggerOption {
	return func(o *LoggerOptions) {
		o.writer = w
	}
}

func WithColor(color bool) LoggerOption {
	return func(o *LoggerOptions) {
		o.color = &color
	}
}

// ParseLevel accepts zap level names ("debug", "info", ...). An empty
// string yields the default level.
func ParseLevel(text string) (zapcore.Level, error) {
	if text == "" {
		return DefaultLogLevel.Level(), nil
	}
	return zapcore.ParseLevel(text)
}

func New(opts ...LoggerOption) ExtendedSugaredLogger {
	options := &LoggerOptions{
		logLevel: DefaultLogLevel.Level(),
	}
	options.apply(opts...)
	var color bool
	if options.color != nil {
		color = *options.color
	} else {
		color = ColorEnabled()
	}
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:    "M",
		LevelKey:      "L",
		TimeKey:       "T",
		NameKey:       "N",
		CallerKey:     "C",
		FunctionKey:   "",
		StacktraceKey: "S",
		LineEnding:    "\n",
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeCaller: func(ec zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
			if color {
				enc.AppendString(chalk.Dim.TextStyle(ec.TrimmedPath()))
			} else {
				enc.AppendString(ec.TrimmedPath())
			}
		},
		EncodeName: func(s string, enc zapcore.PrimitiveArrayEncoder) {
			if len(s) == 0 {
				return
			}
			if color {
				enc.AppendString(chalk.Green.Color(s))
			} else {
				enc.AppendString(s)
			}
		},
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		ConsoleSeparator: " ",
	}
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level := zap.NewAtomicLevelAt(options.logLevel)
	if options.writer != nil {
		ws := zapcore.Lock(zapcore.AddSync(options.writer))
		encoder := zapcore.NewConsoleEncoder(encoderConfig)
		core := zapcore.NewCore(encoder, ws, level)
		return &extendedSugaredLogger{
			SugaredLogger: zap.New(core).Sugar(),
			level:         level,
		}
	}
	zapConfig := zap.Config{
		Level:             level,
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	lg, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return &extendedSugaredLogger{
		SugaredLogger: lg.Sugar(),
		level:         level,
	}
}

func AddToContext(ctx context.Context, lg ExtendedSugaredLogger) context.Context {
	return context.WithValue(ctx, key, lg)
}

// FromContext returns the logger stored in ctx, or a discarding logger if
// there is none.
func FromContext(ctx context.Context) ExtendedSugaredLogger {
	lg, ok := ctx.Value(key).(ExtendedSugaredLogger)
	if !ok {
		return &extendedSugaredLogger{
			SugaredLogger: zap.NewNop().Sugar(),
			level:         zap.NewAtomicLevelAt(zapcore.FatalLevel),
		}
	}
	return lg
}
