package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger implements the Logger interface using zap.
type logger struct {
	zap *zap.Logger
}

// noopLogger implements Logger interface but does nothing.
type noopLogger struct{}

type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
	LevelFatal LogLevel = "fatal"
	LevelDebug LogLevel = "debug"
)

// NewLogger creates a new logger with the given configuration.
func NewLogger(config LoggingConfig) Logger {
	var zapLogger *zap.Logger

	// Determine log level
	logLevel := zapcore.InfoLevel

	switch strings.ToLower(string(config.Level)) {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "info":
		logLevel = zapcore.InfoLevel
	case "warn", "warning":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	case "fatal":
		logLevel = zapcore.FatalLevel
	}

	// Configure logger based on environment
	if config.Environment == "production" || config.Format == "json" {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(logLevel)
		zapLogger, _ = zapConfig.Build(zap.AddCallerSkip(1))
	} else {
		zapLogger = createDevelopmentLogger(logLevel)
	}

	return &logger{zap: zapLogger}
}

// NewDevelopmentLogger creates a development logger with console output.
func NewDevelopmentLogger() Logger {
	return &logger{zap: createDevelopmentLogger(zapcore.DebugLevel)}
}

// NewDevelopmentLoggerWithLevel creates a development logger with specified level.
func NewDevelopmentLoggerWithLevel(level zapcore.Level) Logger {
	return &logger{zap: createDevelopmentLogger(level)}
}

// NewProductionLogger creates a production logger.
func NewProductionLogger() Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapLogger, _ := config.Build(zap.AddCallerSkip(1))

	return &logger{zap: zapLogger}
}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

// createDevelopmentLogger builds a console-encoded zap logger suitable for
// local runs: human-readable, not colorized (this library has no terminal
// surface of its own to justify the extra complexity of ANSI output).
func createDevelopmentLogger(level zapcore.Level) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, _ := config.Build(zap.AddCallerSkip(1))

	return zapLogger
}

// Implementation of Logger interface for logger

func (l *logger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, fieldsToZap(fields)...)
}

func (l *logger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fieldsToZap(fields)...)
}

func (l *logger) Warn(msg string, fields ...Field) {
	l.zap.Warn(msg, fieldsToZap(fields)...)
}

func (l *logger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fieldsToZap(fields)...)
}

func (l *logger) Fatal(msg string, fields ...Field) {
	l.zap.Fatal(msg, fieldsToZap(fields)...)
}

func (l *logger) Debugf(template string, args ...any) {
	l.zap.Debug(fmt.Sprintf(template, args...))
}

func (l *logger) Infof(template string, args ...any) {
	l.zap.Info(fmt.Sprintf(template, args...))
}

func (l *logger) Warnf(template string, args ...any) {
	l.zap.Warn(fmt.Sprintf(template, args...))
}

func (l *logger) Errorf(template string, args ...any) {
	l.zap.Error(fmt.Sprintf(template, args...))
}

func (l *logger) Fatalf(template string, args ...any) {
	l.zap.Fatal(fmt.Sprintf(template, args...))
}

func (l *logger) With(fields ...Field) Logger {
	return &logger{zap: l.zap.With(fieldsToZap(fields)...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sugar() SugarLogger {
	return &sugarLogger{sugar: l.zap.Sugar()}
}

func (l *logger) Sync() error {
	return l.zap.Sync()
}

// Implementation of Logger interface for noopLogger

func (l *noopLogger) Debug(msg string, fields ...Field)   {}
func (l *noopLogger) Info(msg string, fields ...Field)    {}
func (l *noopLogger) Warn(msg string, fields ...Field)    {}
func (l *noopLogger) Error(msg string, fields ...Field)   {}
func (l *noopLogger) Fatal(msg string, fields ...Field)   {}
func (l *noopLogger) Debugf(template string, args ...any) {}
func (l *noopLogger) Infof(template string, args ...any)  {}
func (l *noopLogger) Warnf(template string, args ...any)  {}
func (l *noopLogger) Errorf(template string, args ...any) {}
func (l *noopLogger) Fatalf(template string, args ...any) {}
func (l *noopLogger) With(fields ...Field) Logger         { return l }
func (l *noopLogger) Named(name string) Logger            { return l }
func (l *noopLogger) Sugar() SugarLogger                  { return &noopSugarLogger{} }
func (l *noopLogger) Sync() error                         { return nil }

// noopSugarLogger implements SugarLogger interface but does nothing.
type noopSugarLogger struct{}

func (s *noopSugarLogger) Debugw(msg string, keysAndValues ...any) {}
func (s *noopSugarLogger) Infow(msg string, keysAndValues ...any)  {}
func (s *noopSugarLogger) Warnw(msg string, keysAndValues ...any)  {}
func (s *noopSugarLogger) Errorw(msg string, keysAndValues ...any) {}
func (s *noopSugarLogger) Fatalw(msg string, keysAndValues ...any) {}
func (s *noopSugarLogger) With(args ...any) SugarLogger            { return s }

// sugarLogger implements the SugarLogger interface.
type sugarLogger struct {
	sugar *zap.SugaredLogger
}

// Implementation of SugarLogger interface

func (s *sugarLogger) Debugw(msg string, keysAndValues ...any) {
	s.sugar.Debugw(msg, keysAndValues...)
}

func (s *sugarLogger) Infow(msg string, keysAndValues ...any) {
	s.sugar.Infow(msg, keysAndValues...)
}

func (s *sugarLogger) Warnw(msg string, keysAndValues ...any) {
	s.sugar.Warnw(msg, keysAndValues...)
}

func (s *sugarLogger) Errorw(msg string, keysAndValues ...any) {
	s.sugar.Errorw(msg, keysAndValues...)
}

func (s *sugarLogger) Fatalw(msg string, keysAndValues ...any) {
	s.sugar.Fatalw(msg, keysAndValues...)
}

func (s *sugarLogger) With(args ...any) SugarLogger {
	return &sugarLogger{sugar: s.sugar.With(args...)}
}

// Utility functions

// fieldsToZap converts Field interfaces to zap.Field, skipping nil fields
// (Conditional and Nullable return nil when their value is absent).
func fieldsToZap(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))

	for _, field := range fields {
		if field == nil {
			continue
		}

		zapFields = append(zapFields, field.ZapField())
	}

	return zapFields
}

// NewField creates a field from an arbitrary key/value pair.
func NewField(key string, value any) Field {
	return &CustomField{key: key, value: value}
}

// LogPanic logs a recovered panic with its stack trace.
func LogPanic(logger Logger, recovered any) {
	logger.Error("panic recovered",
		Any("panic", recovered),
		Stack("stacktrace"),
	)
}
