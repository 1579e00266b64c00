package logger

import "go.uber.org/zap"

// SugaredLogger is the subset of *zap.SugaredLogger used across the module.
type SugaredLogger interface {
	Desugar() *zap.Logger
	Named(name string) *zap.SugaredLogger
	With(args ...interface{}) *zap.SugaredLogger
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Sync() error
}

type ExtendedSugaredLogger interface {
	SugaredLogger
	Zap() *zap.SugaredLogger
	AtomicLevel() zap.AtomicLevel
	XWith(args ...interface{}) ExtendedSugaredLogger
	XNamed(name string) ExtendedSugaredLogger
}
