package tracer

import "fmt"

// Logger receives progress and warning messages from scene building and
// rendering.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes to stdout.
type DefaultLogger struct{}

func (DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func NewDefaultLogger() Logger {
	return DefaultLogger{}
}

// DiscardLogger drops everything.
type DiscardLogger struct{}

func (DiscardLogger) Printf(string, ...interface{}) {}
