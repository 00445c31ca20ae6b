// Package logging configures the logrus logger shared by the command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Options configures New.
type Options struct {
	Debug  bool
	Format string
	Output io.Writer
}

// New returns a logger writing to Output, stderr by default.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	logger.SetLevel(logrus.WarnLevel)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch opts.Format {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}

	return logger, nil
}

// Discard returns a logger that drops everything, for tests and library callers.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Leveled adapts a logrus logger to the key/value leveled logger interface used by
// the retrying HTTP client.
type Leveled struct {
	Logger logrus.FieldLogger
}

func (l Leveled) Error(msg string, keysAndValues ...any) {
	l.Logger.WithFields(fields(keysAndValues)).Error(msg)
}

func (l Leveled) Warn(msg string, keysAndValues ...any) {
	l.Logger.WithFields(fields(keysAndValues)).Warn(msg)
}

func (l Leveled) Info(msg string, keysAndValues ...any) {
	l.Logger.WithFields(fields(keysAndValues)).Info(msg)
}

func (l Leveled) Debug(msg string, keysAndValues ...any) {
	l.Logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func fields(keysAndValues []any) logrus.Fields {
	out := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 == 1 {
		out["extra"] = keysAndValues[len(keysAndValues)-1]
	}
	return out
}
