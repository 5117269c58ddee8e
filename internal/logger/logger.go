// Package logger provides the configured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// ServiceName is attached to every log line.
const ServiceName = "enw-backend"

// New returns a logger writing to stdout. Pretty switches to the console
// writer for local development. Unknown levels fall back to info.
func New(level string, pretty bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return build(out, level)
}

// Setup builds the logger and installs it as the global zerolog logger so
// packages using zerolog/log share the same configuration.
func Setup(level string, pretty bool) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	l := New(level, pretty)
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}

func build(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().
		Str("service", ServiceName).
		Timestamp().
		Logger()
}
