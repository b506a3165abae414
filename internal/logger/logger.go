// Package logger builds the zerolog loggers shared by the binaries.
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a leveled logger writing JSON to w, or human readable lines
// when console is set.
func New(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
