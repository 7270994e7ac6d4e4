package cliconfig

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/comptree/pkg/log"
)

// Logger returns a console zerolog logger writing to w at the configured
// level. Invalid levels fall back to info; Validate reports them.
func Logger(w io.Writer, level string) zerolog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
