// internal/logging/logging.go
//
// Global zerolog setup for the guess-number process.
// Responsibilities:
//   - Parse LOG_LEVEL into a global level (unknown/empty → info).
//   - Select JSON lines (default) or a human-readable console writer.
//   - Install the result as the package-level log.Logger used by adapters.

package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger and returns it.
// format is "json" (default) or "console"; an unknown level leaves the global level at info.
func Setup(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}
