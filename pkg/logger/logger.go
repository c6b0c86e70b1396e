// Package logger configures the process-wide zerolog instance for the
// console. Call Init once during startup; every component receives its
// logger from the composition root rather than reaching for a global,
// but Get remains available for early-exit paths before wiring is done.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects output format and verbosity at startup.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches from JSON lines to colourised console output.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the root logger. Repeated calls return the logger from the
// first call unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := levelFrom(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "console").
			Logger()

		ready = true
	})
	return root
}

// Get returns the root logger. It panics when Init has not run, which
// only happens on a wiring mistake in main.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get before Init")
	}
	return root
}

// Reset discards the singleton so a later Init rebuilds it. Test use only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func levelFrom(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
