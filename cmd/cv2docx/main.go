package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, positional, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Println("cv2docx " + Version)
		os.Exit(ExitSuccess)
	}

	log := newLogger(flags.common)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug().Msgf(format, args...)
	}))

	env := &Environment{Stdout: os.Stdout, Stderr: os.Stderr}
	if err := run(flags, positional, env, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// newLogger builds the diagnostic logger. Quiet wins over verbose.
func newLogger(f commonFlags) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case f.quiet:
		level = zerolog.ErrorLevel
	case f.verbose:
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
