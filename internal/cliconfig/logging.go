package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the CLI logger from a validated Config. Output goes to
// stderr, or to a size-rotated file when LogFile is set. The returned closer
// releases the file and is a no-op otherwise.
func NewLogger(cfg Config, stderr *os.File) (zerolog.Logger, io.Closer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
		out, closer = file, file
	}

	if useConsole(cfg.LogFormat, cfg.LogFile == "", stderr) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.LogFile != ""}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer
}

// useConsole picks human-readable output for "console", JSON for "json", and
// for "auto" console only when writing to a terminal.
func useConsole(format string, toStderr bool, stderr *os.File) bool {
	switch format {
	case LogFormatConsole:
		return true
	case LogFormatJSON:
		return false
	default:
		return toStderr && stderr != nil && term.IsTerminal(int(stderr.Fd()))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
