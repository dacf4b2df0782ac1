// Package logging builds the process logger: human readable lines on the
// console and the same events as JSON in <dir>/<name>.log.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const DefaultLevel = zerolog.InfoLevel

type Config struct {
	// Name of the logger, also the log file's base name.
	Name string
	// Dir receives <Name>.log. No file is written when empty.
	Dir     string
	Version string
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Console defaults to os.Stderr. Use io.Discard to silence it.
	Console io.Writer
	NoColor bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the configured logger and the closer of its log file.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    cfg.NoColor,
	}}

	var closer io.Closer = nopCloser{}
	var path string
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return zerolog.Nop(), nil, err
		}
		path = filepath.Join(cfg.Dir, cfg.Name+".log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writers = append(writers, f)
		closer = f
	}

	level, invalid := ParseLevel(cfg.Level)
	version := cfg.Version
	if version == "" {
		version = "v0.0.0"
	}
	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("logger", cfg.Name).
		Int("pid", os.Getpid()).
		Str("version", version).
		Logger()

	if invalid {
		log.Warn().Str("level", cfg.Level).Msg("invalid log level, defaulting to info")
	}
	if path != "" {
		log.Debug().Str("file", path).Msg("logging started")
	}
	return log, closer, nil
}

// ParseLevel maps a level name to a zerolog level. An empty name is the
// default level; an unknown one is reported and also yields the default.
func ParseLevel(name string) (zerolog.Level, bool) {
	if name == "" {
		return DefaultLevel, false
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel, true
	}
	return level, false
}
