// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
type Options struct {
	Level  string
	Format string
	File   string

	// Console is where console output goes; nil means os.Stderr.
	Console io.Writer
	// NoConsole drops console output and keeps only the file.
	NoConsole bool
	// WithCaller adds the caller's file and line to each event.
	WithCaller bool
}

// Logger is a configured logger plus the resources it holds.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, errors.Errorf("unknown log level %q", name)
	}
}

// New builds a logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var writers []io.Writer
	if !opts.NoConsole {
		out := opts.Console
		if out == nil {
			out = os.Stderr
		}
		if opts.Format == "json" {
			writers = append(writers, out)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: out})
		}
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		if opts.Format == "json" {
			writers = append(writers, file)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: file, NoColor: true})
		}
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.WithCaller {
		ctx = ctx.Caller()
	}
	return &Logger{Logger: ctx.Logger(), file: file}, nil
}

// Init builds a logger from opts and installs it as the global log.Logger.
func Init(opts Options) (*Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	log.Logger = l.Logger
	return l, nil
}
