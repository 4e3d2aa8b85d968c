// Copyright 2021 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger describes a logger to be used in frugen.
type Logger interface {
	// Debugf logs a message only shown in verbose mode.
	Debugf(format string, args ...interface{})

	// Infof logs an informational message.
	Infof(format string, args ...interface{})

	// Warnf logs an warning message.
	Warnf(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a fatal message and immediately exits the application
	// with os.Exit.
	Fatalf(format string, args ...interface{})
}

// DefaultLogger is the logger used by default everywhere within frugen.
var DefaultLogger Logger

func init() {
	DefaultLogger = New(os.Stderr)
}

// New returns a Logger writing human readable lines to w. Messages below
// info level are dropped until SetLevel lowers the threshold.
func New(w io.Writer) Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerologWrapper{Logger: zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()}
}

type zerologWrapper struct {
	Logger zerolog.Logger
}

// Debugf implements Logger.
func (logger zerologWrapper) Debugf(format string, args ...interface{}) {
	logger.Logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Infof implements Logger.
func (logger zerologWrapper) Infof(format string, args ...interface{}) {
	logger.Logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Warnf implements Logger.
func (logger zerologWrapper) Warnf(format string, args ...interface{}) {
	logger.Logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf implements Logger.
func (logger zerologWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Fatalf implements Logger.
func (logger zerologWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatal().Msg(fmt.Sprintf(format, args...))
}

// SetLevel changes the threshold of DefaultLogger when it is the builtin
// zerolog logger. Custom loggers are left untouched.
func SetLevel(verbose bool) {
	l, ok := DefaultLogger.(zerologWrapper)
	if !ok {
		return
	}
	if verbose {
		l.Logger = l.Logger.Level(zerolog.DebugLevel)
	} else {
		l.Logger = l.Logger.Level(zerolog.InfoLevel)
	}
	DefaultLogger = l
}

// Debugf logs a message only shown in verbose mode.
func Debugf(format string, args ...interface{}) {
	DefaultLogger.Debugf(format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	DefaultLogger.Infof(format, args...)
}

// Warnf logs an warning message.
func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

// Fatalf logs a fatal message and immediately exits the application
// with os.Exit (which is expected to be called by the DefaultLogger.Fatalf).
func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}
