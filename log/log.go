// Copyright 2025 The go-cryptodiff Authors
// This file is part of the go-cryptodiff library.
//
// The go-cryptodiff library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-cryptodiff library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-cryptodiff library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides a key-value logger in the log15 style, backed by
// log/slog. Call sites pass alternating keys and values:
//
//	log.Info("decoded operation", "kind", op.Kind, "operands", len(op.Operands))
package log

import (
	"context"
	"log/slog"
	"os"
)

// Extra verbosity levels below slog's Debug; Crit sits above Error.
const (
	LevelTrace = slog.Level(-8)
	LevelCrit  = slog.Level(12)
)

// Logger carries a bound context of key-value pairs.
type Logger struct {
	inner *slog.Logger
}

var root = Logger{inner: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: levelVar(),
}))}

var rootLevel = new(slog.LevelVar)

func levelVar() *slog.LevelVar {
	rootLevel.Set(slog.LevelInfo)
	return rootLevel
}

// SetVerbosity adjusts the root handler's level threshold.
func SetVerbosity(l slog.Level) { rootLevel.Set(l) }

// Root returns the process-wide logger.
func Root() Logger { return root }

// New returns a logger with ctx prepended to every record.
func New(ctx ...any) Logger { return Logger{inner: root.inner.With(ctx...)} }

// With returns a child logger with additional bound context.
func (l Logger) With(ctx ...any) Logger { return Logger{inner: l.inner.With(ctx...)} }

func (l Logger) write(level slog.Level, msg string, ctx ...any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l Logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx...) }
func (l Logger) Debug(msg string, ctx ...any) { l.write(slog.LevelDebug, msg, ctx...) }
func (l Logger) Info(msg string, ctx ...any)  { l.write(slog.LevelInfo, msg, ctx...) }
func (l Logger) Warn(msg string, ctx ...any)  { l.write(slog.LevelWarn, msg, ctx...) }
func (l Logger) Error(msg string, ctx ...any) { l.write(slog.LevelError, msg, ctx...) }

// Crit logs at the highest severity and exits the process.
func (l Logger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// Package-level helpers on the root logger.
func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { root.Crit(msg, ctx...) }
