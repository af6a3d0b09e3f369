// Copyright 2025 The ember Authors
// This file is part of the ember library.
//
// The ember library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ember library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ember library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"log/slog"
	"math"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// levelMaxVerbosity is the verbosity that enables all levels.
const levelMaxVerbosity slog.Level = slog.Level(math.MinInt)

var root atomic.Value

func init() {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	root.Store(&logger{slog.New(NewTerminalHandlerWithLevel(os.Stderr, slog.LevelInfo, useColor))})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// The following functions forward to the exported methods of the root logger.
// A record logged through them carries a source position inside this package
// rather than at the caller.

// New returns a new logger with the given context.
// New is a convenient alias for Root().New
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...interface{}) {
	Root().Trace(msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...interface{}) {
	Root().Debug(msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...interface{}) {
	Root().Info(msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...interface{}) {
	Root().Warn(msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...interface{}) {
	Root().Error(msg, ctx...)
}

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...interface{}) {
	Root().Crit(msg, ctx...)
}

// LevelAlignedString returns the name of a level padded with spaces to 6 characters.
func LevelAlignedString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "TRACE "
	case slog.LevelDebug:
		return "DEBUG "
	case slog.LevelInfo:
		return "INFO  "
	case slog.LevelWarn:
		return "WARN  "
	case slog.LevelError:
		return "ERROR "
	case LevelCrit:
		return "CRIT  "
	default:
		return "unknown level "
	}
}

// FromLegacyLevel converts from integer verbosity level constants
// to levels defined by slog
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return slog.LevelError
	case 2:
		return slog.LevelWarn
	case 3:
		return slog.LevelInfo
	case 4:
		return slog.LevelDebug
	case 5:
		return LevelTrace
	default:
		break
	}
	if lvl > 5 {
		return LevelTrace
	}
	return LevelCrit
}
