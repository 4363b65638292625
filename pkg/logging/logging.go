// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging is the leveled, structured logger used by streamhash.
//
// Digests are the program's output and go to stdout, so log lines are
// written to stderr unless another writer is configured.
package logging

import (
	"fmt"
	"strings"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelSilent suppresses all output.
	LevelSilent
)

var levelNames = [...]string{"debug", "info", "warn", "error", "silent"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelSilent {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel maps a --log-level value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off":
		return LevelSilent, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want one of %s)", s, strings.Join(levelNames[:], ", "))
}

// Format selects the line encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	}
	return "unknown"
}

// ParseFormat maps a --log-format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q (want text or json)", s)
}

// Logger is the logging capability passed through the library. A nil Logger
// is never dereferenced; callers go through EnsureLogger.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Enabled reports whether a line at level would be written.
	Enabled(level Level) bool

	// WithField returns a child logger that adds key=value to every line.
	WithField(key string, value any) Logger
	// WithFields is WithField for several pairs at once.
	WithFields(fields map[string]any) Logger
}

// EnsureLogger returns l, or a discarding logger when l is nil.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}
