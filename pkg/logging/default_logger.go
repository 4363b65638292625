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

package logging

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// Options configures NewLogger.
type Options struct {
	Level  Level
	Format Format
	// Formatter overrides Format when set.
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output io.Writer
	// TimeFormat is passed to the built-in formatters. Empty disables
	// timestamps in text output.
	TimeFormat string
}

// DefaultLogger writes formatted lines to a single writer. Child loggers made
// by WithField share the parent's writer and lock.
type DefaultLogger struct {
	level     Level
	formatter Formatter
	fields    map[string]any

	mu  *sync.Mutex
	out io.Writer
}

// NewLogger builds a DefaultLogger from opts.
func NewLogger(opts Options) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		default:
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: true}
		}
	}

	return &DefaultLogger{
		level:     opts.Level,
		formatter: formatter,
		mu:        &sync.Mutex{},
		out:       out,
	}
}

// FromFlags builds a logger from the CLI's --log-level and --log-format
// values.
func FromFlags(level, format string, out io.Writer) (*DefaultLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	fmtr, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return NewLogger(Options{Level: lvl, Format: fmtr, Output: out}), nil
}

// Discard returns a logger that writes nothing.
func Discard() *DefaultLogger {
	return NewLogger(Options{Level: LevelSilent, Output: io.Discard})
}

func (l *DefaultLogger) WithFields(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)

	child := *l
	child.fields = merged
	return &child
}

func (l *DefaultLogger) WithField(key string, value any) Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *DefaultLogger) Enabled(level Level) bool {
	return level < LevelSilent && level >= l.level
}

func (l *DefaultLogger) log(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	data, err := l.formatter.Format(Entry{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Fields:  l.fields,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.out, "logging error: %v\n", err)
		return
	}
	_, _ = l.out.Write(data)
}

func (l *DefaultLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *DefaultLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *DefaultLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *DefaultLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
