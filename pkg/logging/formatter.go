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
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Entry is one log line before formatting.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  map[string]any
}

// Formatter renders an Entry, including the trailing newline.
type Formatter interface {
	Format(entry Entry) ([]byte, error)
}

// TextFormatter renders
//
//	[2006-01-02T15:04:05Z] [INFO] hashed file {engine=sha256, path=a.bin}
//
// Fields are sorted by key.
type TextFormatter struct {
	TimeFormat string
	ShowLevel  bool
}

func (f *TextFormatter) Format(entry Entry) ([]byte, error) {
	var b strings.Builder

	if f.TimeFormat != "" {
		b.WriteString(entry.Time.Format(f.TimeFormat))
		b.WriteByte(' ')
	}
	if f.ShowLevel {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(entry.Level.String()))
	}
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := slices.Sorted(maps.Keys(entry.Fields))
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, entry.Fields[k])
		}
		b.WriteByte('}')
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

type jsonEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// JSONFormatter renders one JSON object per line. TimeFormat defaults to
// time.RFC3339Nano.
type JSONFormatter struct {
	TimeFormat string
}

func (f *JSONFormatter) Format(entry Entry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}

	data, err := json.Marshal(jsonEntry{
		Time:    entry.Time.Format(layout),
		Level:   entry.Level.String(),
		Message: entry.Message,
		Fields:  entry.Fields,
	})
	if err != nil {
		return nil, fmt.Errorf("encode log entry: %w", err)
	}
	return append(data, '\n'), nil
}
