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
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"INFO", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelSilent, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if got := LevelWarn.String(); got != "warn" {
		t.Errorf("LevelWarn.String() = %q", got)
	}
	if got := Level(42).String(); got != "unknown" {
		t.Errorf("Level(42).String() = %q", got)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelWarn, Output: &buf})

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	got := buf.String()
	for _, absent := range []string{"debug 1", "info 2"} {
		if strings.Contains(got, absent) {
			t.Errorf("output contains %q below the configured level:\n%s", absent, got)
		}
	}
	for _, present := range []string{"[WARN] warn 3", "[ERROR] error 4"} {
		if !strings.Contains(got, present) {
			t.Errorf("output missing %q:\n%s", present, got)
		}
	}
}

func TestLogger_Enabled(t *testing.T) {
	l := NewLogger(Options{Level: LevelInfo})
	if l.Enabled(LevelDebug) {
		t.Error("Enabled(debug) = true at info level")
	}
	if !l.Enabled(LevelError) {
		t.Error("Enabled(error) = false at info level")
	}
	if l.Enabled(LevelSilent) {
		t.Error("Enabled(silent) = true")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	for _, lvl := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if l.Enabled(lvl) {
			t.Errorf("Discard().Enabled(%v) = true", lvl)
		}
	}
}

func TestEnsureLogger(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) returned nil")
	}
	l := NewLogger(Options{})
	if EnsureLogger(l) != Logger(l) {
		t.Error("EnsureLogger did not return the given logger")
	}
}

func TestLogger_WithFieldsSortedAndIsolated(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(Options{Level: LevelDebug, Output: &buf})
	child := parent.WithFields(map[string]any{"path": "a.bin", "engine": "sha256"})
	grandchild := child.WithField("bytes", 12)

	parent.Info("parent")
	child.Info("child")
	grandchild.Info("grandchild")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	want := []string{
		"[INFO] parent",
		"[INFO] child {engine=sha256, path=a.bin}",
		"[INFO] grandchild {bytes=12, engine=sha256, path=a.bin}",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	l.WithField("path", "foo.file").Info("hashed %s", "foo.file")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["level"] != "info" || got["msg"] != "hashed foo.file" {
		t.Errorf("unexpected entry: %v", got)
	}
	fields, ok := got["fields"].(map[string]any)
	if !ok || fields["path"] != "foo.file" {
		t.Errorf("fields = %v", got["fields"])
	}
	if _, err := time.Parse(time.RFC3339Nano, got["time"].(string)); err != nil {
		t.Errorf("time %q: %v", got["time"], err)
	}
}

func TestTextFormatter_Timestamp(t *testing.T) {
	f := &TextFormatter{TimeFormat: time.DateOnly}
	out, err := f.Format(Entry{
		Time:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Level:   LevelInfo,
		Message: "m",
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "2025-03-01 m\n" {
		t.Errorf("Format() = %q", out)
	}
}

type upperFormatter struct{}

func (upperFormatter) Format(e Entry) ([]byte, error) {
	return []byte(strings.ToUpper(e.Message) + "\n"), nil
}

func TestLogger_CustomFormatter(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(Options{Formatter: upperFormatter{}, Output: &buf}).Info("quiet")
	if buf.String() != "QUIET\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFromFlags(t *testing.T) {
	var buf bytes.Buffer
	l, err := FromFlags("debug", "json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("x")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	if _, err := FromFlags("loud", "text", &buf); err == nil {
		t.Error("FromFlags accepted an unknown level")
	}
	if _, err := FromFlags("info", "xml", &buf); err == nil {
		t.Error("FromFlags accepted an unknown format")
	}
}
