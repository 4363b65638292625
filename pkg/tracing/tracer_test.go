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

package tracing

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

func (s *recordingSpan) SetAttribute(k string, v any) { s.attrs[k] = v }
func (s *recordingSpan) RecordError(err error)        { s.err = err }
func (s *recordingSpan) End()                         { s.ended = true }

type recordingTracer struct {
	mu    sync.Mutex
	spans []*recordingSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &recordingSpan{name: name, attrs: map[string]any{}}
	r.spans = append(r.spans, s)
	return ctx, s
}

func TestDefaultTracerIsNoop(t *testing.T) {
	if Enabled() {
		t.Fatal("Enabled() = true before any tracer was installed")
	}
	called := false
	err := Run(context.Background(), "op", map[string]any{"k": "v"}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("Run() = %v, called = %v", err, called)
	}
}

func TestRun_RecordsSpan(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	t.Cleanup(func() { SetTracer(nil) })

	if !Enabled() {
		t.Fatal("Enabled() = false with a tracer installed")
	}

	sentinel := errors.New("boom")
	err := Run(context.Background(), "digest.file", map[string]any{"path": "foo.file"}, func(context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Run() = %v, want %v", err, sentinel)
	}

	if len(rec.spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "digest.file" || s.attrs["path"] != "foo.file" {
		t.Errorf("span = %+v", s)
	}
	if !errors.Is(s.err, sentinel) {
		t.Errorf("span error = %v", s.err)
	}
	if !s.ended {
		t.Error("span was not ended")
	}
}

func TestSetTracerNilRestoresNoop(t *testing.T) {
	SetTracer(&recordingTracer{})
	SetTracer(nil)
	if Enabled() {
		t.Error("Enabled() = true after SetTracer(nil)")
	}
	if GetTracer() == nil {
		t.Error("GetTracer() = nil")
	}
}

func TestInitFromEnvDisabled(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	if err := InitFromEnv(context.Background()); err != nil {
		t.Fatalf("InitFromEnv() = %v", err)
	}
	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if Enabled() {
		t.Error("tracing enabled with OTEL_TRACES_EXPORTER=none")
	}
}
