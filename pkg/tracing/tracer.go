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

// Package tracing wraps digest operations in spans.
//
// The default build uses a no-op tracer. Building with -tags=otel and
// configuring the standard OTEL_* environment variables exports spans over
// OTLP/HTTP instead. Callers use the same API either way.
package tracing

import (
	"context"
	"sync/atomic"
)

// ServiceName is reported when OTEL_SERVICE_NAME is unset.
const ServiceName = "streamhash"

// Span is one timed operation.
type Span interface {
	SetAttribute(key string, value any)
	// RecordError marks the span as failed. A nil err is ignored.
	RecordError(err error)
	End()
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

type noopSpan struct{}

func (noopSpan) SetAttribute(string, any) {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) End()                     {}

// NoopTracer returns the context unchanged and spans that record nothing.
type NoopTracer struct{}

func (NoopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

type holder struct{ t Tracer }

var current atomic.Pointer[holder]

func init() {
	current.Store(&holder{NoopTracer{}})
}

// SetTracer installs t as the process-wide tracer. nil restores the no-op
// tracer.
func SetTracer(t Tracer) {
	if t == nil {
		t = NoopTracer{}
	}
	current.Store(&holder{t})
}

// GetTracer returns the process-wide tracer. It is never nil.
func GetTracer() Tracer {
	return current.Load().t
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	_, noop := GetTracer().(NoopTracer)
	return !noop
}

// Start starts a span on the process-wide tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return GetTracer().Start(ctx, name)
}

// Run runs fn inside a span named name carrying attrs. An error returned by
// fn is recorded on the span and passed through. Without a tracer fn is
// called directly.
func Run(ctx context.Context, name string, attrs map[string]any, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}

	ctx, span := Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}

	err := fn(ctx)
	span.RecordError(err)
	return err
}
