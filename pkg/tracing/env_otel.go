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

//go:build otel

package tracing

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/streamhash/streamhash"
	localCollector      = "http://localhost:4318"
)

var (
	providerMu sync.Mutex
	provider   *sdktrace.TracerProvider
)

// InitFromEnv installs an OTLP/HTTP tracer. OTEL_TRACES_EXPORTER=none leaves
// the no-op tracer in place. Without an OTEL_EXPORTER_OTLP_*ENDPOINT the
// exporter targets a local collector over plain HTTP.
func InitFromEnv(ctx context.Context) error {
	if os.Getenv("OTEL_TRACES_EXPORTER") == "none" {
		return nil
	}

	var opts []otlptracehttp.Option
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" && os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(localCollector))
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create OTLP exporter: %w", err)
	}

	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = ServiceName
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(name),
		)),
	)
	otel.SetTracerProvider(tp)

	providerMu.Lock()
	provider = tp
	providerMu.Unlock()

	SetTracer(otelTracer{tp.Tracer(instrumentationName)})
	return nil
}

// Shutdown flushes batched spans. Pass a context with a deadline.
func Shutdown(ctx context.Context) error {
	providerMu.Lock()
	tp := provider
	provider = nil
	providerMu.Unlock()

	if tp == nil {
		return nil
	}
	SetTracer(nil)
	return tp.Shutdown(ctx)
}

type otelTracer struct {
	tracer trace.Tracer
}

func (t otelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, otelSpan{span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(keyValue(key, value))
}

func (s otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) End() {
	s.span.End()
}

func keyValue(key string, value any) attribute.KeyValue {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case int64:
		return k.Int64(v)
	case []string:
		return k.StringSlice(v)
	case nil:
		return k.String("")
	default:
		return k.String(fmt.Sprint(v))
	}
}
