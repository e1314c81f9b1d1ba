// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-arcade/confhub/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/go-arcade/confhub"

// Conf OpenTelemetry tracing settings. Spans are exported over OTLP/HTTP.
type Conf struct {
	Enabled       bool              `mapstructure:"enabled"`
	Endpoint      string            `mapstructure:"endpoint"` // host:port, e.g. localhost:4318
	ServiceName   string            `mapstructure:"serviceName"`
	Insecure      bool              `mapstructure:"insecure"`
	Headers       map[string]string `mapstructure:"headers"`
	BatchTimeout  int               `mapstructure:"batchTimeout"`  // seconds
	ExportTimeout int               `mapstructure:"exportTimeout"` // seconds
}

// SetDefaults fills unset values.
func (c *Conf) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "confhub"
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = 5
	}
	if c.ExportTimeout == 0 {
		c.ExportTimeout = 30
	}
}

var (
	mu           sync.Mutex
	shutdownFunc func(context.Context) error
)

// Init installs the global tracer provider. A disabled config installs a noop provider.
func Init(ctx context.Context, cfg Conf) error {
	cfg.SetDefaults()

	if !cfg.Enabled || cfg.Endpoint == "" {
		otel.SetTracerProvider(noop.NewTracerProvider())
		log.Info("tracing disabled, using noop tracer")
		return nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithTimeout(time.Duration(cfg.ExportTimeout) * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Duration(cfg.BatchTimeout)*time.Second)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	mu.Lock()
	shutdownFunc = tp.Shutdown
	mu.Unlock()

	log.Infow("tracing initialized", "endpoint", cfg.Endpoint, "service", cfg.ServiceName)
	return nil
}

// Shutdown flushes and stops the exporter, if any.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	fn := shutdownFunc
	shutdownFunc = nil
	mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Tracer returns the process tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start opens an internal span named name.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
