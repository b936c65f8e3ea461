// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package ydbotel provides OpenTelemetry instrumentation for result set
// decoding. It implements the [ydbvalue.DecodeHook] interface to add
// tracing and metrics to a [ydbvalue.Decoder].
//
// Usage:
//
//	d := ydbvalue.NewDecoder()
//	ydbotel.Instrument(d, ydbotel.DefaultConfig())
package ydbotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ydb_value"

// OtelConfig configures OpenTelemetry instrumentation for a decoder.
type OtelConfig struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// EnableTracing enables span creation. Default true.
	EnableTracing bool
	// EnableMetrics enables counter and histogram recording. Default true.
	EnableMetrics bool
	// RecordExceptions calls RecordError on the span for failed decodes.
	// Default true.
	RecordExceptions bool
	// CustomAttributes are added to every span.
	CustomAttributes []attribute.KeyValue
}

// DefaultConfig returns an OtelConfig with tracing, metrics and error
// recording enabled. Providers are resolved from the global OTel SDK at
// instrumentation time.
func DefaultConfig() OtelConfig {
	return OtelConfig{
		EnableTracing:    true,
		EnableMetrics:    true,
		RecordExceptions: true,
	}
}

// Instrument attaches OpenTelemetry instrumentation to d via
// [ydbvalue.Decoder.SetDecodeHook].
func Instrument(d *ydbvalue.Decoder, cfg OtelConfig) {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	hook := &otelHook{
		cfg:    cfg,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
	}

	if cfg.EnableMetrics {
		meter := cfg.MeterProvider.Meter(instrumentationName)
		hook.rowCounter, _ = meter.Int64Counter("ydb.value.decode.rows",
			metric.WithUnit("{row}"),
			metric.WithDescription("Number of decoded rows"),
		)
		hook.durationHistogram, _ = meter.Float64Histogram("ydb.value.decode.duration",
			metric.WithUnit("s"),
			metric.WithDescription("Duration of result decoding"),
		)
	}

	d.SetDecodeHook(hook)
}

type otelHook struct {
	cfg               OtelConfig
	tracer            trace.Tracer
	rowCounter        metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

type spanToken struct {
	span      trace.Span
	startTime time.Time
}

// OnDecodeStart starts an internal span named after the decode operation.
func (h *otelHook) OnDecodeStart(ctx context.Context, info ydbvalue.DecodeInfo) (context.Context, ydbvalue.HookToken) {
	if !h.cfg.EnableTracing {
		return ctx, &spanToken{startTime: time.Now()}
	}

	attrs := []attribute.KeyValue{
		attribute.String("db.system", "ydb"),
		attribute.String("ydb.value.operation", info.Operation),
	}
	if len(info.Columns) > 0 {
		attrs = append(attrs, attribute.StringSlice("ydb.value.columns", info.Columns))
	}
	if info.Truncated {
		attrs = append(attrs, attribute.Bool("ydb.value.truncated", true))
	}
	attrs = append(attrs, h.cfg.CustomAttributes...)

	ctx, span := h.tracer.Start(ctx, fmt.Sprintf("ydb_value/decode_%s", info.Operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnDecodeEnd records metrics and span status, then ends the span.
func (h *otelHook) OnDecodeEnd(ctx context.Context, token ydbvalue.HookToken, info ydbvalue.DecodeInfo, stats *ydbvalue.DecodeStatistics, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}

	duration := time.Since(st.startTime)

	status := "ok"
	if err != nil {
		status = "error"
	}

	if h.cfg.EnableMetrics {
		metricAttrs := metric.WithAttributes(
			attribute.String("ydb.value.operation", info.Operation),
			attribute.String("status", status),
		)
		if h.rowCounter != nil && stats != nil {
			h.rowCounter.Add(ctx, stats.Rows, metricAttrs)
		}
		if h.durationHistogram != nil {
			h.durationHistogram.Record(ctx, duration.Seconds(), metricAttrs)
		}
	}

	if st.span == nil || !st.span.IsRecording() {
		return
	}
	if stats != nil {
		st.span.SetAttributes(
			attribute.Int64("ydb.value.result_sets", stats.ResultSets),
			attribute.Int64("ydb.value.column_count", stats.Columns),
			attribute.Int64("ydb.value.rows", stats.Rows),
			attribute.Int64("ydb.value.cells", stats.Cells),
		)
	}

	if err != nil {
		st.span.SetStatus(codes.Error, err.Error())
		if h.cfg.RecordExceptions {
			st.span.RecordError(err)
		}
		errType := fmt.Sprintf("%T", err)
		var codecErr *ydbvalue.CodecError
		if errors.As(err, &codecErr) {
			errType = codecErr.Code.String()
		}
		st.span.SetAttributes(attribute.String("ydb.value.error_type", errType))
	} else {
		st.span.SetStatus(codes.Ok, "")
	}

	st.span.End()
}
