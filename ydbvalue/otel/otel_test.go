// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbotel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"
)

func uint64Column(name string) *Ydb.Column {
	return &Ydb.Column{Name: name, Type: &Ydb.Type{Type: &Ydb.Type_TypeId{TypeId: Ydb.Type_UINT64}}}
}

func row(items ...*Ydb.Value) *Ydb.Value {
	return &Ydb.Value{Items: items}
}

func u64(v uint64) *Ydb.Value {
	return &Ydb.Value{Value: &Ydb.Value_Uint64Value{Uint64Value: v}}
}

type fixture struct {
	decoder *ydbvalue.Decoder
	spans   *tracetest.SpanRecorder
	reader  *sdkmetric.ManualReader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	d := ydbvalue.NewDecoder()
	cfg := DefaultConfig()
	cfg.TracerProvider = tp
	cfg.MeterProvider = mp
	cfg.CustomAttributes = []attribute.KeyValue{attribute.String("test.case", t.Name())}
	Instrument(d, cfg)

	return &fixture{decoder: d, spans: spans, reader: reader}
}

func (f *fixture) collect(t *testing.T) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestInstrument_Success(t *testing.T) {
	f := newFixture(t)
	rs := &Ydb.ResultSet{
		Columns: []*Ydb.Column{uint64Column("id"), uint64Column("score")},
		Rows:    []*Ydb.Value{row(u64(1), u64(10)), row(u64(2), u64(20)), row(u64(3), u64(30))},
	}

	out, err := f.decoder.DecodeResultSet(context.Background(), rs)
	require.NoError(t, err)
	require.Len(t, out.Rows, 3)

	ended := f.spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "ydb_value/decode_result_set", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	rows, ok := spanAttr(span.Attributes(), "ydb.value.rows")
	require.True(t, ok)
	assert.Equal(t, int64(3), rows.AsInt64())
	cells, ok := spanAttr(span.Attributes(), "ydb.value.cells")
	require.True(t, ok)
	assert.Equal(t, int64(6), cells.AsInt64())
	cols, ok := spanAttr(span.Attributes(), "ydb.value.columns")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "score"}, cols.AsStringSlice())
	tc, ok := spanAttr(span.Attributes(), "test.case")
	require.True(t, ok)
	assert.Equal(t, t.Name(), tc.AsString())

	rm := f.collect(t)
	m, ok := findMetric(rm, "ydb.value.decode.rows")
	require.True(t, ok)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	m, ok = findMetric(rm, "ydb.value.decode.duration")
	require.True(t, ok)
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestInstrument_Error(t *testing.T) {
	f := newFixture(t)
	rs := &Ydb.ResultSet{
		Columns: []*Ydb.Column{uint64Column("id")},
		Rows:    []*Ydb.Value{row(u64(1), u64(2))},
	}

	_, err := f.decoder.DecodeResultSet(context.Background(), rs)
	require.ErrorIs(t, err, ydbvalue.ErrFieldCountMismatch)

	ended := f.spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, codes.Error, span.Status().Code)
	errType, ok := spanAttr(span.Attributes(), "ydb.value.error_type")
	require.True(t, ok)
	assert.Equal(t, "FieldCountMismatch", errType.AsString())
	require.NotEmpty(t, span.Events())
	assert.Equal(t, "exception", span.Events()[0].Name)

	m, ok := findMetric(f.collect(t), "ydb.value.decode.rows")
	require.True(t, ok)
	sum := m.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	status, ok := sum.DataPoints[0].Attributes.Value("status")
	require.True(t, ok)
	assert.Equal(t, "error", status.AsString())
}

func TestInstrument_TracingDisabled(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	d := ydbvalue.NewDecoder()
	cfg := DefaultConfig()
	cfg.TracerProvider = tp
	cfg.EnableTracing = false
	cfg.EnableMetrics = false
	Instrument(d, cfg)

	_, err := d.DecodeResultSet(context.Background(), &Ydb.ResultSet{
		Columns: []*Ydb.Column{uint64Column("id")},
		Rows:    []*Ydb.Value{row(u64(7))},
	})
	require.NoError(t, err)
	assert.Empty(t, spans.Ended())
}
