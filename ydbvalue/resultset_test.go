// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// wireResultSet encodes rows into a wire result set whose columns follow
// the fields of the first row.
func wireResultSet(t *testing.T, rows ...*Struct) *Ydb.ResultSet {
	t.Helper()
	require.NotEmpty(t, rows)
	typ, err := TypeOf(rows[0])
	require.NoError(t, err)

	rs := &Ydb.ResultSet{}
	for _, m := range typ.GetStructType().GetMembers() {
		rs.Columns = append(rs.Columns, &Ydb.Column{Name: m.Name, Type: m.Type})
	}
	for _, r := range rows {
		_, payload, err := Encode(r)
		require.NoError(t, err)
		rs.Rows = append(rs.Rows, payload)
	}
	return rs
}

func userRow(t *testing.T, id uint64, name Value, tags ...Value) *Struct {
	return StructOf(
		field("id", Uint64(id)),
		field("name", name),
		field("tags", mustList(t, Text(""), tags...)),
	)
}

func sampleRows(t *testing.T) []*Struct {
	return []*Struct{
		userRow(t, 1, Some(Text("ann")), Text("a"), Text("b")),
		userRow(t, 2, None(Text(""))),
		userRow(t, 3, Some(Text("cid")), Text("c")),
	}
}

type hookEnd struct {
	token HookToken
	info  DecodeInfo
	stats DecodeStatistics
	err   error
	value any
}

type ctxKey struct{}

type recordingHook struct {
	mu     sync.Mutex
	starts []DecodeInfo
	ends   []hookEnd
}

func (h *recordingHook) OnDecodeStart(ctx context.Context, info DecodeInfo) (context.Context, HookToken) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, info)
	return context.WithValue(ctx, ctxKey{}, "hooked"), len(h.starts)
}

func (h *recordingHook) OnDecodeEnd(ctx context.Context, token HookToken, info DecodeInfo, stats *DecodeStatistics, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, hookEnd{token: token, info: info, stats: *stats, err: err, value: ctx.Value(ctxKey{})})
}

type panicHook struct{}

func (panicHook) OnDecodeStart(ctx context.Context, info DecodeInfo) (context.Context, HookToken) {
	panic("start exploded")
}

func (panicHook) OnDecodeEnd(ctx context.Context, token HookToken, info DecodeInfo, stats *DecodeStatistics, err error) {
	panic("end exploded")
}

type endPanicHook struct{}

func (endPanicHook) OnDecodeStart(ctx context.Context, info DecodeInfo) (context.Context, HookToken) {
	return ctx, nil
}

func (endPanicHook) OnDecodeEnd(ctx context.Context, token HookToken, info DecodeInfo, stats *DecodeStatistics, err error) {
	panic("end exploded")
}

func TestRowSkeleton(t *testing.T) {
	rs := wireResultSet(t, sampleRows(t)...)
	skeleton, err := RowSkeleton(rs)
	require.NoError(t, err)
	assert.Equal(t, "Struct<id:Uint64,name:Optional<Utf8>,tags:List<Utf8>>", TypeName(skeleton))
}

func TestRowSkeletonErrors(t *testing.T) {
	_, err := RowSkeleton(&Ydb.ResultSet{Columns: []*Ydb.Column{{Name: "x"}}})
	assert.ErrorIs(t, err, ErrMissingType)

	_, err = RowSkeleton(&Ydb.ResultSet{Columns: []*Ydb.Column{{Name: "u", Type: typeID(Ydb.Type_UUID)}}})
	assert.ErrorIs(t, err, ErrUnsupportedWireType)
	assert.Contains(t, err.Error(), `column "u"`)
}

func TestDecodeResultSet(t *testing.T) {
	rows := sampleRows(t)
	wire := wireResultSet(t, rows...)
	wire.Truncated = true

	rs, err := NewDecoder().DecodeResultSet(context.Background(), wire)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "tags"}, rs.ColumnNames())
	assert.True(t, rs.Truncated)
	require.Len(t, rs.Rows, len(rows))
	for i := range rows {
		assertValue(t, rows[i], rs.Rows[i])
	}
	assertValue(t, None(Text("")), rs.Columns[1].Type)
}

func TestDecodeResultSetEmpty(t *testing.T) {
	wire := wireResultSet(t, sampleRows(t)...)
	wire.Rows = nil

	rs, err := NewDecoder().DecodeResultSet(context.Background(), wire)
	require.NoError(t, err)
	assert.Empty(t, rs.Rows)
	assert.Len(t, rs.Columns, 3)
}

func TestDecodeResultSetErrors(t *testing.T) {
	d := NewDecoder()

	_, err := d.DecodeResultSet(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingType)

	wire := wireResultSet(t, sampleRows(t)...)
	wire.Rows[1].Items[0] = textValue("two")
	_, err = d.DecodeResultSet(context.Background(), wire)
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), `row 1: struct field "id"`)
}

func TestDecodeResultSetCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder().DecodeResultSet(ctx, wireResultSet(t, sampleRows(t)...))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeHookLifecycle(t *testing.T) {
	hook := &recordingHook{}
	d := NewDecoder()
	d.SetDecodeHook(hook)

	wire := wireResultSet(t, sampleRows(t)...)
	_, err := d.DecodeResultSet(context.Background(), wire)
	require.NoError(t, err)

	require.Len(t, hook.starts, 1)
	require.Len(t, hook.ends, 1)
	assert.Equal(t, DecodeOpResultSet, hook.starts[0].Operation)
	assert.Equal(t, []string{"id", "name", "tags"}, hook.starts[0].Columns)

	end := hook.ends[0]
	assert.Equal(t, 1, end.token)
	assert.Equal(t, "hooked", end.value)
	assert.NoError(t, end.err)
	assert.Equal(t, DecodeStatistics{ResultSets: 1, Columns: 3, Rows: 3, Cells: 9}, end.stats)
}

func TestDecodeHookSeesError(t *testing.T) {
	hook := &recordingHook{}
	d := NewDecoder()
	d.SetDecodeHook(hook)

	wire := wireResultSet(t, sampleRows(t)...)
	wire.Rows[2].Items = wire.Rows[2].Items[:1]
	_, err := d.DecodeResultSet(context.Background(), wire)
	require.Error(t, err)

	require.Len(t, hook.ends, 1)
	assert.ErrorIs(t, hook.ends[0].err, ErrFieldCountMismatch)
	assert.Equal(t, int64(2), hook.ends[0].stats.Rows)
}

func TestDecodeHookPanicsAreRecovered(t *testing.T) {
	var buf bytes.Buffer
	d := NewDecoder(WithLogger(zerolog.New(&buf)))
	d.SetDecodeHook(panicHook{})

	rs, err := d.DecodeResultSet(context.Background(), wireResultSet(t, sampleRows(t)...))
	require.NoError(t, err)
	assert.Len(t, rs.Rows, 3)
	assert.Contains(t, buf.String(), "decode hook start panic")
	// A failed start leaves nothing to end.
	assert.NotContains(t, buf.String(), "decode hook end panic")

	buf.Reset()
	d.SetDecodeHook(endPanicHook{})
	_, err = d.DecodeResultSet(context.Background(), wireResultSet(t, sampleRows(t)...))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "decode hook end panic")
	assert.Contains(t, buf.String(), `"operation":"result_set"`)
}

func TestDecoderConcurrentUse(t *testing.T) {
	hook := &recordingHook{}
	d := NewDecoder()
	d.SetDecodeHook(hook)
	wire := wireResultSet(t, sampleRows(t)...)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.DecodeResultSet(context.Background(), wire); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, hook.ends, workers)
}
