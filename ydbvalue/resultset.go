// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// Column is one result set column. Type is the column skeleton.
type Column struct {
	Name string
	Type Value
}

// ResultSet is a decoded query result. Every row is a Struct whose fields
// follow the column order.
type ResultSet struct {
	Columns   []Column
	Rows      []*Struct
	Truncated bool
}

// ColumnNames returns the column names in order.
func (rs *ResultSet) ColumnNames() []string {
	names := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		names[i] = c.Name
	}
	return names
}

// RowSkeleton builds the row shape of a wire result set from its columns.
func RowSkeleton(rs *Ydb.ResultSet) (*Struct, error) {
	columns := rs.GetColumns()
	fields := make([]StructField, len(columns))
	for i, c := range columns {
		if c.GetType() == nil {
			return nil, newError(CodeMissingType, fmt.Sprintf("missing type of column %q", c.GetName()))
		}
		skeleton, err := FromType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields[i] = StructField{Name: c.Name, Value: skeleton}
	}
	return &Struct{fields: fields}, nil
}

// Decoder decodes wire result sets. A Decoder is safe for concurrent use
// once its hook is installed.
type Decoder struct {
	hook DecodeHook
	log  zerolog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the logger used to report hook failures.
func WithLogger(l zerolog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.log = l
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		log: log.Logger.With().Str("component", "ydbvalue").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetDecodeHook registers a hook that is called around each decode.
func (d *Decoder) SetDecodeHook(hook DecodeHook) {
	d.hook = hook
}

// DecodeResultSet decodes every row of rs against the row skeleton built
// from its columns.
func (d *Decoder) DecodeResultSet(ctx context.Context, rs *Ydb.ResultSet) (*ResultSet, error) {
	info := DecodeInfo{Operation: DecodeOpResultSet, Truncated: rs.GetTruncated()}
	for _, c := range rs.GetColumns() {
		info.Columns = append(info.Columns, c.GetName())
	}

	ctx, call := d.startHook(ctx, info)
	stats := &DecodeStatistics{}
	out, err := decodeResultSet(ctx, rs, stats)
	call.end(ctx, stats, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeResultSet(ctx context.Context, rs *Ydb.ResultSet, stats *DecodeStatistics) (*ResultSet, error) {
	if rs == nil {
		return nil, newError(CodeMissingType, "missing result set")
	}
	skeleton, err := RowSkeleton(rs)
	if err != nil {
		return nil, err
	}
	stats.RecordResultSet(int64(len(skeleton.fields)))

	out := &ResultSet{
		Columns:   make([]Column, len(skeleton.fields)),
		Rows:      make([]*Struct, 0, len(rs.Rows)),
		Truncated: rs.Truncated,
	}
	for i, f := range skeleton.fields {
		out.Columns[i] = Column{Name: f.Name, Type: f.Value}
	}

	for i, row := range rs.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dv, err := Decode(skeleton, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out.Rows = append(out.Rows, dv.(*Struct))
		stats.RecordRow(int64(len(skeleton.fields)))
	}
	return out, nil
}
