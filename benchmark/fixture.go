// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package benchmark holds fixtures for codec benchmarks.
package benchmark

import (
	"fmt"
	"time"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/conformance"
	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"
)

// WideRow builds a row with one column per scalar kind plus an optional
// and a list column. Values vary with i.
func WideRow(i int) *ydbvalue.Struct {
	name := ydbvalue.None(ydbvalue.Text(""))
	if i%3 != 0 {
		name = ydbvalue.Some(ydbvalue.Text(fmt.Sprintf("user-%d", i)))
	}
	tags, err := ydbvalue.NewList(ydbvalue.Text(""),
		ydbvalue.Text("a"), ydbvalue.Text(fmt.Sprintf("t%d", i%7)))
	if err != nil {
		panic(err)
	}

	return ydbvalue.StructOf(
		ydbvalue.StructField{Name: "id", Value: ydbvalue.Uint64(i)},
		ydbvalue.StructField{Name: "flag", Value: ydbvalue.Bool(i%2 == 0)},
		ydbvalue.StructField{Name: "i8", Value: ydbvalue.Int8(i % 100)},
		ydbvalue.StructField{Name: "u16", Value: ydbvalue.Uint16(i % 60000)},
		ydbvalue.StructField{Name: "i32", Value: ydbvalue.Int32(-i)},
		ydbvalue.StructField{Name: "i64", Value: ydbvalue.Int64(i) * 1_000_003},
		ydbvalue.StructField{Name: "score", Value: ydbvalue.Double(float64(i) / 7)},
		ydbvalue.StructField{Name: "ratio", Value: ydbvalue.Float(float32(i) / 3)},
		ydbvalue.StructField{Name: "day", Value: ydbvalue.Date(time.Duration(i%20000) * 24 * time.Hour)},
		ydbvalue.StructField{Name: "seen", Value: ydbvalue.DateTime(time.Duration(i) * time.Second)},
		ydbvalue.StructField{Name: "created", Value: ydbvalue.Timestamp(time.Duration(i) * time.Millisecond)},
		ydbvalue.StructField{Name: "ttl", Value: ydbvalue.Interval{Duration: time.Duration(i) * time.Minute}},
		ydbvalue.StructField{Name: "payload", Value: ydbvalue.String(fmt.Sprintf("payload-%08d", i))},
		ydbvalue.StructField{Name: "doc", Value: ydbvalue.JSON(fmt.Sprintf(`{"n":%d}`, i))},
		ydbvalue.StructField{Name: "name", Value: name},
		ydbvalue.StructField{Name: "tags", Value: tags},
	)
}

// WideRows returns n rows built by [WideRow].
func WideRows(n int) []*ydbvalue.Struct {
	rows := make([]*ydbvalue.Struct, n)
	for i := range rows {
		rows[i] = WideRow(i)
	}
	return rows
}

// WideResultSet returns a wire result set of n wide rows.
func WideResultSet(n int) (*Ydb.ResultSet, error) {
	return conformance.EncodeResultSet(WideRows(n))
}
