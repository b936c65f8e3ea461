// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"math"
	"time"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"
)

const day = 24 * time.Hour

// Sample is one conformance case. A nil WantErr means the value must
// survive a round trip unchanged. Otherwise the round trip must fail with
// an error matching WantErr.
type Sample struct {
	Name    string
	Value   ydbvalue.Value
	WantErr error
}

func mustList(itemType ydbvalue.Value, values ...ydbvalue.Value) *ydbvalue.List {
	l, err := ydbvalue.NewList(itemType, values...)
	if err != nil {
		panic(err)
	}
	return l
}

func mustListOf(first ydbvalue.Value, rest ...ydbvalue.Value) *ydbvalue.List {
	l, err := ydbvalue.ListOf(first, rest...)
	if err != nil {
		panic(err)
	}
	return l
}

func field(name string, v ydbvalue.Value) ydbvalue.StructField {
	return ydbvalue.StructField{Name: name, Value: v}
}

// user is the struct shape shared by the nested samples.
func user(id uint64, name ydbvalue.Value) *ydbvalue.Struct {
	return ydbvalue.StructOf(
		field("id", ydbvalue.Uint64(id)),
		field("name", name),
	)
}

func scalarSamples() []Sample {
	return []Sample{
		{Name: "void", Value: ydbvalue.Void{}},
		{Name: "null", Value: ydbvalue.Null{}},
		{Name: "bool_true", Value: ydbvalue.Bool(true)},
		{Name: "bool_false", Value: ydbvalue.Bool(false)},
		{Name: "int8_min", Value: ydbvalue.Int8(math.MinInt8)},
		{Name: "int8_max", Value: ydbvalue.Int8(math.MaxInt8)},
		{Name: "uint8_max", Value: ydbvalue.Uint8(math.MaxUint8)},
		{Name: "int16_min", Value: ydbvalue.Int16(math.MinInt16)},
		{Name: "uint16_max", Value: ydbvalue.Uint16(math.MaxUint16)},
		{Name: "int32_min", Value: ydbvalue.Int32(math.MinInt32)},
		{Name: "uint32_max", Value: ydbvalue.Uint32(math.MaxUint32)},
		{Name: "int64_min", Value: ydbvalue.Int64(math.MinInt64)},
		{Name: "int64_max", Value: ydbvalue.Int64(math.MaxInt64)},
		{Name: "uint64_max", Value: ydbvalue.Uint64(math.MaxUint64)},
		{Name: "float", Value: ydbvalue.Float(-1.5)},
		{Name: "double", Value: ydbvalue.Double(math.Pi)},
		{Name: "double_inf", Value: ydbvalue.Double(math.Inf(1))},
		{Name: "date_epoch", Value: ydbvalue.Date(0)},
		{Name: "date", Value: ydbvalue.Date(19723 * day)},
		{Name: "date_max", Value: ydbvalue.Date(math.MaxInt64 / int64(day) * int64(day))},
		{Name: "datetime", Value: ydbvalue.DateTime(1_700_000_000 * time.Second)},
		{Name: "datetime_max", Value: ydbvalue.DateTime(math.MaxUint32 * time.Second)},
		{Name: "timestamp", Value: ydbvalue.Timestamp(1_700_000_000_123_456 * time.Microsecond)},
		{Name: "timestamp_max", Value: ydbvalue.Timestamp(math.MaxInt64 / 1000 * 1000)},
		{Name: "interval_plus", Value: ydbvalue.Interval{Sign: ydbvalue.Plus, Duration: 90 * time.Minute}},
		{Name: "interval_minus", Value: ydbvalue.Interval{Sign: ydbvalue.Minus, Duration: 1500 * time.Millisecond}},
		{Name: "interval_max", Value: ydbvalue.Interval{Sign: ydbvalue.Plus, Duration: math.MaxInt64}},
		{Name: "string_empty", Value: ydbvalue.String{}},
		{Name: "string_binary", Value: ydbvalue.String{0x00, 0xff, 0x10, 0x80}},
		{Name: "text_unicode", Value: ydbvalue.Text("привет, 世界")},
		{Name: "yson", Value: ydbvalue.Yson(`{a=1;b=[2;3]}`)},
		{Name: "json", Value: ydbvalue.JSON(`{"a":1,"b":[2,3]}`)},
		{Name: "json_document", Value: ydbvalue.JSONDocument(`{"k":"v"}`)},
	}
}

func containerSamples() []Sample {
	users := mustListOf(
		user(1, ydbvalue.Some(ydbvalue.Text("ann"))),
		user(2, ydbvalue.None(ydbvalue.Text(""))),
	)
	emptyUsers := mustList(user(0, ydbvalue.None(ydbvalue.Text(""))))

	return []Sample{
		{Name: "optional_present", Value: ydbvalue.Some(ydbvalue.Int32(42))},
		{Name: "optional_absent", Value: ydbvalue.None(ydbvalue.Int32(0))},
		{Name: "optional_void", Value: ydbvalue.Some(ydbvalue.Void{})},
		{Name: "optional_null", Value: ydbvalue.Some(ydbvalue.Null{})},
		{Name: "list_int32", Value: mustListOf(ydbvalue.Int32(1), ydbvalue.Int32(-2), ydbvalue.Int32(3))},
		{Name: "list_empty", Value: mustList(ydbvalue.Text(""))},
		{Name: "list_of_lists", Value: mustListOf(
			mustListOf(ydbvalue.Uint8(1), ydbvalue.Uint8(2)),
			mustList(ydbvalue.Uint8(0)),
		)},
		{Name: "list_of_optionals", Value: mustListOf(
			ydbvalue.Some(ydbvalue.Double(1)),
			ydbvalue.None(ydbvalue.Double(0)),
		)},
		{Name: "struct", Value: user(7, ydbvalue.Some(ydbvalue.Text("seven")))},
		{Name: "struct_empty", Value: ydbvalue.StructOf()},
		{Name: "struct_nested", Value: ydbvalue.StructOf(
			field("owner", user(1, ydbvalue.None(ydbvalue.Text("")))),
			field("created", ydbvalue.Timestamp(time.Second)),
			field("tags", mustListOf(ydbvalue.Text("a"), ydbvalue.Text("b"))),
		)},
		{Name: "optional_list_struct", Value: ydbvalue.Some(users)},
		{Name: "optional_list_struct_absent", Value: ydbvalue.None(emptyUsers)},
		{Name: "optional_struct", Value: ydbvalue.Some(user(3, ydbvalue.Some(ydbvalue.Text("cid"))))},
		{Name: "empty_list_of_structs", Value: emptyUsers},
		{Name: "empty_list_of_optional_lists", Value: mustList(ydbvalue.None(mustList(ydbvalue.Interval{})))},
	}
}

func failureSamples() []Sample {
	return []Sample{
		{Name: "nested_optional", Value: ydbvalue.Some(ydbvalue.Some(ydbvalue.Int32(1))), WantErr: ydbvalue.ErrCustom},
		{Name: "nested_optional_absent", Value: ydbvalue.Some(ydbvalue.None(ydbvalue.Int32(0))), WantErr: ydbvalue.ErrCustom},
		{Name: "date_partial_day", Value: ydbvalue.Date(36 * time.Hour), WantErr: ydbvalue.ErrNumericOverflow},
		{Name: "datetime_out_of_range", Value: ydbvalue.DateTime((math.MaxUint32 + 1) * time.Second), WantErr: ydbvalue.ErrNumericOverflow},
		{Name: "timestamp_negative", Value: ydbvalue.Timestamp(-time.Microsecond), WantErr: ydbvalue.ErrNumericOverflow},
		{Name: "timestamp_submicro", Value: ydbvalue.Timestamp(time.Nanosecond), WantErr: ydbvalue.ErrNumericOverflow},
		{Name: "interval_negative_magnitude", Value: ydbvalue.Interval{Duration: -time.Second}, WantErr: ydbvalue.ErrNumericOverflow},
	}
}

// Samples returns the full conformance corpus in a stable order.
func Samples() []Sample {
	var out []Sample
	out = append(out, scalarSamples()...)
	out = append(out, containerSamples()...)
	out = append(out, failureSamples()...)
	return out
}
