// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"google.golang.org/protobuf/proto"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"
)

// Result is the outcome of one [Sample].
type Result struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Report summarises a conformance run.
type Report struct {
	Total   int      `json:"total"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// OK reports whether every sample passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// RoundTrip encodes v, rebuilds a skeleton from the produced wire type and
// decodes the wire value into it. The decoded value is encoded again and
// must produce the same wire type and value.
func RoundTrip(v ydbvalue.Value) (ydbvalue.Value, error) {
	typ, payload, err := ydbvalue.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	skeleton, err := ydbvalue.FromType(typ)
	if err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}
	got, err := ydbvalue.Decode(skeleton, payload)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	typ2, payload2, err := ydbvalue.Encode(got)
	if err != nil {
		return nil, fmt.Errorf("re-encode: %w", err)
	}
	if !proto.Equal(typ, typ2) {
		return nil, fmt.Errorf("re-encoded type %v differs from %v", typ2, typ)
	}
	if !proto.Equal(payload, payload2) {
		return nil, fmt.Errorf("re-encoded value %v differs from %v", payload2, payload)
	}
	return got, nil
}

// Check runs a single sample.
func Check(s Sample) Result {
	res := Result{Name: s.Name, Type: ydbvalue.TypeName(s.Value)}

	got, err := RoundTrip(s.Value)
	switch {
	case s.WantErr != nil && err == nil:
		res.Error = fmt.Sprintf("expected error %v, round trip succeeded", s.WantErr)
	case s.WantErr != nil:
		res.Passed = errors.Is(err, s.WantErr)
		if !res.Passed {
			res.Error = fmt.Sprintf("expected error %v, got %v", s.WantErr, err)
		}
	case err != nil:
		res.Error = err.Error()
	case !ydbvalue.Equal(s.Value, got):
		res.Error = fmt.Sprintf("decoded %s differs from the input", ydbvalue.TypeName(got))
	default:
		res.Passed = true
	}
	return res
}

// Run checks every sample and returns the report.
func Run(samples []Sample) Report {
	report := Report{Total: len(samples), Results: make([]Result, 0, len(samples))}
	for _, s := range samples {
		res := Check(s)
		if res.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// SampleRows returns the rows of [SampleResultSet].
func SampleRows() []*ydbvalue.Struct {
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC).Sub(time.Unix(0, 0))
	row := func(id uint64, name, score ydbvalue.Value, payload string, tags ...ydbvalue.Value) *ydbvalue.Struct {
		return ydbvalue.StructOf(
			field("id", ydbvalue.Uint64(id)),
			field("name", name),
			field("created", ydbvalue.Timestamp(created+time.Duration(id)*time.Minute)),
			field("score", score),
			field("tags", mustList(ydbvalue.Text(""), tags...)),
			field("payload", ydbvalue.String(payload)),
		)
	}
	return []*ydbvalue.Struct{
		row(1, ydbvalue.Some(ydbvalue.Text("ann")), ydbvalue.Some(ydbvalue.Double(9.5)), "a", ydbvalue.Text("admin"), ydbvalue.Text("ops")),
		row(2, ydbvalue.None(ydbvalue.Text("")), ydbvalue.Some(ydbvalue.Double(7.25)), ""),
		row(3, ydbvalue.Some(ydbvalue.Text("cid")), ydbvalue.None(ydbvalue.Double(0)), "\x00\x01", ydbvalue.Text("dev")),
		row(4, ydbvalue.Some(ydbvalue.Text("dora")), ydbvalue.Some(ydbvalue.Double(-1)), "zz"),
	}
}

// SampleResultSet encodes [SampleRows] into a wire result set with the
// columns id, name, created, score, tags and payload.
func SampleResultSet() (*Ydb.ResultSet, error) {
	return EncodeResultSet(SampleRows())
}

// EncodeResultSet builds a wire result set whose columns follow the fields
// of the first row. Every row must have the same wire type.
func EncodeResultSet(rows []*ydbvalue.Struct) (*Ydb.ResultSet, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows")
	}
	typ, err := ydbvalue.TypeOf(rows[0])
	if err != nil {
		return nil, err
	}

	rs := &Ydb.ResultSet{}
	for _, m := range typ.GetStructType().GetMembers() {
		rs.Columns = append(rs.Columns, &Ydb.Column{Name: m.Name, Type: m.Type})
	}
	for i, r := range rows {
		rowType, payload, err := ydbvalue.Encode(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if !proto.Equal(typ, rowType) {
			return nil, fmt.Errorf("row %d: type %s differs from the first row", i, ydbvalue.TypeName(r))
		}
		rs.Rows = append(rs.Rows, payload)
	}
	return rs, nil
}

// Plain converts v into values that marshal naturally to JSON. Structs
// become maps, times use RFC 3339, intervals use Go duration syntax and
// non-finite floats become strings.
func Plain(v ydbvalue.Value) any {
	epoch := time.Unix(0, 0).UTC()
	switch v := v.(type) {
	case nil, ydbvalue.Void, ydbvalue.Null:
		return nil
	case ydbvalue.Bool:
		return bool(v)
	case ydbvalue.Int8:
		return int64(v)
	case ydbvalue.Int16:
		return int64(v)
	case ydbvalue.Int32:
		return int64(v)
	case ydbvalue.Int64:
		return int64(v)
	case ydbvalue.Uint8:
		return uint64(v)
	case ydbvalue.Uint16:
		return uint64(v)
	case ydbvalue.Uint32:
		return uint64(v)
	case ydbvalue.Uint64:
		return uint64(v)
	case ydbvalue.Float:
		return plainFloat(float64(v))
	case ydbvalue.Double:
		return plainFloat(float64(v))
	case ydbvalue.Date:
		return epoch.Add(time.Duration(v)).Format(time.DateOnly)
	case ydbvalue.DateTime:
		return epoch.Add(time.Duration(v)).Format(time.RFC3339)
	case ydbvalue.Timestamp:
		return epoch.Add(time.Duration(v)).Format(time.RFC3339Nano)
	case ydbvalue.Interval:
		if v.Sign == ydbvalue.Minus {
			return "-" + v.Duration.String()
		}
		return v.Duration.String()
	case ydbvalue.String:
		return []byte(v)
	case ydbvalue.Text:
		return string(v)
	case ydbvalue.Yson:
		return string(v)
	case ydbvalue.JSON:
		return string(v)
	case ydbvalue.JSONDocument:
		return string(v)
	case *ydbvalue.Optional:
		item, ok := v.Get()
		if !ok {
			return nil
		}
		return Plain(item)
	case *ydbvalue.List:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = Plain(v.At(i))
		}
		return out
	case *ydbvalue.Struct:
		out := make(map[string]any, v.Len())
		for _, f := range v.Fields() {
			out[f.Name] = Plain(f.Value)
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

func plainFloat(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprintf("%v", f)
	}
	return f
}
