// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowType maps a value shape to an Arrow DataType. Optionals become
// nullable columns of their item type.
func ArrowType(v Value) (arrow.DataType, bool, error) {
	if isNil(v) {
		return nil, false, newError(CodeMissingType, "missing type witness")
	}
	switch v := v.(type) {	case Void, Null:
		return arrow.Null, true, nil
	case Bool:
		return arrow.FixedWidthTypes.Boolean, false, nil
	case Int8:
		return arrow.PrimitiveTypes.Int8, false, nil
	case Uint8:
		return arrow.PrimitiveTypes.Uint8, false, nil
	case Int16:
		return arrow.PrimitiveTypes.Int16, false, nil
	case Uint16:
		return arrow.PrimitiveTypes.Uint16, false, nil
	case Int32:
		return arrow.PrimitiveTypes.Int32, false, nil
	case Uint32:
		return arrow.PrimitiveTypes.Uint32, false, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, false, nil
	case Uint64:
		return arrow.PrimitiveTypes.Uint64, false, nil
	case Float:
		return arrow.PrimitiveTypes.Float32, false, nil
	case Double:
		return arrow.PrimitiveTypes.Float64, false, nil
	case Date:
		return arrow.FixedWidthTypes.Date32, false, nil
	case DateTime:
		return &arrow.TimestampType{Unit: arrow.Second, TimeZone: "UTC"}, false, nil
	case Timestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, false, nil
	case Interval:
		return &arrow.DurationType{Unit: arrow.Nanosecond}, false, nil
	case String, Yson:
		return arrow.BinaryTypes.Binary, false, nil
	case Text, JSON, JSONDocument:
		return arrow.BinaryTypes.String, false, nil

	case *Optional:
		if _, nested := v.itemType.(*Optional); nested {
			return nil, false, errNestedOptional(v)
		}
		dt, _, err := ArrowType(v.itemType)
		if err != nil {
			return nil, false, fmt.Errorf("optional item: %w", err)
		}
		return dt, true, nil

	case *List:
		dt, nullable, err := ArrowType(v.itemType)
		if err != nil {
			return nil, false, fmt.Errorf("list item: %w", err)
		}
		return arrow.ListOfField(arrow.Field{Name: "item", Type: dt, Nullable: nullable}), false, nil

	case *Struct:
		fields := make([]arrow.Field, len(v.fields))
		for i, f := range v.fields {
			dt, nullable, err := ArrowType(f.Value)
			if err != nil {
				return nil, false, fmt.Errorf("struct field %q: %w", f.Name, err)
			}
			fields[i] = arrow.Field{Name: f.Name, Type: dt, Nullable: nullable}
		}
		return arrow.StructOf(fields...), false, nil

	default:
		return nil, false, newError(CodeCustom, fmt.Sprintf("no arrow type for %s", v.Kind()))
	}
}

// ArrowSchema builds the Arrow schema of a decoded result set. Each field
// carries its YQL type name under [MetaType].
func ArrowSchema(rs *ResultSet) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(rs.Columns))
	for i, c := range rs.Columns {
		dt, nullable, err := ArrowType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields[i] = arrow.Field{
			Name:     c.Name,
			Type:     dt,
			Nullable: nullable,
			Metadata: arrow.NewMetadata([]string{MetaType}, []string{TypeName(c.Type)}),
		}
	}
	meta := arrow.NewMetadata(
		[]string{MetaCodec, MetaTruncated},
		[]string{CodecVersion, strconv.FormatBool(rs.Truncated)},
	)
	return arrow.NewSchema(fields, &meta), nil
}

// RecordBatch converts every row of rs into a single record batch.
func RecordBatch(rs *ResultSet) (arrow.RecordBatch, error) {
	schema, err := ArrowSchema(rs)
	if err != nil {
		return nil, err
	}
	return buildRecordBatch(memory.NewGoAllocator(), schema, rs.Rows)
}

func buildRecordBatch(mem memory.Allocator, schema *arrow.Schema, rows []*Struct) (arrow.RecordBatch, error) {
	builders := make([]array.Builder, schema.NumFields())
	for i, f := range schema.Fields() {
		builders[i] = array.NewBuilder(mem, f.Type)
	}
	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	for r, row := range rows {
		if row == nil || len(row.fields) != len(builders) {
			return nil, newError(CodeFieldCountMismatch, fmt.Sprintf(
				"row %d does not have %d columns", r, len(builders)))
		}
		for i, f := range row.fields {
			if err := appendValue(builders[i], f.Value); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r, f.Name, err)
			}
		}
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
	}
	batch := array.NewRecordBatch(schema, cols, int64(len(rows)))
	for _, c := range cols {
		c.Release()
	}
	return batch, nil
}

// appendValue appends a single value to an Arrow array builder.
func appendValue(b array.Builder, v Value) error {
	if isNil(v) {
		b.AppendNull()
		return nil
	}
	switch v := v.(type) {
	case Void, Null:
		b.AppendNull()
		return nil
	case *Optional:
		if v.value == nil {
			b.AppendNull()
			return nil
		}
		return appendValue(b, v.value)
	case Bool:
		return appendAs(b, v, func(bb *array.BooleanBuilder) { bb.Append(bool(v)) })
	case Int8:
		return appendAs(b, v, func(bb *array.Int8Builder) { bb.Append(int8(v)) })
	case Uint8:
		return appendAs(b, v, func(bb *array.Uint8Builder) { bb.Append(uint8(v)) })
	case Int16:
		return appendAs(b, v, func(bb *array.Int16Builder) { bb.Append(int16(v)) })
	case Uint16:
		return appendAs(b, v, func(bb *array.Uint16Builder) { bb.Append(uint16(v)) })
	case Int32:
		return appendAs(b, v, func(bb *array.Int32Builder) { bb.Append(int32(v)) })
	case Uint32:
		return appendAs(b, v, func(bb *array.Uint32Builder) { bb.Append(uint32(v)) })
	case Int64:
		return appendAs(b, v, func(bb *array.Int64Builder) { bb.Append(int64(v)) })
	case Uint64:
		return appendAs(b, v, func(bb *array.Uint64Builder) { bb.Append(uint64(v)) })
	case Float:
		return appendAs(b, v, func(bb *array.Float32Builder) { bb.Append(float32(v)) })
	case Double:
		return appendAs(b, v, func(bb *array.Float64Builder) { bb.Append(float64(v)) })
	case Date:
		days, err := dateToDays(v)
		if err != nil {
			return err
		}
		d32, err := convertInt[int32](days)
		if err != nil {
			return err
		}
		return appendAs(b, v, func(bb *array.Date32Builder) { bb.Append(arrow.Date32(d32)) })
	case DateTime:
		secs, err := dateTimeToSeconds(v)
		if err != nil {
			return err
		}
		return appendAs(b, v, func(bb *array.TimestampBuilder) { bb.Append(arrow.Timestamp(secs)) })
	case Timestamp:
		us, err := timestampToMicros(v)
		if err != nil {
			return err
		}
		ts, err := convertInt[int64](us)
		if err != nil {
			return err
		}
		return appendAs(b, v, func(bb *array.TimestampBuilder) { bb.Append(arrow.Timestamp(ts)) })
	case Interval:
		ns, err := intervalToNanos(v)
		if err != nil {
			return err
		}
		return appendAs(b, v, func(bb *array.DurationBuilder) { bb.Append(arrow.Duration(ns)) })
	case String:
		return appendAs(b, v, func(bb *array.BinaryBuilder) { bb.Append(v) })
	case Yson:
		return appendAs(b, v, func(bb *array.BinaryBuilder) { bb.Append([]byte(v)) })
	case Text:
		return appendAs(b, v, func(bb *array.StringBuilder) { bb.Append(string(v)) })
	case JSON:
		return appendAs(b, v, func(bb *array.StringBuilder) { bb.Append(string(v)) })
	case JSONDocument:
		return appendAs(b, v, func(bb *array.StringBuilder) { bb.Append(string(v)) })
	case *List:
		lb, ok := b.(*array.ListBuilder)
		if !ok {
			return builderMismatch(b, v)
		}
		lb.Append(true)
		vb := lb.ValueBuilder()
		for i, item := range v.values {
			if err := appendValue(vb, item); err != nil {
				return fmt.Errorf("list item [%d]: %w", i, err)
			}
		}
		return nil
	case *Struct:
		sb, ok := b.(*array.StructBuilder)
		if !ok || sb.NumField() != len(v.fields) {
			return builderMismatch(b, v)
		}
		sb.Append(true)
		for i, f := range v.fields {
			if err := appendValue(sb.FieldBuilder(i), f.Value); err != nil {
				return fmt.Errorf("struct field %q: %w", f.Name, err)
			}
		}
		return nil
	default:
		return builderMismatch(b, v)
	}
}

func appendAs[B array.Builder](b array.Builder, v Value, fn func(B)) error {
	bb, ok := b.(B)
	if !ok {
		return builderMismatch(b, v)
	}
	fn(bb)
	return nil
}

func builderMismatch(b array.Builder, v Value) error {
	return newError(CodeShapeMismatch, fmt.Sprintf("%s does not fit an arrow %s column", TypeName(v), b.Type()))
}
