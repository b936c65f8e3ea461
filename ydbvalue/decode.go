// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// Decode populates skeleton from the wire value v. The skeleton is usually
// built by [FromType], but any value may serve as a type witness.
//
// The skeleton decides which wire field must be populated: Int8, Int16 and
// Int32 read Int32Value, the unsigned narrow widths read Uint32Value, Date
// and DateTime read Uint32Value, Timestamp reads Uint64Value and Interval
// reads Int64Value. Narrowing is checked.
func Decode(skeleton Value, v *Ydb.Value) (Value, error) {
	if isNil(skeleton) {
		return nil, newError(CodeMissingType, "missing skeleton")
	}
	switch skeleton.(type) {
	case Void:
		return Void{}, nil
	case Null:
		return Null{}, nil
	}
	if v == nil {
		return nil, unsupportedConversion(skeleton, v)
	}

	switch s := skeleton.(type) {
	case *Optional:
		return decodeOptional(s, v)
	case *List:
		return decodeList(s, v)
	case *Struct:
		return decodeStruct(s, v)
	default:
		if v.Value == nil {
			return nil, unsupportedConversion(skeleton, v)
		}
		return decodeScalar(skeleton, v)
	}
}

func decodeOptional(s *Optional, v *Ydb.Value) (Value, error) {
	if s.itemType == nil {
		return nil, newError(CodeMissingType, "missing optional item type")
	}
	if _, nested := s.itemType.(*Optional); nested {
		return nil, errNestedOptional(s)
	}

	switch x := v.Value.(type) {
	case *Ydb.Value_NullFlagValue:
		return None(s.itemType), nil
	case *Ydb.Value_NestedValue:
		item, err := Decode(s.itemType, x.NestedValue)
		if err != nil {
			return nil, fmt.Errorf("optional item: %w", err)
		}
		return &Optional{itemType: s.itemType, value: item}, nil
	default:
		item, err := Decode(s.itemType, v)
		if err != nil {
			return nil, fmt.Errorf("optional item: %w", err)
		}
		return &Optional{itemType: s.itemType, value: item}, nil
	}
}

func decodeList(s *List, v *Ydb.Value) (Value, error) {
	if s.itemType == nil {
		return nil, newError(CodeMissingType, "missing list item type")
	}
	if v.Value != nil {
		return nil, shapeMismatch(s, v)
	}
	values := make([]Value, len(v.Items))
	for i, item := range v.Items {
		dv, err := Decode(s.itemType, item)
		if err != nil {
			return nil, fmt.Errorf("list item [%d]: %w", i, err)
		}
		values[i] = dv
	}
	return &List{itemType: s.itemType, values: values}, nil
}

func decodeStruct(s *Struct, v *Ydb.Value) (Value, error) {
	if v.Value != nil {
		return nil, shapeMismatch(s, v)
	}
	if len(v.Items) != len(s.fields) {
		return nil, newError(CodeFieldCountMismatch, fmt.Sprintf(
			"%s has %d fields, wire value has %d items", TypeName(s), len(s.fields), len(v.Items)))
	}
	fields := make([]StructField, len(s.fields))
	for i, f := range s.fields {
		dv, err := Decode(f.Value, v.Items[i])
		if err != nil {
			return nil, fmt.Errorf("struct field %q: %w", f.Name, err)
		}
		fields[i] = StructField{Name: f.Name, Value: dv}
	}
	return &Struct{fields: fields}, nil
}

func decodeScalar(skeleton Value, v *Ydb.Value) (Value, error) {
	switch skeleton.(type) {
	case Bool:
		if x, ok := v.Value.(*Ydb.Value_BoolValue); ok {
			return Bool(x.BoolValue), nil
		}
	case Int8:
		if x, ok := v.Value.(*Ydb.Value_Int32Value); ok {
			n, err := convertInt[int8](x.Int32Value)
			if err != nil {
				return nil, err
			}
			return Int8(n), nil
		}
	case Uint8:
		if x, ok := v.Value.(*Ydb.Value_Uint32Value); ok {
			n, err := convertInt[uint8](x.Uint32Value)
			if err != nil {
				return nil, err
			}
			return Uint8(n), nil
		}
	case Int16:
		if x, ok := v.Value.(*Ydb.Value_Int32Value); ok {
			n, err := convertInt[int16](x.Int32Value)
			if err != nil {
				return nil, err
			}
			return Int16(n), nil
		}
	case Uint16:
		if x, ok := v.Value.(*Ydb.Value_Uint32Value); ok {
			n, err := convertInt[uint16](x.Uint32Value)
			if err != nil {
				return nil, err
			}
			return Uint16(n), nil
		}
	case Int32:
		if x, ok := v.Value.(*Ydb.Value_Int32Value); ok {
			return Int32(x.Int32Value), nil
		}
	case Uint32:
		if x, ok := v.Value.(*Ydb.Value_Uint32Value); ok {
			return Uint32(x.Uint32Value), nil
		}
	case Int64:
		if x, ok := v.Value.(*Ydb.Value_Int64Value); ok {
			return Int64(x.Int64Value), nil
		}
	case Uint64:
		if x, ok := v.Value.(*Ydb.Value_Uint64Value); ok {
			return Uint64(x.Uint64Value), nil
		}
	case Float:
		if x, ok := v.Value.(*Ydb.Value_FloatValue); ok {
			return Float(x.FloatValue), nil
		}
	case Double:
		if x, ok := v.Value.(*Ydb.Value_DoubleValue); ok {
			return Double(x.DoubleValue), nil
		}
	case Date:
		if x, ok := v.Value.(*Ydb.Value_Uint32Value); ok {
			d, err := daysToDate(x.Uint32Value)
			if err != nil {
				return nil, err
			}
			return d, nil
		}
	case DateTime:
		if x, ok := v.Value.(*Ydb.Value_Uint32Value); ok {
			d, err := secondsToDateTime(x.Uint32Value)
			if err != nil {
				return nil, err
			}
			return d, nil
		}
	case Timestamp:
		if x, ok := v.Value.(*Ydb.Value_Uint64Value); ok {
			t, err := microsToTimestamp(x.Uint64Value)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
	case Interval:
		if x, ok := v.Value.(*Ydb.Value_Int64Value); ok {
			i, err := nanosToInterval(x.Int64Value)
			if err != nil {
				return nil, err
			}
			return i, nil
		}
	case String:
		if x, ok := v.Value.(*Ydb.Value_BytesValue); ok {
			return String(append([]byte(nil), x.BytesValue...)), nil
		}
	case Yson:
		if x, ok := v.Value.(*Ydb.Value_BytesValue); ok {
			return Yson(x.BytesValue), nil
		}
	case Text:
		if x, ok := v.Value.(*Ydb.Value_TextValue); ok {
			return Text(x.TextValue), nil
		}
	case JSON:
		if x, ok := v.Value.(*Ydb.Value_TextValue); ok {
			return JSON(x.TextValue), nil
		}
	case JSONDocument:
		if x, ok := v.Value.(*Ydb.Value_TextValue); ok {
			return JSONDocument(x.TextValue), nil
		}
	default:
		return nil, unsupportedConversion(skeleton, v)
	}
	return nil, shapeMismatch(skeleton, v)
}

func shapeMismatch(skeleton Value, v *Ydb.Value) *CodecError {
	return newError(CodeShapeMismatch, fmt.Sprintf(
		"%s cannot be decoded from %s", TypeName(skeleton), wireFieldName(v)))
}

func unsupportedConversion(skeleton Value, v *Ydb.Value) *CodecError {
	return &CodecError{
		Code:     CodeUnsupportedConversion,
		Message:  "no conversion between skeleton and wire value",
		Skeleton: skeleton,
		Wire:     v,
	}
}

func errNestedOptional(o *Optional) *CodecError {
	return newError(CodeCustom, fmt.Sprintf("nested optional %s is not implemented", TypeName(o)))
}
