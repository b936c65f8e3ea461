// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encode converts v into the wire type and wire value that travel together
// in a typed request payload.
//
// Int8 and Int16 widen to Int32Value, Uint8 and Uint16 to Uint32Value.
// Date, DateTime and Timestamp must be non-negative whole days, seconds
// and microseconds respectively, and fit their wire width.
func Encode(v Value) (*Ydb.Type, *Ydb.Value, error) {
	if isNil(v) {
		return nil, nil, newError(CodeMissingType, "missing value")
	}
	switch v := v.(type) {
	case Void:
		return &Ydb.Type{Type: &Ydb.Type_VoidType{VoidType: structpb.NullValue_NULL_VALUE}}, nullFlag(), nil

	case Null:
		return &Ydb.Type{Type: &Ydb.Type_NullType{NullType: structpb.NullValue_NULL_VALUE}}, nullFlag(), nil

	case *Optional:
		return encodeOptional(v)

	case *List:
		return encodeList(v)

	case *Struct:
		return encodeStruct(v)

	default:
		id, ok := primitiveTypeID(v.Kind())
		if !ok {
			return nil, nil, newError(CodeCustom, fmt.Sprintf("cannot encode %s", v.Kind()))
		}
		payload, err := encodeScalar(v)
		if err != nil {
			return nil, nil, err
		}
		return primitiveType(id), payload, nil
	}
}

// EncodeTyped encodes v into a single [Ydb.TypedValue].
func EncodeTyped(v Value) (*Ydb.TypedValue, error) {
	t, payload, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return &Ydb.TypedValue{Type: t, Value: payload}, nil
}

// TypeOf returns the wire type described by the witness v without
// encoding any payload. A present optional reports the type of its
// item type witness.
func TypeOf(v Value) (*Ydb.Type, error) {
	if isNil(v) {
		return nil, newError(CodeMissingType, "missing type witness")
	}
	switch v := v.(type) {
	case Void:
		return &Ydb.Type{Type: &Ydb.Type_VoidType{VoidType: structpb.NullValue_NULL_VALUE}}, nil

	case Null:
		return &Ydb.Type{Type: &Ydb.Type_NullType{NullType: structpb.NullValue_NULL_VALUE}}, nil

	case *Optional:
		if _, nested := v.itemType.(*Optional); nested {
			return nil, errNestedOptional(v)
		}
		item, err := TypeOf(v.itemType)
		if err != nil {
			return nil, fmt.Errorf("optional item: %w", err)
		}
		return optionalType(item), nil

	case *List:
		item, err := TypeOf(v.itemType)
		if err != nil {
			return nil, fmt.Errorf("list item: %w", err)
		}
		return listType(item), nil

	case *Struct:
		members := make([]*Ydb.StructMember, len(v.fields))
		for i, f := range v.fields {
			t, err := TypeOf(f.Value)
			if err != nil {
				return nil, fmt.Errorf("struct field %q: %w", f.Name, err)
			}
			members[i] = &Ydb.StructMember{Name: f.Name, Type: t}
		}
		return &Ydb.Type{Type: &Ydb.Type_StructType{StructType: &Ydb.StructType{Members: members}}}, nil

	default:
		id, ok := primitiveTypeID(v.Kind())
		if !ok {
			return nil, newError(CodeCustom, fmt.Sprintf("no wire type for %s", v.Kind()))
		}
		return primitiveType(id), nil
	}
}

func encodeOptional(o *Optional) (*Ydb.Type, *Ydb.Value, error) {
	if _, nested := o.itemType.(*Optional); nested {
		return nil, nil, errNestedOptional(o)
	}
	if o.value == nil {
		t, err := TypeOf(o)
		if err != nil {
			return nil, nil, err
		}
		return t, nullFlag(), nil
	}
	if _, nested := o.value.(*Optional); nested {
		return nil, nil, errNestedOptional(o)
	}

	itemType, err := TypeOf(o.itemType)
	if err != nil {
		return nil, nil, fmt.Errorf("optional item: %w", err)
	}
	t, payload, err := Encode(o.value)
	if err != nil {
		return nil, nil, fmt.Errorf("optional item: %w", err)
	}
	if !proto.Equal(t, itemType) {
		return nil, nil, newError(CodeCustom, fmt.Sprintf(
			"optional item: type %s does not match item type %s", TypeName(o.value), TypeName(o.itemType)))
	}
	// A present item whose payload is itself a null flag would read back
	// as absent.
	if _, isNull := payload.Value.(*Ydb.Value_NullFlagValue); isNull {
		payload = &Ydb.Value{Value: &Ydb.Value_NestedValue{NestedValue: payload}}
	}
	return optionalType(t), payload, nil
}

func encodeList(l *List) (*Ydb.Type, *Ydb.Value, error) {
	itemType, err := TypeOf(l.itemType)
	if err != nil {
		return nil, nil, fmt.Errorf("list item: %w", err)
	}
	items := make([]*Ydb.Value, len(l.values))
	for i, v := range l.values {
		t, payload, err := Encode(v)
		if err != nil {
			return nil, nil, fmt.Errorf("list item [%d]: %w", i, err)
		}
		if !proto.Equal(t, itemType) {
			return nil, nil, newError(CodeCustom, fmt.Sprintf(
				"list item [%d]: type %s does not match item type %s", i, TypeName(v), TypeName(l.itemType)))
		}
		items[i] = payload
	}
	return listType(itemType), &Ydb.Value{Items: items}, nil
}

func encodeStruct(s *Struct) (*Ydb.Type, *Ydb.Value, error) {
	members := make([]*Ydb.StructMember, len(s.fields))
	items := make([]*Ydb.Value, len(s.fields))
	for i, f := range s.fields {
		t, payload, err := Encode(f.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("struct field %q: %w", f.Name, err)
		}
		members[i] = &Ydb.StructMember{Name: f.Name, Type: t}
		items[i] = payload
	}
	t := &Ydb.Type{Type: &Ydb.Type_StructType{StructType: &Ydb.StructType{Members: members}}}
	return t, &Ydb.Value{Items: items}, nil
}

func encodeScalar(v Value) (*Ydb.Value, error) {
	switch v := v.(type) {
	case Bool:
		return &Ydb.Value{Value: &Ydb.Value_BoolValue{BoolValue: bool(v)}}, nil
	case Int8:
		return &Ydb.Value{Value: &Ydb.Value_Int32Value{Int32Value: int32(v)}}, nil
	case Uint8:
		return &Ydb.Value{Value: &Ydb.Value_Uint32Value{Uint32Value: uint32(v)}}, nil
	case Int16:
		return &Ydb.Value{Value: &Ydb.Value_Int32Value{Int32Value: int32(v)}}, nil
	case Uint16:
		return &Ydb.Value{Value: &Ydb.Value_Uint32Value{Uint32Value: uint32(v)}}, nil
	case Int32:
		return &Ydb.Value{Value: &Ydb.Value_Int32Value{Int32Value: int32(v)}}, nil
	case Uint32:
		return &Ydb.Value{Value: &Ydb.Value_Uint32Value{Uint32Value: uint32(v)}}, nil
	case Int64:
		return &Ydb.Value{Value: &Ydb.Value_Int64Value{Int64Value: int64(v)}}, nil
	case Uint64:
		return &Ydb.Value{Value: &Ydb.Value_Uint64Value{Uint64Value: uint64(v)}}, nil
	case Float:
		return &Ydb.Value{Value: &Ydb.Value_FloatValue{FloatValue: float32(v)}}, nil
	case Double:
		return &Ydb.Value{Value: &Ydb.Value_DoubleValue{DoubleValue: float64(v)}}, nil
	case Date:
		days, err := dateToDays(v)
		if err != nil {
			return nil, err
		}
		return &Ydb.Value{Value: &Ydb.Value_Uint32Value{Uint32Value: days}}, nil
	case DateTime:
		secs, err := dateTimeToSeconds(v)
		if err != nil {
			return nil, err
		}
		return &Ydb.Value{Value: &Ydb.Value_Uint32Value{Uint32Value: secs}}, nil
	case Timestamp:
		us, err := timestampToMicros(v)
		if err != nil {
			return nil, err
		}
		return &Ydb.Value{Value: &Ydb.Value_Uint64Value{Uint64Value: us}}, nil
	case Interval:
		ns, err := intervalToNanos(v)
		if err != nil {
			return nil, err
		}
		return &Ydb.Value{Value: &Ydb.Value_Int64Value{Int64Value: ns}}, nil
	case String:
		return &Ydb.Value{Value: &Ydb.Value_BytesValue{BytesValue: append([]byte(nil), v...)}}, nil
	case Yson:
		return &Ydb.Value{Value: &Ydb.Value_BytesValue{BytesValue: []byte(v)}}, nil
	case Text:
		return &Ydb.Value{Value: &Ydb.Value_TextValue{TextValue: string(v)}}, nil
	case JSON:
		return &Ydb.Value{Value: &Ydb.Value_TextValue{TextValue: string(v)}}, nil
	case JSONDocument:
		return &Ydb.Value{Value: &Ydb.Value_TextValue{TextValue: string(v)}}, nil
	default:
		return nil, newError(CodeCustom, fmt.Sprintf("cannot encode %s as a scalar", v.Kind()))
	}
}

func primitiveType(id Ydb.Type_PrimitiveTypeId) *Ydb.Type {
	return &Ydb.Type{Type: &Ydb.Type_TypeId{TypeId: id}}
}

func optionalType(item *Ydb.Type) *Ydb.Type {
	return &Ydb.Type{Type: &Ydb.Type_OptionalType{OptionalType: &Ydb.OptionalType{Item: item}}}
}

func listType(item *Ydb.Type) *Ydb.Type {
	return &Ydb.Type{Type: &Ydb.Type_ListType{ListType: &Ydb.ListType{Item: item}}}
}

func nullFlag() *Ydb.Value {
	return &Ydb.Value{Value: &Ydb.Value_NullFlagValue{NullFlagValue: structpb.NullValue_NULL_VALUE}}
}
