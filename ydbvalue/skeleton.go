// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// FromType walks a wire type and returns a zero value of the same shape:
// scalars are zero, optionals are absent and lists are empty. The result
// serves as the skeleton for [Decode].
func FromType(t *Ydb.Type) (Value, error) {
	if t == nil || t.Type == nil {
		return nil, newError(CodeMissingType, "missing type")
	}

	switch x := t.Type.(type) {
	case *Ydb.Type_TypeId:
		return primitiveZero(x.TypeId)

	case *Ydb.Type_OptionalType:
		if x.OptionalType.GetItem() == nil {
			return nil, newError(CodeMissingType, "missing optional item type")
		}
		item, err := FromType(x.OptionalType.Item)
		if err != nil {
			return nil, fmt.Errorf("optional item: %w", err)
		}
		return None(item), nil

	case *Ydb.Type_ListType:
		if x.ListType.GetItem() == nil {
			return nil, newError(CodeMissingType, "missing list item type")
		}
		item, err := FromType(x.ListType.Item)
		if err != nil {
			return nil, fmt.Errorf("list item: %w", err)
		}
		return &List{itemType: item}, nil

	case *Ydb.Type_StructType:
		members := x.StructType.GetMembers()
		fields := make([]StructField, len(members))
		for i, m := range members {
			if m.GetType() == nil {
				return nil, newError(CodeMissingType, fmt.Sprintf("missing type of struct member %q", m.GetName()))
			}
			fv, err := FromType(m.Type)
			if err != nil {
				return nil, fmt.Errorf("struct member %q: %w", m.Name, err)
			}
			fields[i] = StructField{Name: m.Name, Value: fv}
		}
		return &Struct{fields: fields}, nil

	case *Ydb.Type_VoidType:
		return Void{}, nil

	case *Ydb.Type_NullType:
		return Null{}, nil

	default:
		return nil, newError(CodeUnsupportedWireType, fmt.Sprintf("wire type %s is not supported", wireTypeName(t)))
	}
}

// primitiveZero maps a primitive type id to the zero value of its variant.
func primitiveZero(id Ydb.Type_PrimitiveTypeId) (Value, error) {
	switch id {
	case Ydb.Type_BOOL:
		return Bool(false), nil
	case Ydb.Type_INT8:
		return Int8(0), nil
	case Ydb.Type_UINT8:
		return Uint8(0), nil
	case Ydb.Type_INT16:
		return Int16(0), nil
	case Ydb.Type_UINT16:
		return Uint16(0), nil
	case Ydb.Type_INT32:
		return Int32(0), nil
	case Ydb.Type_UINT32:
		return Uint32(0), nil
	case Ydb.Type_INT64:
		return Int64(0), nil
	case Ydb.Type_UINT64:
		return Uint64(0), nil
	case Ydb.Type_FLOAT:
		return Float(0), nil
	case Ydb.Type_DOUBLE:
		return Double(0), nil
	case Ydb.Type_DATE:
		return Date(0), nil
	case Ydb.Type_DATETIME:
		return DateTime(0), nil
	case Ydb.Type_TIMESTAMP:
		return Timestamp(0), nil
	case Ydb.Type_INTERVAL:
		return Interval{}, nil
	case Ydb.Type_STRING:
		return String(nil), nil
	case Ydb.Type_UTF8:
		return Text(""), nil
	case Ydb.Type_YSON:
		return Yson(""), nil
	case Ydb.Type_JSON:
		return JSON(""), nil
	case Ydb.Type_JSON_DOCUMENT:
		return JSONDocument(""), nil
	default:
		return nil, newError(CodeUnsupportedWireType, fmt.Sprintf("primitive type %s is not supported", id))
	}
}

// primitiveTypeID maps a scalar kind to its wire type id.
func primitiveTypeID(k Kind) (Ydb.Type_PrimitiveTypeId, bool) {
	switch k {
	case KindBool:
		return Ydb.Type_BOOL, true
	case KindInt8:
		return Ydb.Type_INT8, true
	case KindUint8:
		return Ydb.Type_UINT8, true
	case KindInt16:
		return Ydb.Type_INT16, true
	case KindUint16:
		return Ydb.Type_UINT16, true
	case KindInt32:
		return Ydb.Type_INT32, true
	case KindUint32:
		return Ydb.Type_UINT32, true
	case KindInt64:
		return Ydb.Type_INT64, true
	case KindUint64:
		return Ydb.Type_UINT64, true
	case KindFloat:
		return Ydb.Type_FLOAT, true
	case KindDouble:
		return Ydb.Type_DOUBLE, true
	case KindDate:
		return Ydb.Type_DATE, true
	case KindDateTime:
		return Ydb.Type_DATETIME, true
	case KindTimestamp:
		return Ydb.Type_TIMESTAMP, true
	case KindInterval:
		return Ydb.Type_INTERVAL, true
	case KindString:
		return Ydb.Type_STRING, true
	case KindText:
		return Ydb.Type_UTF8, true
	case KindYson:
		return Ydb.Type_YSON, true
	case KindJSON:
		return Ydb.Type_JSON, true
	case KindJSONDocument:
		return Ydb.Type_JSON_DOCUMENT, true
	default:
		return 0, false
	}
}
