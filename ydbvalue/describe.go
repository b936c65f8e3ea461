// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"
	"strings"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// TypeName returns the YQL type name of v, e.g. "List<Optional<Int32>>"
// or "Struct<a:Int32,b:Utf8>".
func TypeName(v Value) string {
	var sb strings.Builder
	writeTypeName(&sb, v)
	return sb.String()
}

func writeTypeName(sb *strings.Builder, v Value) {
	if isNil(v) {
		sb.WriteString("<nil>")
		return
	}
	switch v := v.(type) {
	case *Optional:
		sb.WriteString("Optional<")
		writeTypeName(sb, v.itemType)
		sb.WriteByte('>')
	case *List:
		sb.WriteString("List<")
		writeTypeName(sb, v.itemType)
		sb.WriteByte('>')
	case *Struct:
		sb.WriteString("Struct<")
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			writeTypeName(sb, f.Value)
		}
		sb.WriteByte('>')
	default:
		sb.WriteString(v.Kind().String())
	}
}

// wireTypeName returns a short human-readable name for a wire type.
func wireTypeName(t *Ydb.Type) string {
	if t == nil {
		return "<nil>"
	}
	switch x := t.Type.(type) {
	case nil:
		return "<unset>"
	case *Ydb.Type_TypeId:
		return x.TypeId.String()
	case *Ydb.Type_OptionalType:
		return "Optional"
	case *Ydb.Type_ListType:
		return "List"
	case *Ydb.Type_StructType:
		return "Struct"
	case *Ydb.Type_DecimalType:
		return "Decimal"
	case *Ydb.Type_DictType:
		return "Dict"
	case *Ydb.Type_TupleType:
		return "Tuple"
	case *Ydb.Type_VariantType:
		return "Variant"
	case *Ydb.Type_TaggedType:
		return "Tagged"
	case *Ydb.Type_VoidType:
		return "Void"
	case *Ydb.Type_NullType:
		return "Null"
	case *Ydb.Type_EmptyListType:
		return "EmptyList"
	case *Ydb.Type_EmptyDictType:
		return "EmptyDict"
	default:
		return fmt.Sprintf("%T", x)
	}
}

// wireFieldName returns the name of the populated field of a wire value.
func wireFieldName(v *Ydb.Value) string {
	if v == nil {
		return "<nil>"
	}
	switch v.Value.(type) {
	case *Ydb.Value_BoolValue:
		return "BoolValue"
	case *Ydb.Value_Int32Value:
		return "Int32Value"
	case *Ydb.Value_Uint32Value:
		return "Uint32Value"
	case *Ydb.Value_Int64Value:
		return "Int64Value"
	case *Ydb.Value_Uint64Value:
		return "Uint64Value"
	case *Ydb.Value_FloatValue:
		return "FloatValue"
	case *Ydb.Value_DoubleValue:
		return "DoubleValue"
	case *Ydb.Value_BytesValue:
		return "BytesValue"
	case *Ydb.Value_TextValue:
		return "TextValue"
	case *Ydb.Value_NullFlagValue:
		return "NullFlagValue"
	case *Ydb.Value_NestedValue:
		return "NestedValue"
	case *Ydb.Value_Low_128:
		return "Low128"
	case nil:
		switch {
		case len(v.Pairs) > 0:
			return fmt.Sprintf("Pairs[%d]", len(v.Pairs))
		default:
			return fmt.Sprintf("Items[%d]", len(v.Items))
		}
	default:
		return fmt.Sprintf("%T", v.Value)
	}
}
