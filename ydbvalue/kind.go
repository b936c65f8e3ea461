// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import "fmt"

// Kind identifies the variant of a [Value].
type Kind uint8

const (
	KindVoid Kind = iota
	KindNull
	KindBool
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat
	KindDouble
	KindDate
	KindDateTime
	KindTimestamp
	KindInterval
	KindString
	KindText
	KindYson
	KindJSON
	KindJSONDocument
	KindOptional
	KindList
	KindStruct
)

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(KindStruct)+1)
	for k := KindVoid; k <= KindStruct; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "Void"
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindUint8:
		return "Uint8"
	case KindInt16:
		return "Int16"
	case KindUint16:
		return "Uint16"
	case KindInt32:
		return "Int32"
	case KindUint32:
		return "Uint32"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "Datetime"
	case KindTimestamp:
		return "Timestamp"
	case KindInterval:
		return "Interval"
	case KindString:
		return "String"
	case KindText:
		return "Utf8"
	case KindYson:
		return "Yson"
	case KindJSON:
		return "Json"
	case KindJSONDocument:
		return "JsonDocument"
	case KindOptional:
		return "Optional"
	case KindList:
		return "List"
	case KindStruct:
		return "Struct"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsContainer reports whether values of this kind hold other values.
func (k Kind) IsContainer() bool {
	return k == KindOptional || k == KindList || k == KindStruct
}
