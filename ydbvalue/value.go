// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"bytes"
	"fmt"
	"time"
)

// Value is a native YDB value. The set of implementations is closed: only
// the variant types declared in this package satisfy it.
//
// Values are immutable once constructed. Container accessors return
// copies of their backing slices.
type Value interface {
	Kind() Kind
	isValue()
}

// Void is the value of the Void type.
type Void struct{}

// Null is the value of the Null type.
type Null struct{}

type (
	Bool   bool
	Int8   int8
	Uint8  uint8
	Int16  int16
	Uint16 uint16
	Int32  int32
	Uint32 uint32
	Int64  int64
	Uint64 uint64
	Float  float32
	Double float64
)

// Date is a calendar date as a duration since the Unix epoch. Encoding
// requires a whole number of days.
type Date time.Duration

// DateTime is a point in time with second precision, as a duration since
// the Unix epoch.
type DateTime time.Duration

// Timestamp is a point in time with microsecond precision, as a duration
// since the Unix epoch.
type Timestamp time.Duration

// Sign is the sign of an [Interval].
type Sign uint8

const (
	Plus Sign = iota
	Minus
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Interval is a signed time span. Duration holds the magnitude and must
// not be negative.
type Interval struct {
	Sign     Sign
	Duration time.Duration
}

// String holds raw bytes. It is never interpreted as text.
type String []byte

type (
	Text         string
	Yson         string
	JSON         string
	JSONDocument string
)

// Optional holds either nothing or a single value. The item type witness
// is a zero value of the held type, which keeps an absent optional
// encodable.
type Optional struct {
	itemType Value
	value    Value
}

// List is an ordered sequence of values that share the kind of the item
// type witness. Empty lists keep the witness.
type List struct {
	itemType Value
	values   []Value
}

// StructField is one named member of a [Struct].
type StructField struct {
	Name  string
	Value Value
}

// Struct is an ordered set of named fields. Field order is significant.
type Struct struct {
	fields []StructField
}

func (Void) Kind() Kind         { return KindVoid }
func (Null) Kind() Kind         { return KindNull }
func (Bool) Kind() Kind         { return KindBool }
func (Int8) Kind() Kind         { return KindInt8 }
func (Uint8) Kind() Kind        { return KindUint8 }
func (Int16) Kind() Kind        { return KindInt16 }
func (Uint16) Kind() Kind       { return KindUint16 }
func (Int32) Kind() Kind        { return KindInt32 }
func (Uint32) Kind() Kind       { return KindUint32 }
func (Int64) Kind() Kind        { return KindInt64 }
func (Uint64) Kind() Kind       { return KindUint64 }
func (Float) Kind() Kind        { return KindFloat }
func (Double) Kind() Kind       { return KindDouble }
func (Date) Kind() Kind         { return KindDate }
func (DateTime) Kind() Kind     { return KindDateTime }
func (Timestamp) Kind() Kind    { return KindTimestamp }
func (Interval) Kind() Kind     { return KindInterval }
func (String) Kind() Kind       { return KindString }
func (Text) Kind() Kind         { return KindText }
func (Yson) Kind() Kind         { return KindYson }
func (JSON) Kind() Kind         { return KindJSON }
func (JSONDocument) Kind() Kind { return KindJSONDocument }
func (*Optional) Kind() Kind    { return KindOptional }
func (*List) Kind() Kind        { return KindList }
func (*Struct) Kind() Kind      { return KindStruct }

func (Void) isValue()         {}
func (Null) isValue()         {}
func (Bool) isValue()         {}
func (Int8) isValue()         {}
func (Uint8) isValue()        {}
func (Int16) isValue()        {}
func (Uint16) isValue()       {}
func (Int32) isValue()        {}
func (Uint32) isValue()       {}
func (Int64) isValue()        {}
func (Uint64) isValue()       {}
func (Float) isValue()        {}
func (Double) isValue()       {}
func (Date) isValue()         {}
func (DateTime) isValue()     {}
func (Timestamp) isValue()    {}
func (Interval) isValue()     {}
func (String) isValue()       {}
func (Text) isValue()         {}
func (Yson) isValue()         {}
func (JSON) isValue()         {}
func (JSONDocument) isValue() {}
func (*Optional) isValue()    {}
func (*List) isValue()        {}
func (*Struct) isValue()      {}

// NewOptional builds an optional of the given item type. A nil v builds
// an absent optional. A present v must have the same kind as itemType.
func NewOptional(itemType, v Value) (*Optional, error) {
	if itemType == nil {
		return nil, newError(CodeMissingType, "optional without item type")
	}
	if v != nil && v.Kind() != itemType.Kind() {
		return nil, newError(CodeCustom, fmt.Sprintf(
			"optional item type %s does not match value kind %s", TypeName(itemType), v.Kind()))
	}
	return &Optional{itemType: itemType, value: v}, nil
}

// None builds an absent optional of the given item type.
func None(itemType Value) *Optional {
	return &Optional{itemType: itemType}
}

// Some builds a present optional whose item type witness is derived from v.
func Some(v Value) *Optional {
	return &Optional{itemType: zeroOf(v), value: v}
}

// ItemType returns the item type witness.
func (o *Optional) ItemType() Value {
	return o.itemType
}

// Get returns the held value and whether it is present.
func (o *Optional) Get() (Value, bool) {
	return o.value, o.value != nil
}

// NewList builds a list with the given item type witness. Every value must
// have the same kind as the witness.
func NewList(itemType Value, values ...Value) (*List, error) {
	if itemType == nil {
		return nil, newError(CodeMissingType, "list without item type")
	}
	for i, v := range values {
		if v == nil || v.Kind() != itemType.Kind() {
			got := "nil"
			if v != nil {
				got = v.Kind().String()
			}
			return nil, newError(CodeCustom, fmt.Sprintf(
				"list item [%d]: kind %s does not match item type %s", i, got, TypeName(itemType)))
		}
	}
	return &List{itemType: itemType, values: append([]Value(nil), values...)}, nil
}

// ListOf builds a non-empty list whose item type witness is derived from
// the first value.
func ListOf(first Value, rest ...Value) (*List, error) {
	if first == nil {
		return nil, newError(CodeMissingType, "list without item type")
	}
	return NewList(zeroOf(first), append([]Value{first}, rest...)...)
}

// ItemType returns the item type witness.
func (l *List) ItemType() Value {
	return l.itemType
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.values)
}

// At returns the i-th item.
func (l *List) At(i int) Value {
	return l.values[i]
}

// Values returns a copy of the items.
func (l *List) Values() []Value {
	return append([]Value(nil), l.values...)
}

// NewStruct builds a struct from parallel name and value sequences.
func NewStruct(names []string, values []Value) (*Struct, error) {
	if len(names) != len(values) {
		return nil, newError(CodeFieldCountMismatch, fmt.Sprintf(
			"struct has %d names and %d values", len(names), len(values)))
	}
	fields := make([]StructField, len(names))
	for i := range names {
		fields[i] = StructField{Name: names[i], Value: values[i]}
	}
	return &Struct{fields: fields}, nil
}

// StructOf builds a struct from fields in order.
func StructOf(fields ...StructField) *Struct {
	return &Struct{fields: append([]StructField(nil), fields...)}
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields.
func (s *Struct) Fields() []StructField {
	return append([]StructField(nil), s.fields...)
}

// Names returns the field names in order.
func (s *Struct) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (s *Struct) Values() []Value {
	values := make([]Value, len(s.fields))
	for i, f := range s.fields {
		values[i] = f.Value
	}
	return values
}

// Field returns the value of the first field with the given name.
func (s *Struct) Field(name string) (Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// isNil reports whether v is nil or a nil container pointer.
func isNil(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *Optional:
		return v == nil
	case *List:
		return v == nil
	case *Struct:
		return v == nil
	default:
		return false
	}
}

// zeroOf returns the zero value with the same shape as v: scalars become
// their zero, optionals become absent, lists become empty.
func zeroOf(v Value) Value {
	if isNil(v) {
		return nil
	}
	switch v := v.(type) {
	case Void:
		return Void{}
	case Null:
		return Null{}
	case Bool:
		return Bool(false)
	case Int8:
		return Int8(0)
	case Uint8:
		return Uint8(0)
	case Int16:
		return Int16(0)
	case Uint16:
		return Uint16(0)
	case Int32:
		return Int32(0)
	case Uint32:
		return Uint32(0)
	case Int64:
		return Int64(0)
	case Uint64:
		return Uint64(0)
	case Float:
		return Float(0)
	case Double:
		return Double(0)
	case Date:
		return Date(0)
	case DateTime:
		return DateTime(0)
	case Timestamp:
		return Timestamp(0)
	case Interval:
		return Interval{}
	case String:
		return String(nil)
	case Text:
		return Text("")
	case Yson:
		return Yson("")
	case JSON:
		return JSON("")
	case JSONDocument:
		return JSONDocument("")
	case *Optional:
		return None(v.itemType)
	case *List:
		return &List{itemType: v.itemType}
	case *Struct:
		fields := make([]StructField, len(v.fields))
		for i, f := range v.fields {
			fields[i] = StructField{Name: f.Name}
			if f.Value != nil {
				fields[i].Value = zeroOf(f.Value)
			}
		}
		return &Struct{fields: fields}
	default:
		return nil
	}
}

// Equal reports whether a and b are the same variant holding equal
// payloads. Container witnesses are compared by type, not by value.
func Equal(a, b Value) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case String:
		return bytes.Equal(a, b.(String))
	case *Optional:
		bo := b.(*Optional)
		if TypeName(a.itemType) != TypeName(bo.itemType) {
			return false
		}
		return Equal(a.value, bo.value)
	case *List:
		bl := b.(*List)
		if TypeName(a.itemType) != TypeName(bl.itemType) || len(a.values) != len(bl.values) {
			return false
		}
		for i := range a.values {
			if !Equal(a.values[i], bl.values[i]) {
				return false
			}
		}
		return true
	case *Struct:
		bs := b.(*Struct)
		if len(a.fields) != len(bs.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != bs.fields[i].Name || !Equal(a.fields[i].Value, bs.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
