package ydbvalue

import (
	"fmt"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// ErrorCode classifies a [CodecError].
type ErrorCode int

const (
	// CodeAny matches every code when used in a sentinel.
	CodeAny ErrorCode = iota
	// CodeMissingType reports an absent wire type or required sub-type.
	CodeMissingType
	// CodeUnsupportedWireType reports a valid wire type the codec does not implement.
	CodeUnsupportedWireType
	// CodeShapeMismatch reports a skeleton variant that does not pair with
	// the populated wire field.
	CodeShapeMismatch
	// CodeFieldCountMismatch reports a struct whose member and item counts differ.
	CodeFieldCountMismatch
	// CodeNumericOverflow reports a failed checked width or unit conversion.
	CodeNumericOverflow
	// CodeUnsupportedConversion reports an operand pairing with no conversion.
	CodeUnsupportedConversion
	// CodeCustom reports an invariant violation such as a list item whose
	// kind differs from the item type.
	CodeCustom
)

func (c ErrorCode) String() string {
	switch c {
	case CodeAny:
		return "Any"
	case CodeMissingType:
		return "MissingType"
	case CodeUnsupportedWireType:
		return "UnsupportedWireType"
	case CodeShapeMismatch:
		return "ShapeMismatch"
	case CodeFieldCountMismatch:
		return "FieldCountMismatch"
	case CodeNumericOverflow:
		return "NumericOverflow"
	case CodeUnsupportedConversion:
		return "UnsupportedConversion"
	case CodeCustom:
		return "Custom"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Sentinels for use with errors.Is. ErrCodec matches any *CodecError.
var (
	ErrCodec                 = &CodecError{Code: CodeAny}
	ErrMissingType           = &CodecError{Code: CodeMissingType}
	ErrUnsupportedWireType   = &CodecError{Code: CodeUnsupportedWireType}
	ErrShapeMismatch         = &CodecError{Code: CodeShapeMismatch}
	ErrFieldCountMismatch    = &CodecError{Code: CodeFieldCountMismatch}
	ErrNumericOverflow       = &CodecError{Code: CodeNumericOverflow}
	ErrUnsupportedConversion = &CodecError{Code: CodeUnsupportedConversion}
	ErrCustom                = &CodecError{Code: CodeCustom}
)

// CodecError is returned by every failed conversion.
type CodecError struct {
	Code    ErrorCode
	Message string
	// Skeleton and Wire hold the operands of an unsupported conversion.
	Skeleton Value
	Wire     *Ydb.Value
}

func newError(code ErrorCode, msg string) *CodecError {
	return &CodecError{Code: code, Message: msg}
}

func (e *CodecError) Error() string {
	if e.Code == CodeUnsupportedConversion && (e.Skeleton != nil || e.Wire != nil) {
		return fmt.Sprintf("%s: %s (skeleton %s, wire %s)",
			e.Code, e.Message, TypeName(e.Skeleton), wireFieldName(e.Wire))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is supports errors.Is by matching a *CodecError target with the same
// code, or any *CodecError when the target code is CodeAny.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	if !ok {
		return false
	}
	return t.Code == CodeAny || t.Code == e.Code
}
