// Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package ydbvalue converts between native Go values and the YDB wire
// representation, where a value travels as two parallel trees: a
// Ydb.Type describing its shape and a Ydb.Value carrying the payload.
//
// # Value model
//
// [Value] is a closed sum type. Scalars are plain named types ([Int32],
// [Text], [Timestamp], ...). Containers ([Optional], [List], [Struct]) keep
// a zero-valued item type witness so that an absent optional or an empty
// list still knows its wire type.
//
// # Operations
//
//   - [FromType] walks a wire type and returns a zero-valued skeleton.
//   - [Decode] populates a skeleton from a wire value. The skeleton picks
//     the wire field to read; any other populated field is a
//     [ErrShapeMismatch].
//   - [Encode] produces the wire type and wire value of a native value.
//     [TypeOf] computes the wire type of a witness alone.
//
// Integer narrowing and time unit conversions are checked in both
// directions and fail with [ErrNumericOverflow] rather than wrap. Dict,
// tuple, tagged, variant and decimal wire types are rejected with
// [ErrUnsupportedWireType]. Optional<Optional<T>> is rejected in both
// directions.
//
// # Result sets
//
// A [Decoder] decodes wire result sets row by row and reports progress to
// an optional [DecodeHook]. [OperationResult] unwraps the operation
// envelope shared by every response message. Decoded result sets export
// to Arrow via [RecordBatch] and [WriteArrowStream].
//
// All functions are safe for concurrent use.
package ydbvalue
