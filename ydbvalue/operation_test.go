// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Issue"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Operations"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Table"
	"google.golang.org/protobuf/types/known/anypb"
)

func queryResponse(t *testing.T, op *Ydb_Operations.Operation, sets ...*Ydb.ResultSet) *Ydb_Table.ExecuteDataQueryResponse {
	t.Helper()
	if op.Ready && op.Status == Ydb.StatusIds_SUCCESS {
		result, err := anypb.New(&Ydb_Table.ExecuteQueryResult{ResultSets: sets})
		require.NoError(t, err)
		op.Result = result
	}
	return &Ydb_Table.ExecuteDataQueryResponse{Operation: op}
}

func TestOperationResult(t *testing.T) {
	resp := queryResponse(t, &Ydb_Operations.Operation{Id: "op-1", Ready: true, Status: Ydb.StatusIds_SUCCESS},
		wireResultSet(t, sampleRows(t)...))

	var result Ydb_Table.ExecuteQueryResult
	require.NoError(t, OperationResult(resp, &result))
	require.Len(t, result.ResultSets, 1)
	assert.Len(t, result.ResultSets[0].Rows, 3)
}

func TestOperationResultNotReady(t *testing.T) {
	resp := queryResponse(t, &Ydb_Operations.Operation{Id: "op-2", Ready: false})

	var result Ydb_Table.ExecuteQueryResult
	err := OperationResult(resp, &result)
	assert.ErrorIs(t, err, ErrOperationNotReady)
	assert.Contains(t, err.Error(), "op-2")
}

func TestOperationResultFailedStatus(t *testing.T) {
	resp := queryResponse(t, &Ydb_Operations.Operation{
		Id:     "op-3",
		Ready:  true,
		Status: Ydb.StatusIds_SCHEME_ERROR,
		Issues: []*Ydb_Issue.IssueMessage{{
			Message:   "Type annotation",
			IssueCode: 1030,
			Issues:    []*Ydb_Issue.IssueMessage{{Message: "Cannot find table", IssueCode: 2003}},
		}},
	})

	var result Ydb_Table.ExecuteQueryResult
	err := OperationResult(resp, &result)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, Ydb.StatusIds_SCHEME_ERROR, opErr.Status)
	assert.Equal(t, "op-3", opErr.ID)
	assert.Equal(t, `operation "op-3" failed with status SCHEME_ERROR: #1030 Type annotation (#2003 Cannot find table)`, err.Error())
}

func TestOperationResultMissing(t *testing.T) {
	var result Ydb_Table.ExecuteQueryResult

	assert.Error(t, OperationResult(nil, &result))
	assert.Error(t, OperationResult(&Ydb_Table.ExecuteDataQueryResponse{}, &result))
	assert.Error(t, OperationResult(&Ydb_Table.ExecuteDataQueryResponse{
		Operation: &Ydb_Operations.Operation{Ready: true, Status: Ydb.StatusIds_SUCCESS},
	}, &result))

	// A result of another message type does not unpack.
	other, err := anypb.New(&Ydb.ResultSet{})
	require.NoError(t, err)
	err = OperationResult(&Ydb_Table.ExecuteDataQueryResponse{
		Operation: &Ydb_Operations.Operation{Ready: true, Status: Ydb.StatusIds_SUCCESS, Result: other},
	}, &result)
	assert.Error(t, err)
}

func TestDecodeQueryResponse(t *testing.T) {
	hook := &recordingHook{}
	d := NewDecoder()
	d.SetDecodeHook(hook)

	first := wireResultSet(t, sampleRows(t)...)
	second := wireResultSet(t, StructOf(field("n", Int64(42))))
	resp := queryResponse(t, &Ydb_Operations.Operation{Ready: true, Status: Ydb.StatusIds_SUCCESS}, first, second)

	sets, err := d.DecodeQueryResponse(context.Background(), resp)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Len(t, sets[0].Rows, 3)
	require.Len(t, sets[1].Rows, 1)
	assertValue(t, StructOf(field("n", Int64(42))), sets[1].Rows[0])

	require.Len(t, hook.ends, 1)
	assert.Equal(t, DecodeOpQueryResponse, hook.ends[0].info.Operation)
	assert.Equal(t, DecodeStatistics{ResultSets: 2, Columns: 4, Rows: 4, Cells: 10}, hook.ends[0].stats)
}

func TestDecodeQueryResponseErrors(t *testing.T) {
	d := NewDecoder()

	_, err := d.DecodeQueryResponse(context.Background(),
		queryResponse(t, &Ydb_Operations.Operation{Ready: true, Status: Ydb.StatusIds_OVERLOADED}))
	var opErr *OperationError
	assert.True(t, errors.As(err, &opErr))

	bad := wireResultSet(t, StructOf(field("n", Int64(1))))
	bad.Rows[0].Items[0] = textValue("x")
	_, err = d.DecodeQueryResponse(context.Background(),
		queryResponse(t, &Ydb_Operations.Operation{Ready: true, Status: Ydb.StatusIds_SUCCESS}, wireResultSet(t, sampleRows(t)...), bad))
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "result set 1: row 0")
}
