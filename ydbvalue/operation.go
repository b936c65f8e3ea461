// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Issue"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Operations"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb_Table"
	"google.golang.org/protobuf/proto"
)

// OperationResponse is satisfied by every generated response message that
// wraps its payload in an operation envelope.
type OperationResponse interface {
	GetOperation() *Ydb_Operations.Operation
}

// ErrOperationNotReady is returned for an operation that has not completed.
var ErrOperationNotReady = errors.New("operation is not ready")

// OperationError reports an operation that completed with a non-success
// status.
type OperationError struct {
	ID     string
	Status Ydb.StatusIds_StatusCode
	Issues []*Ydb_Issue.IssueMessage
}

func (e *OperationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "operation %q failed with status %s", e.ID, e.Status)
	if len(e.Issues) > 0 {
		sb.WriteString(": ")
		writeIssues(&sb, e.Issues)
	}
	return sb.String()
}

func writeIssues(sb *strings.Builder, issues []*Ydb_Issue.IssueMessage) {
	for i, issue := range issues {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(sb, "#%d %s", issue.GetIssueCode(), issue.GetMessage())
		if nested := issue.GetIssues(); len(nested) > 0 {
			sb.WriteString(" (")
			writeIssues(sb, nested)
			sb.WriteByte(')')
		}
	}
}

// OperationResult checks the operation envelope of resp and unpacks its
// result into result.
func OperationResult(resp OperationResponse, result proto.Message) error {
	if resp == nil {
		return errors.New("missing response")
	}
	op := resp.GetOperation()
	if op == nil {
		return errors.New("response carries no operation")
	}
	if !op.Ready {
		return fmt.Errorf("operation %q: %w", op.Id, ErrOperationNotReady)
	}
	if op.Status != Ydb.StatusIds_SUCCESS {
		return &OperationError{ID: op.Id, Status: op.Status, Issues: op.Issues}
	}
	if op.Result == nil {
		return fmt.Errorf("operation %q carries no result", op.Id)
	}
	if err := op.Result.UnmarshalTo(result); err != nil {
		return fmt.Errorf("unpacking result of operation %q: %w", op.Id, err)
	}
	return nil
}

// DecodeQueryResponse unpacks a data query response and decodes each of
// its result sets.
func (d *Decoder) DecodeQueryResponse(ctx context.Context, resp OperationResponse) ([]*ResultSet, error) {
	ctx, call := d.startHook(ctx, DecodeInfo{Operation: DecodeOpQueryResponse})
	stats := &DecodeStatistics{}
	out, err := decodeQueryResponse(ctx, resp, stats)
	call.end(ctx, stats, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeQueryResponse(ctx context.Context, resp OperationResponse, stats *DecodeStatistics) ([]*ResultSet, error) {
	var result Ydb_Table.ExecuteQueryResult
	if err := OperationResult(resp, &result); err != nil {
		return nil, err
	}
	out := make([]*ResultSet, len(result.ResultSets))
	for i, rs := range result.ResultSets {
		decoded, err := decodeResultSet(ctx, rs, stats)
		if err != nil {
			return nil, fmt.Errorf("result set %d: %w", i, err)
		}
		out[i] = decoded
	}
	return out, nil
}
