// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"context"

	"github.com/rs/zerolog"
)

// Operation string constants for DecodeInfo.Operation.
const (
	DecodeOpResultSet     = "result_set"
	DecodeOpQueryResponse = "query_response"
)

// DecodeHook provides observability callpoints around result decoding.
// Implementations must be safe for concurrent use.
type DecodeHook interface {
	OnDecodeStart(ctx context.Context, info DecodeInfo) (context.Context, HookToken)
	OnDecodeEnd(ctx context.Context, token HookToken, info DecodeInfo, stats *DecodeStatistics, err error)
}

// HookToken is an opaque value returned by OnDecodeStart and passed back to
// OnDecodeEnd. Only meaningful to the DecodeHook that created it.
type HookToken interface{}

// DecodeInfo describes the payload being decoded.
type DecodeInfo struct {
	Operation string   // DecodeOpResultSet or DecodeOpQueryResponse
	Columns   []string // Column names, empty for a query response
	Truncated bool     // Server reported a truncated result set
}

// DecodeStatistics holds per-call counters.
type DecodeStatistics struct {
	ResultSets int64
	Columns    int64
	Rows       int64
	Cells      int64
}

// RecordRow records one decoded row with the given cell count.
func (s *DecodeStatistics) RecordRow(cells int64) {
	s.Rows++
	s.Cells += cells
}

// RecordResultSet records one decoded result set header.
func (s *DecodeStatistics) RecordResultSet(columns int64) {
	s.ResultSets++
	s.Columns += columns
}

// hookCall brackets a decode with the installed hook. Hook panics are
// logged and swallowed.
type hookCall struct {
	hook   DecodeHook
	log    zerolog.Logger
	info   DecodeInfo
	token  HookToken
	active bool
}

func (d *Decoder) startHook(ctx context.Context, info DecodeInfo) (context.Context, *hookCall) {
	call := &hookCall{hook: d.hook, log: d.log, info: info}
	if d.hook == nil {
		return ctx, call
	}
	func() {
		defer func() {
			if rv := recover(); rv != nil {
				call.log.Error().Interface("panic", rv).Str("operation", info.Operation).Msg("decode hook start panic")
			}
		}()
		hookCtx, token := d.hook.OnDecodeStart(ctx, info)
		if hookCtx != nil {
			ctx = hookCtx
		}
		call.token = token
		call.active = true
	}()
	return ctx, call
}

func (c *hookCall) end(ctx context.Context, stats *DecodeStatistics, err error) {
	if !c.active {
		return
	}
	defer func() {
		if rv := recover(); rv != nil {
			c.log.Error().Interface("panic", rv).Str("operation", c.info.Operation).Msg("decode hook end panic")
		}
	}()
	c.hook.OnDecodeEnd(ctx, c.token, c.info, stats, err)
}
