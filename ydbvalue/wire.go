// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/klauspost/compress/zstd"
)

// DefaultBatchSize is the number of rows per record batch written by
// [WriteArrowStream].
const DefaultBatchSize = 1024

type streamConfig struct {
	zstd      bool
	batchSize int
	mem       memory.Allocator
}

// StreamOption configures [WriteArrowStream].
type StreamOption func(*streamConfig)

// WithZstd frames the IPC stream in a zstd stream.
func WithZstd() StreamOption {
	return func(c *streamConfig) {
		c.zstd = true
	}
}

// WithBatchSize sets the maximum number of rows per record batch.
// Non-positive values keep the default.
func WithBatchSize(n int) StreamOption {
	return func(c *streamConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithAllocator sets the Arrow allocator used to build record batches.
func WithAllocator(mem memory.Allocator) StreamOption {
	return func(c *streamConfig) {
		c.mem = mem
	}
}

// WriteArrowStream writes rs as one Arrow IPC stream: the schema followed
// by record batches of at most the configured batch size. A result set
// without rows produces a single zero-row batch.
func WriteArrowStream(w io.Writer, rs *ResultSet, opts ...StreamOption) (err error) {
	cfg := streamConfig{batchSize: DefaultBatchSize, mem: memory.NewGoAllocator()}
	for _, opt := range opts {
		opt(&cfg)
	}

	schema, err := ArrowSchema(rs)
	if err != nil {
		return err
	}

	out := w
	if cfg.zstd {
		enc, zerr := zstd.NewWriter(w)
		if zerr != nil {
			return fmt.Errorf("creating zstd writer: %w", zerr)
		}
		defer func() {
			if cerr := enc.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing zstd writer: %w", cerr)
			}
		}()
		out = enc
	}

	writer := ipc.NewWriter(out, ipc.WithSchema(schema), ipc.WithAllocator(cfg.mem))
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing IPC writer: %w", cerr)
		}
	}()

	start := 0
	for {
		end := min(start+cfg.batchSize, len(rs.Rows))
		if err := writeBatch(writer, cfg.mem, schema, rs.Rows[start:end]); err != nil {
			return fmt.Errorf("writing rows %d..%d: %w", start, end, err)
		}
		start = end
		if start >= len(rs.Rows) {
			return nil
		}
	}
}

func writeBatch(w *ipc.Writer, mem memory.Allocator, schema *arrow.Schema, rows []*Struct) error {
	batch, err := buildRecordBatch(mem, schema, rows)
	if err != nil {
		return err
	}
	defer batch.Release()
	return w.Write(batch)
}

// ReadArrowStream reads one Arrow IPC stream and returns its schema and
// total row count. Set compressed for streams written with [WithZstd].
func ReadArrowStream(r io.Reader, compressed bool) (*arrow.Schema, int64, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, 0, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading IPC stream: %w", err)
	}
	defer reader.Release()

	var rows int64
	for reader.Next() {
		rows += reader.RecordBatch().NumRows()
	}
	if err := reader.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading IPC batch: %w", err)
	}
	return reader.Schema(), rows, nil
}
