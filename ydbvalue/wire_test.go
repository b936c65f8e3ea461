// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func TestWriteArrowStreamBatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArrowStream(&buf, decodedUsers(t), WithBatchSize(2)))

	reader, err := ipc.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer reader.Release()

	var sizes []int64
	for reader.Next() {
		sizes = append(sizes, reader.RecordBatch().NumRows())
	}
	require.NoError(t, reader.Err())
	assert.Equal(t, []int64{2, 1}, sizes)
}

func TestArrowStreamRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []StreamOption
		zstd bool
	}{
		{"plain", nil, false},
		{"zstd", []StreamOption{WithZstd()}, true},
		{"zstd single-row batches", []StreamOption{WithZstd(), WithBatchSize(1)}, true},
		{"checked allocator", []StreamOption{WithAllocator(memory.NewCheckedAllocator(memory.NewGoAllocator()))}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := decodedUsers(t)
			var buf bytes.Buffer
			require.NoError(t, WriteArrowStream(&buf, rs, tt.opts...))
			assert.Equal(t, tt.zstd, bytes.HasPrefix(buf.Bytes(), zstdMagic))

			schema, rows, err := ReadArrowStream(&buf, tt.zstd)
			require.NoError(t, err)
			assert.Equal(t, int64(3), rows)
			assert.Equal(t, []string{"id", "name", "tags"}, []string{
				schema.Field(0).Name, schema.Field(1).Name, schema.Field(2).Name,
			})
			typeName, ok := schema.Field(2).Metadata.GetValue(MetaType)
			require.True(t, ok)
			assert.Equal(t, "List<Utf8>", typeName)
		})
	}
}

func TestWriteArrowStreamEmpty(t *testing.T) {
	rs := decodedUsers(t)
	rs.Rows = nil

	var buf bytes.Buffer
	require.NoError(t, WriteArrowStream(&buf, rs))

	schema, rows, err := ReadArrowStream(&buf, false)
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.Equal(t, 3, schema.NumFields())
}

func TestWriteArrowStreamBadRow(t *testing.T) {
	rs := decodedUsers(t)
	rs.Rows[1] = StructOf()

	var buf bytes.Buffer
	err := WriteArrowStream(&buf, rs, WithBatchSize(1))
	require.ErrorIs(t, err, ErrFieldCountMismatch)
	assert.Contains(t, err.Error(), "writing rows 1..2")
}

func TestReadArrowStreamGarbage(t *testing.T) {
	_, _, err := ReadArrowStream(bytes.NewReader([]byte("not arrow")), false)
	assert.Error(t, err)

	_, _, err = ReadArrowStream(bytes.NewReader([]byte("not zstd")), true)
	assert.Error(t, err)
}
