// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/slidesearch/core"
)

// TableMeta describes a stored table.
type TableMeta struct {
	Source      string
	Fingerprint core.ID
	Columns     []string
	Rows        int
}

// MarshalRow serializes a row's values in column order.
func MarshalRow(values []string) []byte {
	buf := make([]byte, sizeStrings(values))
	marshalStrings(values, buf)
	return buf
}

// UnmarshalRow deserializes a row produced by MarshalRow.
func UnmarshalRow(data []byte) ([]string, error) {
	values, _, err := unmarshalStrings(data)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// MarshalTableMeta serializes table metadata.
func MarshalTableMeta(meta *TableMeta) []byte {
	size := ord.String.Size(meta.Source) +
		varint.Uint64.Size(uint64(meta.Fingerprint)) +
		sizeStrings(meta.Columns) +
		varint.Int.Size(meta.Rows)
	buf := make([]byte, size)
	n := ord.String.Marshal(meta.Source, buf)
	n += varint.Uint64.Marshal(uint64(meta.Fingerprint), buf[n:])
	n += marshalStrings(meta.Columns, buf[n:])
	varint.Int.Marshal(meta.Rows, buf[n:])
	return buf
}

// UnmarshalTableMeta deserializes table metadata.
func UnmarshalTableMeta(data []byte) (*TableMeta, error) {
	source, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", ErrSerializationFailed, err)
	}
	fp, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint: %w", ErrSerializationFailed, err)
	}
	n += m
	columns, m, err := unmarshalStrings(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	rows, _, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrSerializationFailed, err)
	}
	return &TableMeta{
		Source:      source,
		Fingerprint: core.ID(fp),
		Columns:     columns,
		Rows:        rows,
	}, nil
}

func sizeStrings(ss []string) int {
	size := varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

func marshalStrings(ss []string, bs []byte) int {
	n := varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStrings(bs []byte) ([]string, int, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: length: %w", ErrSerializationFailed, err)
	}
	// Every string takes at least one byte for its length prefix.
	if count < 0 || count > len(bs)-n {
		return nil, 0, fmt.Errorf("%w: %d strings in %d bytes", ErrTruncatedData, count, len(bs)-n)
	}
	ss := make([]string, count)
	for i := range ss {
		s, m, err := ord.String.Unmarshal(bs[n:])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: string %d: %w", ErrSerializationFailed, i, err)
		}
		ss[i] = s
		n += m
	}
	return ss, n, nil
}
