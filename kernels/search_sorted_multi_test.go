// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernels_test

import (
	"math"
	"testing"

	"github.com/Asrst/Daft/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type multiCase struct {
	name     string
	types    []arrow.DataType
	haystack []string
	keys     []string
	reversed []bool
	want     []uint64
}

func TestSearchSortedMulti(t *testing.T) {
	i64, str := arrow.PrimitiveTypes.Int64, arrow.BinaryTypes.String
	tests := []multiCase{
		{"two ints", []arrow.DataType{i64, i64},
			[]string{`[1, 1, 2]`, `[10, 20, 10]`},
			[]string{`[1]`, `[15]`},
			[]bool{false, false}, []uint64{1}},
		{"exact and outer keys", []arrow.DataType{i64, i64},
			[]string{`[1, 1, 2]`, `[10, 20, 10]`},
			[]string{`[1, 1, 0, 2, 3]`, `[20, 10, 99, 9, 0]`},
			[]bool{false, false}, []uint64{2, 1, 0, 2, 3}},
		{"second column descending", []arrow.DataType{i64, i64},
			[]string{`[1, 1, 1, 2]`, `[30, 20, 10, 5]`},
			[]string{`[1, 1, 1, 2]`, `[25, 10, 40, 6]`},
			[]bool{false, true}, []uint64{1, 3, 0, 3}},
		{"mixed kinds with nulls", []arrow.DataType{str, i64},
			[]string{`["a", "a", "b", null]`, `[1, null, 0, 0]`},
			[]string{`["a", "a", null, "b"]`, `[null, 5, 1, -1]`},
			[]bool{false, false}, []uint64{2, 1, 4, 2}},
		{"first column descending with nulls", []arrow.DataType{i64, str},
			[]string{`[null, 3, 3, 1]`, `["x", "a", "b", "a"]`},
			[]string{`[3, null, 2]`, `["a", "y", "z"]`},
			[]bool{true, false}, []uint64{2, 1, 3}},
		{"empty haystack", []arrow.DataType{i64, str},
			[]string{`[]`, `[]`},
			[]string{`[1, 2]`, `["a", "b"]`},
			[]bool{false, true}, []uint64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			haystack := make([]arrow.Array, len(tt.haystack))
			keys := make([]arrow.Array, len(tt.keys))
			for i := range tt.types {
				haystack[i] = fromJSON(t, mem, tt.types[i], tt.haystack[i])
				defer haystack[i].Release()
				keys[i] = fromJSON(t, mem, tt.types[i], tt.keys[i])
				defer keys[i].Release()
			}

			result, err := kernels.SearchSortedMulti(mem, haystack, keys, tt.reversed)
			require.NoError(t, err)
			defer result.Release()

			assert.Zero(t, result.NullN())
			assert.Equal(t, tt.want, result.Uint64Values())
		})
	}
}

func TestSearchSortedMultiNaN(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	nan := math.NaN()
	h0 := float64Array(mem, []float64{1, nan, nan}, nil)
	defer h0.Release()
	h1 := fromJSON(t, mem, arrow.PrimitiveTypes.Int8, `[0, 1, 2]`)
	defer h1.Release()
	k0 := float64Array(mem, []float64{nan, nan, 1}, nil)
	defer k0.Release()
	k1 := fromJSON(t, mem, arrow.PrimitiveTypes.Int8, `[1, 5, -1]`)
	defer k1.Release()

	result, err := kernels.SearchSortedMulti(mem, []arrow.Array{h0, h1}, []arrow.Array{k0, k1}, []bool{false, false})
	require.NoError(t, err)
	defer result.Release()
	assert.Equal(t, []uint64{2, 3, 0}, result.Uint64Values())
}

func TestSearchSortedMultiErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a3 := fromJSON(t, mem, arrow.PrimitiveTypes.Int64, `[1, 2, 3]`)
	defer a3.Release()
	b3 := fromJSON(t, mem, arrow.PrimitiveTypes.Int64, `[1, 2, 3]`)
	defer b3.Release()
	a2 := fromJSON(t, mem, arrow.PrimitiveTypes.Int64, `[1, 2]`)
	defer a2.Release()
	s3 := fromJSON(t, mem, arrow.BinaryTypes.String, `["a", "b", "c"]`)
	defer s3.Release()
	m3 := fromJSON(t, mem, arrow.MapOf(arrow.BinaryTypes.String, arrow.PrimitiveTypes.Int8),
		`[[], [], []]`)
	defer m3.Release()

	cols := func(arrs ...arrow.Array) []arrow.Array { return arrs }

	tests := []struct {
		name     string
		haystack []arrow.Array
		keys     []arrow.Array
		reversed []bool
		err      error
		msg      string
	}{
		{"no columns", nil, nil, nil, kernels.ErrEmptyInput, ""},
		{"no key columns", cols(a3), nil, []bool{false}, kernels.ErrEmptyInput, ""},
		{"column count", cols(a3, b3), cols(a3), []bool{false, false}, kernels.ErrColumnCountMismatch, "2 sorted columns vs 1 key columns"},
		{"flag count", cols(a3, b3), cols(a3, b3), []bool{false}, kernels.ErrColumnCountMismatch, "2 columns vs 1 descending flags"},
		{"haystack rows", cols(a3, a2), cols(a3, b3), []bool{false, false}, kernels.ErrRowCountMismatch, "2 vs 3 rows"},
		{"key rows", cols(a3, b3), cols(a2, b3), []bool{false, false}, kernels.ErrRowCountMismatch, "3 vs 2 rows"},
		{"types", cols(a3, b3), cols(a3, s3), []bool{false, false}, kernels.ErrTypeMismatch, "column 1"},
		{"unsupported", cols(m3), cols(m3), []bool{false}, kernels.ErrUnsupportedKind, "column 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := kernels.SearchSortedMulti(mem, tt.haystack, tt.keys, tt.reversed)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.err)
			if tt.err != kernels.ErrTypeMismatch && tt.err != kernels.ErrUnsupportedKind {
				assert.ErrorIs(t, err, arrow.ErrInvalid)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}
