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

package kernels

import (
	"fmt"

	"github.com/Asrst/Daft/internal/debug"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// SearchSortedMulti returns the right-insertion index of every key row
// within a haystack sorted lexicographically by its columns. Column i of
// haystack is paired with column i of keys and sorted descending when
// reversed[i] is set.
func SearchSortedMulti(mem memory.Allocator, haystack, keys []arrow.Array, reversed []bool) (*array.Uint64, error) {
	cmp, nkeys, err := newMultiComparator(haystack, keys, reversed)
	if err != nil {
		return nil, err
	}

	out := NewIndexBuffer(mem, nkeys)
	searchSortedMulti(cmp, haystack[0].Len(), out.Values())
	return out.Finish(), nil
}

// newMultiComparator validates the columns of a composite search and
// returns the lexicographic comparator of haystack rows against key rows,
// together with the number of key rows.
func newMultiComparator(haystack, keys []arrow.Array, reversed []bool) (Comparator, int, error) {
	switch {
	case len(haystack) == 0 || len(keys) == 0:
		return nil, 0, ErrEmptyInput
	case len(haystack) != len(keys):
		return nil, 0, fmt.Errorf("%w: %d sorted columns vs %d key columns",
			ErrColumnCountMismatch, len(haystack), len(keys))
	case len(reversed) != len(haystack):
		return nil, 0, fmt.Errorf("%w: %d columns vs %d descending flags",
			ErrColumnCountMismatch, len(haystack), len(reversed))
	}

	if err := checkRowCounts("sorted", haystack); err != nil {
		return nil, 0, err
	}
	if err := checkRowCounts("key", keys); err != nil {
		return nil, 0, err
	}

	cmps := make([]Comparator, len(haystack))
	for i := range haystack {
		c, err := NewComparator(haystack[i], keys[i], reversed[i])
		if err != nil {
			return nil, 0, fmt.Errorf("column %d: %w", i, err)
		}
		cmps[i] = c
	}
	if len(cmps) == 1 {
		return cmps[0], keys[0].Len(), nil
	}

	return func(i, j int) int {
		for _, c := range cmps {
			if r := c(i, j); r != 0 {
				return r
			}
		}
		return 0
	}, keys[0].Len(), nil
}

func checkRowCounts(side string, cols []arrow.Array) error {
	n := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != n {
			return fmt.Errorf("%w: %s columns have %d vs %d rows", ErrRowCountMismatch, side, c.Len(), n)
		}
	}
	return nil
}

// searchSortedMulti runs a full-range binary search per key row; cmp
// compares a haystack row with a key row.
func searchSortedMulti(cmp Comparator, n int, out []uint64) {
	for k := range out {
		left, right := 0, n
		for left < right {
			mid := int(uint(left+right) >> 1)
			if debug.Enabled {
				debug.Assert(0 <= left && mid < right && right <= n, "search window out of bounds")
			}
			if cmp(mid, k) <= 0 {
				left = mid + 1
			} else {
				right = mid
			}
		}
		out[k] = uint64(left)
	}
}
