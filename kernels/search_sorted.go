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

// SearchSorted returns, for every row of keys, the right-insertion index of
// that key within haystack, which must be sorted ascending, or descending
// when reversed is set. The result is allocated from mem and owned by the
// caller.
func SearchSorted(mem memory.Allocator, haystack, keys arrow.Array, reversed bool) (*array.Uint64, error) {
	p, err := Prepare(haystack, reversed)
	if err != nil {
		return nil, err
	}
	return p.Search(mem, keys)
}

// Prepared is a sorted haystack bound to the kernel for its data type. It
// can be probed with any number of key arrays and is safe for concurrent
// use. It borrows the haystack, which must stay alive while it is in use.
type Prepared struct {
	haystack arrow.Array
	reversed bool
	impl     kernel
}

// Prepare selects the search kernel for haystack.
func Prepare(haystack arrow.Array, reversed bool) (*Prepared, error) {
	impl, err := kernelFor(haystack.DataType())
	if err != nil {
		return nil, err
	}
	return &Prepared{haystack: haystack, reversed: reversed, impl: impl}, nil
}

func (p *Prepared) Len() int       { return p.haystack.Len() }
func (p *Prepared) Reversed() bool { return p.reversed }

// Check reports whether keys can be searched in the prepared haystack.
func (p *Prepared) Check(keys arrow.Array) error {
	if !arrow.TypeEqual(p.haystack.DataType(), keys.DataType()) {
		return fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, p.haystack.DataType(), keys.DataType())
	}
	return nil
}

// Search allocates a result from mem and fills it with the right-insertion
// index of every row of keys.
func (p *Prepared) Search(mem memory.Allocator, keys arrow.Array) (*array.Uint64, error) {
	if err := p.Check(keys); err != nil {
		return nil, err
	}
	out := NewIndexBuffer(mem, keys.Len())
	p.impl.search(p.haystack, keys, p.reversed, out.Values())
	return out.Finish(), nil
}

// SearchInto writes the right-insertion index of every row of keys into
// out, which must have exactly keys.Len() elements.
func (p *Prepared) SearchInto(keys arrow.Array, out []uint64) error {
	if err := p.Check(keys); err != nil {
		return err
	}
	if len(out) != keys.Len() {
		return fmt.Errorf("%w: output has %d slots for %d keys", ErrRowCountMismatch, len(out), keys.Len())
	}
	p.impl.search(p.haystack, keys, p.reversed, out)
	return nil
}

// searchSorted is the single-column search. Consecutive keys usually arrive
// in order, so the window left over from the previous key is reused: when
// the key grew, the answer cannot lie before the previous answer, otherwise
// it cannot lie after it.
func searchSorted[T any, A valueArray[T]](haystack, keys A, reversed bool, less func(T, T) bool, out []uint64) {
	var (
		n        = haystack.Len()
		keyOrder = newComparator[T](keys, keys, reversed, less)
		probe    = newComparator[T](keys, haystack, reversed, less)
		left     = 0
		right    = n
	)

	for k := range out {
		last := k - 1
		if k == 0 {
			last = 0
		}
		if keyOrder(last, k) < 0 {
			right = n
		} else {
			left = 0
			if right < n {
				right++
			}
		}

		for left < right {
			mid := int(uint(left+right) >> 1)
			if debug.Enabled {
				debug.Assert(0 <= left && mid < right && right <= n, "search window out of bounds")
			}
			if probe(k, mid) < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		out[k] = uint64(left)
	}
}
