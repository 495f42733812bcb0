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

package searchsorted

import (
	"context"

	"github.com/Asrst/Daft/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/compute"
)

// SearchSorted returns the right-insertion index of every row of keys in
// haystack. The result is allocated from the allocator carried by ctx.
func SearchSorted(ctx context.Context, haystack, keys arrow.Array, opts Options) (*array.Uint64, error) {
	return kernels.SearchSorted(compute.GetAllocator(ctx), haystack, keys, opts.Reversed)
}

// SearchSortedMulti is the composite search: haystack[i] pairs with keys[i]
// and is sorted descending when reversed[i] is set.
func SearchSortedMulti(ctx context.Context, haystack, keys []arrow.Array, reversed []bool) (*array.Uint64, error) {
	return kernels.SearchSortedMulti(compute.GetAllocator(ctx), haystack, keys, reversed)
}

// SearchSortedRecord runs a composite search with the columns of two record
// batches, matched by position. A nil reversed means all ascending.
func SearchSortedRecord(ctx context.Context, haystack, keys arrow.Record, reversed []bool) (*array.Uint64, error) {
	if reversed == nil {
		reversed = make([]bool, haystack.NumCols())
	}
	return SearchSortedMulti(ctx, haystack.Columns(), keys.Columns(), reversed)
}

// SearchSortedDatum calls the registered search_sorted function, accepting
// chunked haystacks and array, chunked or scalar keys.
func SearchSortedDatum(ctx context.Context, opts Options, haystack, keys compute.Datum) (compute.Datum, error) {
	RegisterDefault()
	return compute.CallFunction(ctx, "search_sorted", &opts, haystack, keys)
}
