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
	"fmt"
	"sync"

	"github.com/Asrst/Daft/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/compute"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/arrow/scalar"
)

var (
	searchSortedDoc = compute.FunctionDoc{
		Summary: "Find the right-insertion index of each key in a sorted array",
		Description: `For every key, return the number of haystack values ordered before or
equal to it. Nulls are greater than any value and NaN is greater than any
other floating point value. With reversed set the haystack is sorted
descending and nulls lead it. The haystack may be an array or a chunked
array; keys may be an array, a chunked array or a scalar.`,
		ArgNames:    []string{"haystack", "keys"},
		OptionsType: "SearchSortedOptions",
	}
	searchSortedMultiDoc = compute.FunctionDoc{
		Summary: "Find right-insertion indices of composite keys in a sorted record batch",
		Description: `The haystack record batch is sorted lexicographically by its columns,
each ascending or, when its reversed flag is set, descending. Key columns
are matched with haystack columns by position.`,
		ArgNames:    []string{"haystack", "keys"},
		OptionsType: "SearchSortedMultiOptions",
	}

	registerOnce sync.Once
)

// Register adds search_sorted and search_sorted_multi to reg.
func Register(reg compute.FunctionRegistry) {
	reg.AddFunction(compute.NewMetaFunction("search_sorted", compute.Binary(),
		searchSortedDoc, execSearchSorted), false)
	reg.AddFunction(compute.NewMetaFunction("search_sorted_multi", compute.Binary(),
		searchSortedMultiDoc, execSearchSortedMulti), false)
}

// RegisterDefault registers the functions with the default compute
// registry. It is safe to call more than once.
func RegisterDefault() {
	registerOnce.Do(func() { Register(compute.GetFunctionRegistry()) })
}

func execSearchSorted(ctx context.Context, opts compute.FunctionOptions, args ...compute.Datum) (compute.Datum, error) {
	var reversed bool
	switch o := opts.(type) {
	case nil:
	case *Options:
		reversed = o.Reversed
	default:
		return nil, fmt.Errorf("%w: search_sorted options must be SearchSortedOptions, got %s",
			arrow.ErrInvalid, opts.TypeName())
	}

	mem := compute.GetAllocator(ctx)
	haystack, err := datumToArray(mem, args[0])
	if err != nil {
		return nil, err
	}
	defer haystack.Release()

	p, err := kernels.Prepare(haystack, reversed)
	if err != nil {
		return nil, err
	}

	switch keys := args[1].(type) {
	case *compute.ArrayDatum:
		arr := keys.MakeArray()
		defer arr.Release()
		out, err := p.Search(mem, arr)
		if err != nil {
			return nil, err
		}
		defer out.Release()
		return compute.NewDatum(out), nil
	case *compute.ChunkedDatum:
		return searchChunks(mem, p, keys.Value)
	case *compute.ScalarDatum:
		arr, err := scalar.MakeArrayFromScalar(keys.Value, 1, mem)
		if err != nil {
			return nil, err
		}
		defer arr.Release()
		out, err := p.Search(mem, arr)
		if err != nil {
			return nil, err
		}
		defer out.Release()
		return compute.NewDatum(scalar.NewUint64Scalar(out.Value(0))), nil
	default:
		return nil, fmt.Errorf("%w: search_sorted keys of kind %s", arrow.ErrNotImplemented, args[1].Kind())
	}
}

// searchChunks searches every key chunk separately, yielding a chunked
// result with the same chunk lengths.
func searchChunks(mem memory.Allocator, p *kernels.Prepared, keys *arrow.Chunked) (compute.Datum, error) {
	results := make([]arrow.Array, 0, len(keys.Chunks()))
	defer func() {
		for _, r := range results {
			r.Release()
		}
	}()

	for _, chunk := range keys.Chunks() {
		out, err := p.Search(mem, chunk)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}

	chunked := arrow.NewChunked(arrow.PrimitiveTypes.Uint64, results)
	defer chunked.Release()
	return compute.NewDatum(chunked), nil
}

// datumToArray returns a new reference to the values of an array or
// chunked datum.
func datumToArray(mem memory.Allocator, d compute.Datum) (arrow.Array, error) {
	switch v := d.(type) {
	case *compute.ArrayDatum:
		return v.MakeArray(), nil
	case *compute.ChunkedDatum:
		return Flatten(mem, v.Value)
	default:
		return nil, fmt.Errorf("%w: search_sorted haystack of kind %s", arrow.ErrNotImplemented, d.Kind())
	}
}

// Flatten returns the values of a chunked array as one array, which the
// caller must release. A single chunk is shared rather than copied.
func Flatten(mem memory.Allocator, chunked *arrow.Chunked) (arrow.Array, error) {
	chunks := chunked.Chunks()
	switch len(chunks) {
	case 0:
		bldr := array.NewBuilder(mem, chunked.DataType())
		defer bldr.Release()
		return bldr.NewArray(), nil
	case 1:
		chunks[0].Retain()
		return chunks[0], nil
	default:
		return array.Concatenate(chunks, mem)
	}
}

func execSearchSortedMulti(ctx context.Context, opts compute.FunctionOptions, args ...compute.Datum) (compute.Datum, error) {
	haystack, ok := args[0].(*compute.RecordDatum)
	if !ok {
		return nil, fmt.Errorf("%w: search_sorted_multi haystack must be a record batch, got %s",
			arrow.ErrNotImplemented, args[0].Kind())
	}
	keys, ok := args[1].(*compute.RecordDatum)
	if !ok {
		return nil, fmt.Errorf("%w: search_sorted_multi keys must be a record batch, got %s",
			arrow.ErrNotImplemented, args[1].Kind())
	}

	var reversed []bool
	switch o := opts.(type) {
	case nil:
	case *MultiOptions:
		reversed = o.Reversed
	default:
		return nil, fmt.Errorf("%w: search_sorted_multi options must be SearchSortedMultiOptions, got %s",
			arrow.ErrInvalid, opts.TypeName())
	}

	out, err := SearchSortedRecord(ctx, haystack.Value, keys.Value, reversed)
	if err != nil {
		return nil, err
	}
	defer out.Release()
	return compute.NewDatum(out), nil
}
