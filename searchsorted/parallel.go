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
	"runtime"

	"github.com/Asrst/Daft/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/compute"
	"golang.org/x/sync/errgroup"
)

const defaultBatchSize = 64 * 1024

type parallelConfig struct {
	workers   int
	batchSize int
}

// ParallelOption configures SearchSortedParallel.
type ParallelOption func(*parallelConfig)

// WithWorkers bounds the number of batches searched at once. The default
// is runtime.GOMAXPROCS(0).
func WithWorkers(n int) ParallelOption {
	return func(c *parallelConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBatchSize sets the number of key rows per batch.
func WithBatchSize(n int) ParallelOption {
	return func(c *parallelConfig) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// SearchSortedParallel is SearchSorted with the keys cut into batches that
// are searched concurrently. Every batch writes its own region of one
// result buffer, so the output is identical to the serial search. If ctx is
// cancelled the search stops and ctx.Err() is returned.
func SearchSortedParallel(ctx context.Context, haystack, keys arrow.Array, opts Options, popts ...ParallelOption) (*array.Uint64, error) {
	cfg := parallelConfig{workers: runtime.GOMAXPROCS(0), batchSize: defaultBatchSize}
	for _, o := range popts {
		o(&cfg)
	}

	p, err := kernels.Prepare(haystack, opts.Reversed)
	if err != nil {
		return nil, err
	}
	if err := p.Check(keys); err != nil {
		return nil, err
	}

	out := kernels.NewIndexBuffer(compute.GetAllocator(ctx), keys.Len())
	values := out.Values()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for lo := 0; lo < keys.Len() && gctx.Err() == nil; lo += cfg.batchSize {
		lo, hi := lo, min(lo+cfg.batchSize, keys.Len())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batch := array.NewSlice(keys, int64(lo), int64(hi))
			defer batch.Release()
			return p.SearchInto(batch, values[lo:hi])
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		out.Release()
		return nil, err
	}
	return out.Finish(), nil
}
