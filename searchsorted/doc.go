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

// Package searchsorted exposes the search_sorted kernels to Arrow
// compute users: context-scoped calls that allocate from
// compute.GetAllocator, record batches as composite keys, a parallel
// runner for large key columns, and meta functions for the compute
// function registry.
//
// A minimal call looks like:
//
//	ctx := compute.WithAllocator(context.Background(), mem)
//	idx, err := searchsorted.SearchSorted(ctx, haystack, keys, searchsorted.Options{})
//	if err != nil {
//		return err
//	}
//	defer idx.Release()
package searchsorted
