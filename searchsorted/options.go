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

// Options configures the search_sorted function.
type Options struct {
	// Reversed declares the haystack to be sorted descending.
	Reversed bool `compute:"reversed"`
}

func (*Options) TypeName() string { return "SearchSortedOptions" }

// MultiOptions configures the search_sorted_multi function. Reversed holds
// one flag per column; nil means every column is ascending.
type MultiOptions struct {
	Reversed []bool `compute:"reversed"`
}

func (*MultiOptions) TypeName() string { return "SearchSortedMultiOptions" }

func DefaultOptions() *Options { return &Options{} }
