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

// Package kernels implements search_sorted, a binary-search kernel that
// finds the right-insertion index of each key within a pre-sorted Arrow
// column, or within a tuple of columns compared lexicographically.
//
// Order
//
// Every supported kind is ordered with two extra rules so that the order is
// total: NaN is greater than any other floating point value and equal to
// itself, and null is greater than any present value. The reversed flag
// declares that a haystack is sorted descending; the null rule is applied
// after reversing, so nulls lead a descending haystack and trail an
// ascending one.
//
// Results
//
// The result holds, for every key row, the number of haystack rows ordered
// before or equal to the key. It is a uint64 array with no nulls and the
// same length as the keys. The haystack is trusted to be sorted; on an
// unsorted haystack the indices are in range but meaningless.
package kernels
