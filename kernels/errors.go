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

	"github.com/apache/arrow/go/v17/arrow"
)

var (
	// ErrEmptyInput is returned when a composite search is given no columns.
	ErrEmptyInput = fmt.Errorf("%w: no columns to search", arrow.ErrInvalid)
	// ErrColumnCountMismatch is returned when the haystack, keys and
	// direction vectors of a composite search disagree on their length.
	ErrColumnCountMismatch = fmt.Errorf("%w: mismatch in number of columns", arrow.ErrInvalid)
	// ErrRowCountMismatch is returned when columns of one side of a search
	// disagree on their length.
	ErrRowCountMismatch = fmt.Errorf("%w: mismatch in number of rows", arrow.ErrInvalid)
	// ErrTypeMismatch is returned when a haystack column and its keys column
	// have different data types.
	ErrTypeMismatch = fmt.Errorf("%w: sorted array data type does not match keys data type", arrow.ErrType)
	// ErrUnsupportedKind is returned for data types without a search kernel.
	ErrUnsupportedKind = fmt.Errorf("%w: search_sorted", arrow.ErrNotImplemented)
)
