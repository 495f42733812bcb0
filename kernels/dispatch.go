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
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/decimal256"
	"github.com/apache/arrow/go/v17/arrow/float16"
)

// kernel is a search implementation bound to one element kind. Arrays passed
// to its methods must have the data type it was selected for.
type kernel interface {
	search(haystack, keys arrow.Array, reversed bool, out []uint64)
	comparator(left, right arrow.Array, reversed bool) Comparator
}

type typedKernel[T any, A valueArray[T]] struct {
	less func(T, T) bool
}

func (k typedKernel[T, A]) search(haystack, keys arrow.Array, reversed bool, out []uint64) {
	searchSorted[T](haystack.(A), keys.(A), reversed, k.less, out)
}

func (k typedKernel[T, A]) comparator(left, right arrow.Array, reversed bool) Comparator {
	return newComparator[T](left.(A), right.(A), reversed, k.less)
}

// kernelFor selects the kernel for a data type. This is the single list of
// supported kinds; adding a kind means adding a case here.
func kernelFor(dt arrow.DataType) (kernel, error) {
	switch dt.ID() {
	case arrow.INT8:
		return typedKernel[int8, *array.Int8]{lessOrdered[int8]}, nil
	case arrow.INT16:
		return typedKernel[int16, *array.Int16]{lessOrdered[int16]}, nil
	case arrow.INT32:
		return typedKernel[int32, *array.Int32]{lessOrdered[int32]}, nil
	case arrow.INT64:
		return typedKernel[int64, *array.Int64]{lessOrdered[int64]}, nil
	case arrow.UINT8:
		return typedKernel[uint8, *array.Uint8]{lessOrdered[uint8]}, nil
	case arrow.UINT16:
		return typedKernel[uint16, *array.Uint16]{lessOrdered[uint16]}, nil
	case arrow.UINT32:
		return typedKernel[uint32, *array.Uint32]{lessOrdered[uint32]}, nil
	case arrow.UINT64:
		return typedKernel[uint64, *array.Uint64]{lessOrdered[uint64]}, nil
	case arrow.DECIMAL128:
		return typedKernel[decimal128.Num, *array.Decimal128]{lessDecimal128}, nil
	case arrow.DECIMAL256:
		return typedKernel[decimal256.Num, *array.Decimal256]{lessDecimal256}, nil
	case arrow.FLOAT16:
		return typedKernel[float16.Num, *array.Float16]{lessFloat16}, nil
	case arrow.FLOAT32:
		return typedKernel[float32, *array.Float32]{lessFloat[float32]}, nil
	case arrow.FLOAT64:
		return typedKernel[float64, *array.Float64]{lessFloat[float64]}, nil
	case arrow.STRING:
		return typedKernel[string, *array.String]{lessOrdered[string]}, nil
	case arrow.LARGE_STRING:
		return typedKernel[string, *array.LargeString]{lessOrdered[string]}, nil
	case arrow.BINARY:
		return typedKernel[[]byte, *array.Binary]{lessBytes}, nil
	case arrow.LARGE_BINARY:
		return typedKernel[[]byte, *array.LargeBinary]{lessBytes}, nil
	case arrow.BOOL:
		return typedKernel[bool, *array.Boolean]{lessBool}, nil
	case arrow.DATE32:
		return typedKernel[arrow.Date32, *array.Date32]{lessOrdered[arrow.Date32]}, nil
	case arrow.DATE64:
		return typedKernel[arrow.Date64, *array.Date64]{lessOrdered[arrow.Date64]}, nil
	case arrow.TIME32:
		return typedKernel[arrow.Time32, *array.Time32]{lessOrdered[arrow.Time32]}, nil
	case arrow.TIME64:
		return typedKernel[arrow.Time64, *array.Time64]{lessOrdered[arrow.Time64]}, nil
	case arrow.TIMESTAMP:
		return typedKernel[arrow.Timestamp, *array.Timestamp]{lessOrdered[arrow.Timestamp]}, nil
	case arrow.DURATION:
		return typedKernel[arrow.Duration, *array.Duration]{lessOrdered[arrow.Duration]}, nil
	default:
		return nil, fmt.Errorf("%w: not implemented for type %s", ErrUnsupportedKind, dt)
	}
}

// kernelForPair checks that left and right share a data type and selects
// the kernel for it.
func kernelForPair(left, right arrow.Array) (kernel, error) {
	if !arrow.TypeEqual(left.DataType(), right.DataType()) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, left.DataType(), right.DataType())
	}
	impl, err := kernelFor(left.DataType())
	if err != nil {
		return nil, err
	}
	if debug.Logging {
		debug.Log(func() string {
			return fmt.Sprintf("dispatch %s kernel: %d vs %d rows", left.DataType(), left.Len(), right.Len())
		})
	}
	return impl, nil
}

// Supported reports whether search_sorted has a kernel for dt.
func Supported(dt arrow.DataType) bool {
	_, err := kernelFor(dt)
	return err == nil
}
