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
	"bytes"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/bitutil"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/decimal256"
	"github.com/apache/arrow/go/v17/arrow/float16"
	"golang.org/x/exp/constraints"
)

// Comparator compares row i of a left column with row j of a right column
// and returns -1, 0 or +1. A Comparator borrows both columns and must not
// outlive them.
type Comparator func(i, j int) int

// NewComparator builds the total order used by search_sorted between the
// rows of left and right. Both arrays must have the same data type. With
// reversed set the natural order of present values is inverted, and nulls
// order before present values instead of after them.
func NewComparator(left, right arrow.Array, reversed bool) (Comparator, error) {
	impl, err := kernelForPair(left, right)
	if err != nil {
		return nil, err
	}
	return impl.comparator(left, right, reversed), nil
}

// valueArray is implemented by the typed arrow arrays that expose their
// logical values, such as *array.Int64 or *array.String.
type valueArray[T any] interface {
	arrow.Array
	Value(int) T
}

// validity is a borrowed view of a validity bitmap. A nil bitmap means
// every row is present.
type validity struct {
	bits   []byte
	offset int
}

func validityOf(arr arrow.Array) validity {
	if arr.NullN() == 0 {
		return validity{}
	}
	return validity{bits: arr.NullBitmapBytes(), offset: arr.Data().Offset()}
}

func (v validity) isValid(i int) bool {
	return v.bits == nil || bitutil.BitIsSet(v.bits, v.offset+i)
}

func newComparator[T any, A valueArray[T]](left, right A, reversed bool, less func(T, T) bool) Comparator {
	lv, rv := validityOf(left), validityOf(right)
	if reversed {
		return func(i, j int) int {
			switch lok, rok := lv.isValid(i), rv.isValid(j); {
			case lok && rok:
				return -order(less, left.Value(i), right.Value(j))
			case rok:
				return -1
			case lok:
				return 1
			default:
				return 0
			}
		}
	}
	return func(i, j int) int {
		switch lok, rok := lv.isValid(i), rv.isValid(j); {
		case lok && rok:
			return order(less, left.Value(i), right.Value(j))
		case lok:
			return -1
		case rok:
			return 1
		default:
			return 0
		}
	}
}

func order[T any](less func(T, T) bool, l, r T) int {
	switch {
	case less(l, r):
		return -1
	case less(r, l):
		return 1
	default:
		return 0
	}
}

func lessOrdered[T constraints.Integer | ~string](l, r T) bool { return l < r }

// lessFloat orders NaN after every other value and equal to itself.
func lessFloat[T constraints.Float](l, r T) bool {
	return l < r || (r != r && l == l)
}

func lessFloat16(l, r float16.Num) bool { return lessFloat(l.Float32(), r.Float32()) }

func lessBool(l, r bool) bool { return !l && r }

func lessBytes(l, r []byte) bool { return bytes.Compare(l, r) < 0 }

func lessDecimal128(l, r decimal128.Num) bool {
	if l.HighBits() != r.HighBits() {
		return l.HighBits() < r.HighBits()
	}
	return l.LowBits() < r.LowBits()
}

func lessDecimal256(l, r decimal256.Num) bool {
	la, ra := l.Array(), r.Array()
	if la[3] != ra[3] {
		return int64(la[3]) < int64(ra[3])
	}
	for i := 2; i >= 0; i-- {
		if la[i] != ra[i] {
			return la[i] < ra[i]
		}
	}
	return false
}
