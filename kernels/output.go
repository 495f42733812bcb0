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
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// IndexBuffer is a preallocated uint64 result column. Its values are
// written in place and then handed over as an *array.Uint64 by Finish.
type IndexBuffer struct {
	buf    *memory.Buffer
	values []uint64
}

func NewIndexBuffer(mem memory.Allocator, n int) *IndexBuffer {
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(arrow.Uint64Traits.BytesRequired(n))
	return &IndexBuffer{buf: buf, values: arrow.Uint64Traits.CastFromBytes(buf.Bytes())}
}

// Values is the writable backing slice, one slot per key row.
func (b *IndexBuffer) Values() []uint64 { return b.values }

func (b *IndexBuffer) Len() int { return len(b.values) }

// Finish transfers the buffer into a uint64 array without a validity
// bitmap. The IndexBuffer must not be used afterwards.
func (b *IndexBuffer) Finish() *array.Uint64 {
	data := array.NewData(arrow.PrimitiveTypes.Uint64, len(b.values), []*memory.Buffer{nil, b.buf}, nil, 0, 0)
	defer data.Release()
	b.Release()
	return array.NewUint64Data(data)
}

// Release frees the buffer if it was not finished.
func (b *IndexBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf, b.values = nil, nil
	}
}
