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

package kernels_test

import (
	"testing"

	"github.com/Asrst/Daft/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	supported := []arrow.DataType{
		arrow.PrimitiveTypes.Int8, arrow.PrimitiveTypes.Int16, arrow.PrimitiveTypes.Int32, arrow.PrimitiveTypes.Int64,
		arrow.PrimitiveTypes.Uint8, arrow.PrimitiveTypes.Uint16, arrow.PrimitiveTypes.Uint32, arrow.PrimitiveTypes.Uint64,
		arrow.FixedWidthTypes.Float16, arrow.PrimitiveTypes.Float32, arrow.PrimitiveTypes.Float64,
		arrow.BinaryTypes.String, arrow.BinaryTypes.LargeString,
		arrow.BinaryTypes.Binary, arrow.BinaryTypes.LargeBinary,
		arrow.FixedWidthTypes.Boolean,
		arrow.FixedWidthTypes.Date32, arrow.FixedWidthTypes.Date64,
		arrow.FixedWidthTypes.Time32s, arrow.FixedWidthTypes.Time64ns,
		arrow.FixedWidthTypes.Timestamp_ns, arrow.FixedWidthTypes.Duration_s,
		&arrow.Decimal128Type{Precision: 10, Scale: 2},
		&arrow.Decimal256Type{Precision: 40, Scale: 2},
	}
	for _, dt := range supported {
		assert.Truef(t, kernels.Supported(dt), "%s", dt)
	}

	unsupported := []arrow.DataType{
		arrow.Null,
		arrow.ListOf(arrow.PrimitiveTypes.Int64),
		arrow.StructOf(arrow.Field{Name: "f", Type: arrow.PrimitiveTypes.Int64}),
		&arrow.FixedSizeBinaryType{ByteWidth: 4},
		&arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String},
	}
	for _, dt := range unsupported {
		assert.Falsef(t, kernels.Supported(dt), "%s", dt)
	}
}

func TestIndexBuffer(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := kernels.NewIndexBuffer(mem, 4)
	assert.Equal(t, 4, buf.Len())
	copy(buf.Values(), []uint64{3, 1, 4, 1})
	arr := buf.Finish()
	assert.Equal(t, []uint64{3, 1, 4, 1}, arr.Uint64Values())
	assert.Zero(t, arr.NullN())
	buf.Release()
	arr.Release()

	unused := kernels.NewIndexBuffer(mem, 128)
	unused.Release()
	unused.Release()

	empty := kernels.NewIndexBuffer(mem, 0)
	earr := empty.Finish()
	assert.Equal(t, 0, earr.Len())
	earr.Release()
}
