/*
 * Copyright 2025 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestHeapRealloc(t *testing.T) {
	buf := Heap.Realloc(nil, 0, 16, 8)
	require.Len(t, buf, 16)
	for i := range buf {
		buf[i] = byte(i)
	}

	grown := Heap.Realloc(unsafe.Pointer(&buf[0]), 16, 64, 8)
	require.Len(t, grown, 64)
	for i := 0; i < 16; i++ {
		require.Equal(t, byte(i), grown[i])
	}

	shrunk := Heap.Realloc(unsafe.Pointer(&grown[0]), 64, 4, 8)
	require.Equal(t, []byte{0, 1, 2, 3}, shrunk)

	require.Nil(t, Heap.Realloc(unsafe.Pointer(&shrunk[0]), 4, 0, 8))
}

func TestHeapDeallocNil(t *testing.T) {
	require.NotPanics(t, func() { Heap.Dealloc(nil, 0, 1) })
}

func TestHeapAlignment(t *testing.T) {
	require.Panics(t, func() { Heap.Realloc(nil, 0, 32, 64) })
}
