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

// Package alloc defines the Allocator capability shared by arenas and the
// process heap, so that containers can grow without knowing what backs them.
package alloc

import (
	"unsafe"

	"github.com/dgraph-io/ristretto/z"

	"github.com/termedit/stdext/y"
)

// Allocator resizes raw byte ranges.
//
// Both methods require that ptr (or old) came from this same allocator. old
// may be nil when oldSize is zero. The contents of [0, min(oldSize, newSize))
// are preserved across Realloc. Memory handed out by an Allocator is not
// scanned by the garbage collector: it must not hold pointers into the Go
// heap.
type Allocator interface {
	Realloc(old unsafe.Pointer, oldSize, newSize, align int) []byte
	Dealloc(ptr unsafe.Pointer, size, align int)
}

// HeapAllocator allocates from the process heap through ristretto's
// Calloc, which uses jemalloc when built with the jemalloc tag and Go
// memory otherwise.
type HeapAllocator struct {
	tag string
}

// Heap is the process-wide HeapAllocator.
var Heap = &HeapAllocator{tag: "stdext.Heap"}

// Realloc moves the allocation into a fresh buffer of newSize bytes.
func (h *HeapAllocator) Realloc(old unsafe.Pointer, oldSize, newSize, align int) []byte {
	y.AssertTruef(align <= 8, "heap allocations are at most 8-byte aligned, got %d", align)
	if newSize == 0 {
		h.Dealloc(old, oldSize, align)
		return nil
	}
	buf := z.Calloc(newSize, h.tag)
	if oldSize > 0 {
		copy(buf, unsafe.Slice((*byte)(old), oldSize))
		h.Dealloc(old, oldSize, align)
	}
	return buf
}

// Dealloc returns the buffer to ristretto.
func (h *HeapAllocator) Dealloc(ptr unsafe.Pointer, size, align int) {
	if ptr == nil || size == 0 {
		return
	}
	z.Free(unsafe.Slice((*byte)(ptr), size))
}

// NumAllocBytes returns the number of bytes the heap allocator currently has
// outstanding. It is only tracked in jemalloc builds.
func NumAllocBytes() int64 {
	return z.NumAllocBytes()
}
