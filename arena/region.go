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

package arena

import (
	"math"
	"unsafe"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/y"
)

// Region is the capability set shared by an Arena and a ScratchArena that
// borrows one: allocate a raw range, resize it, query the bump offset and
// reset to an earlier one. Containers in package collections take a Region
// or any other alloc.Allocator.
type Region interface {
	alloc.Allocator

	AllocRaw(size, align int) unsafe.Pointer
	Offset() int
	Reset(to int)

	// underlying returns the arena that backs the region without any borrow
	// validation. It is used to pick the non-conflicting scratch arena.
	underlying() *Arena
}

var (
	_ Region = (*Arena)(nil)
	_ Region = (*ScratchArena)(nil)
)

// Alloc returns an uninitialized T in r.
func Alloc[T any](r Region) *T {
	var zero T
	return (*T)(r.AllocRaw(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))))
}

// AllocValue stores v in r and returns its address.
func AllocValue[T any](r Region, v T) *T {
	p := Alloc[T](r)
	*p = v
	return p
}

// AllocSlice returns n uninitialized elements of T in r.
func AllocSlice[T any](r Region, n int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	y.AssertTruef(n >= 0 && (size == 0 || n <= math.MaxInt/size),
		"invalid slice length %d for element size %d", n, size)
	ptr := r.AllocRaw(size*n, int(unsafe.Alignof(zero)))
	return unsafe.Slice((*T)(ptr), n)
}

// AllocFilled returns n copies of v in r.
func AllocFilled[T any](r Region, n int, v T) []T {
	s := AllocSlice[T](r, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// AllocCopy copies src into r.
func AllocCopy[T any](r Region, src []T) []T {
	s := AllocSlice[T](r, len(src))
	copy(s, src)
	return s
}

// AllocString copies s into r. The result is valid until r is reset below
// the current offset.
func AllocString(r Region, s string) string {
	if len(s) == 0 {
		return ""
	}
	b := AllocSlice[byte](r, len(s))
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b))
}
