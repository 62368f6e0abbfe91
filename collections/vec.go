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

// Package collections provides BVec and BString, a vector and a string whose
// storage lives in any alloc.Allocator, usually an arena.
//
// Neither type owns its allocator. Every method that may grow the buffer
// takes the allocator as its first argument and must always be given the same
// one for the lifetime of the container. The zero value of both types is an
// empty container without storage.
package collections

import (
	"iter"
	"math"
	"unsafe"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/y"
)

// minCapacity is the smallest capacity a BVec grows to.
const minCapacity = 8

// zeroSized backs every BVec of a zero-sized element type.
var zeroSized byte

// BVec is a growable array over borrowed memory. Like a Go slice it has a
// length and a capacity, but growing goes through an alloc.Allocator, which
// extends the buffer in place when it is the arena's most recent allocation.
//
// Only the first Len elements are initialized. BVec never frees its buffer;
// the memory goes away with the arena that owns it.
type BVec[T any] struct {
	ptr unsafe.Pointer
	len int
	cap int

	allocTracker
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func alignOf[T any]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}

// FromSlice wraps s. Length and capacity both become len(s); growing copies
// the elements into memory from the allocator unless s ends at the arena
// offset.
func FromSlice[T any](s []T) BVec[T] {
	return BVec[T]{ptr: unsafe.Pointer(unsafe.SliceData(s)), len: len(s), cap: len(s)}
}

// FromHeapSlice adopts a slice that lives on the heap. The BVec must from
// then on only grow with alloc.Heap. In builds using jemalloc, s must have
// come from alloc.Heap or IntoHeapSlice.
func FromHeapSlice[T any](s []T) BVec[T] {
	v := BVec[T]{ptr: unsafe.Pointer(unsafe.SliceData(s)), len: len(s), cap: cap(s)}
	v.setHeap()
	return v
}

// IntoHeapSlice returns the elements of a BVec that was grown with alloc.Heap
// (or built with FromHeapSlice) as a regular slice, leaving v empty.
func (v *BVec[T]) IntoHeapSlice() []T {
	v.assertHeap()
	s := unsafe.Slice((*T)(v.ptr), v.cap)[:v.len]
	*v = BVec[T]{}
	return s
}

// Len returns the number of initialized elements.
func (v *BVec[T]) Len() int { return v.len }

// Cap returns the number of elements the buffer can hold.
func (v *BVec[T]) Cap() int { return v.cap }

// IsEmpty reports whether v has no elements.
func (v *BVec[T]) IsEmpty() bool { return v.len == 0 }

// IsFull reports whether Len equals Cap.
func (v *BVec[T]) IsFull() bool { return v.len == v.cap }

// SetLen forces the length. The first n elements must be initialized.
func (v *BVec[T]) SetLen(n int) {
	y.DebugAssertf(n >= 0 && n <= v.cap, "SetLen(%d) out of range [0, %d]", n, v.cap)
	v.len = n
}

// Truncate shortens v to n elements, zeroing the ones removed so they do not
// keep stale values alive. It does nothing if n >= Len.
func (v *BVec[T]) Truncate(n int) {
	if n < 0 || n >= v.len {
		return
	}
	clear(v.Slice()[n:])
	v.len = n
}

// Clear removes all elements. The buffer is kept.
func (v *BVec[T]) Clear() {
	v.Truncate(0)
}

// Slice returns the initialized elements. The slice aliases v's buffer and is
// invalidated by anything that grows v.
func (v *BVec[T]) Slice() []T {
	return unsafe.Slice((*T)(v.ptr), v.len)
}

// At returns a pointer to element i.
func (v *BVec[T]) At(i int) *T {
	y.AssertTruef(i >= 0 && i < v.len, "index %d out of range [0, %d)", i, v.len)
	return v.elem(i)
}

// Leak returns the elements as a slice that lives as long as the allocator's
// memory and detaches them from v, which becomes empty.
func (v *BVec[T]) Leak() []T {
	s := v.Slice()
	*v = BVec[T]{}
	return s
}

// SpareCapacity returns the uninitialized tail of the buffer. Fill it and
// call SetLen.
func (v *BVec[T]) SpareCapacity() []T {
	return unsafe.Slice(v.elem(v.len), v.cap-v.len)
}

// All iterates over the elements in order.
func (v *BVec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.Slice() {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (v *BVec[T]) elem(i int) *T {
	return (*T)(unsafe.Add(v.ptr, uintptr(i)*unsafe.Sizeof(*(*T)(nil))))
}

// Reserve makes room for at least additional more elements, growing
// geometrically.
func (v *BVec[T]) Reserve(a alloc.Allocator, additional int) {
	if additional > v.cap-v.len {
		v.grow(a, v.cap, additional)
	}
}

// ReserveExact makes room for exactly additional more elements if the buffer
// is too small (subject to the minimum capacity).
func (v *BVec[T]) ReserveExact(a alloc.Allocator, additional int) {
	if additional > v.cap-v.len {
		v.grow(a, 0, additional)
	}
}

//go:noinline
func (v *BVec[T]) grow(a alloc.Allocator, base, add int) {
	y.DebugAssertf(add > 0, "growing by zero makes no sense")
	v.track(a)

	size := sizeOf[T]()
	if size == 0 {
		v.ptr = unsafe.Pointer(&zeroSized)
		v.cap = math.MaxInt
		return
	}
	y.AssertTruef(add <= math.MaxInt/size-v.len, "capacity overflow")

	newCap := max(base*2, v.len+add, minCapacity)
	if newCap > math.MaxInt/size {
		newCap = v.len + add
	}
	buf := a.Realloc(v.ptr, v.cap*size, newCap*size, alignOf[T]())
	v.ptr = unsafe.Pointer(unsafe.SliceData(buf))
	v.cap = len(buf) / size
}

// Push appends value and returns a pointer to the stored element.
func (v *BVec[T]) Push(a alloc.Allocator, value T) *T {
	if v.len == v.cap {
		v.grow(a, v.cap, 1)
	}
	p := v.elem(v.len)
	*p = value
	v.len++
	return p
}

// Extend appends the n elements yielded by seq after reserving room for all
// of them at once. seq must yield exactly n elements; more or fewer panics,
// and on panic Len is unchanged.
func (v *BVec[T]) Extend(a alloc.Allocator, n int, seq iter.Seq[T]) {
	v.Reserve(a, n)
	dst := v.SpareCapacity()[:n]
	i := 0
	for e := range seq {
		y.AssertTruef(i < n, "Extend: sequence yielded more than %d elements", n)
		dst[i] = e
		i++
	}
	y.AssertTruef(i == n, "Extend: sequence yielded %d elements, want %d", i, n)
	v.len += n
}

// ExtendSloppy appends everything seq yields, checking capacity per element.
// Prefer Extend when the length is known.
func (v *BVec[T]) ExtendSloppy(a alloc.Allocator, seq iter.Seq[T]) {
	for e := range seq {
		v.Push(a, e)
	}
}

// ExtendFromSlice appends a copy of src. src must not alias v's buffer.
func (v *BVec[T]) ExtendFromSlice(a alloc.Allocator, src []T) {
	v.Reserve(a, len(src))
	copy(v.SpareCapacity(), src)
	v.len += len(src)
}

// ExtendFromWithin appends a copy of elements [beg, end) of v itself. The
// range is clamped to Len.
func (v *BVec[T]) ExtendFromWithin(a alloc.Allocator, beg, end int) {
	end = min(end, v.len)
	beg = max(min(beg, end), 0)
	add := end - beg
	if add == 0 {
		return
	}
	v.Reserve(a, add)
	s := unsafe.Slice((*T)(v.ptr), v.len+add)
	copy(s[v.len:], s[beg:end])
	v.len += add
}

// PushRepeat appends n copies of value.
func (v *BVec[T]) PushRepeat(a alloc.Allocator, value T, n int) {
	if n <= 0 {
		return
	}
	v.Reserve(a, n)
	dst := v.SpareCapacity()[:n]
	v.len += n
	dst[0] = value
	for filled := 1; filled < n; filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}

// ReplaceRange replaces elements [beg, end) with a copy of src, growing or
// shrinking v as needed. The range is clamped to Len, so end may be
// math.MaxInt to replace everything from beg on. src must not alias v.
func (v *BVec[T]) ReplaceRange(a alloc.Allocator, beg, end int, src []T) {
	y.DebugAssertf(beg <= end, "range start %d is after end %d", beg, end)
	dstLen := v.len
	srcLen := len(src)
	off := max(min(beg, dstLen), 0)
	delLen := min(max(end-off, 0), dstLen-off)

	if delLen == 0 && srcLen == 0 {
		return
	}

	tailLen := dstLen - off - delLen
	newLen := dstLen - delLen + srcLen

	if srcLen > delLen {
		v.Reserve(a, srcLen-delLen)
	}

	// The buffer may have moved in Reserve.
	s := unsafe.Slice((*T)(v.ptr), max(dstLen, newLen))
	if tailLen > 0 && srcLen != delLen {
		copy(s[off+srcLen:], s[off+delLen:dstLen])
	}
	copy(s[off:], src)
	v.len = newLen
}
