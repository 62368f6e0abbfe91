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

package collections

import (
	"math"
	"slices"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/y"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func newTestArena(t *testing.T) *arena.Arena {
	a, err := arena.NewArena(16 * y.MiB)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Release()) })
	return a
}

func vecOf[T any](a alloc.Allocator, elems ...T) BVec[T] {
	var v BVec[T]
	v.ExtendFromSlice(a, elems)
	return v
}

func TestZeroValue(t *testing.T) {
	var v BVec[int]
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())
	require.True(t, v.IsEmpty())
	require.True(t, v.IsFull())
	require.Empty(t, v.Slice())
	require.Empty(t, v.SpareCapacity())
	v.Clear()
	v.Truncate(3)
}

func TestPush(t *testing.T) {
	a := newTestArena(t)

	var v BVec[int]
	for i := 0; i < 100; i++ {
		p := v.Push(a, i)
		require.Equal(t, i, *p)
	}
	require.Equal(t, 100, v.Len())
	require.GreaterOrEqual(t, v.Cap(), 100)
	for i, e := range v.All() {
		require.Equal(t, i, e)
	}
	*v.At(5) = 500
	require.Equal(t, 500, v.Slice()[5])
	require.Panics(t, func() { v.At(100) })
	require.Panics(t, func() { v.At(-1) })
}

func TestGrowInPlace(t *testing.T) {
	a := newTestArena(t)

	var v BVec[uint64]
	v.Push(a, 1)
	require.Equal(t, minCapacity, v.Cap())
	base := unsafe.Pointer(&v.Slice()[0])
	off := a.Offset()

	for i := 1; i <= minCapacity; i++ {
		v.Push(a, uint64(i))
	}
	require.Equal(t, 2*minCapacity, v.Cap())
	require.Equal(t, base, unsafe.Pointer(&v.Slice()[0]))
	require.Equal(t, off+minCapacity*8, a.Offset())
}

func TestGrowRelocates(t *testing.T) {
	a := newTestArena(t)

	var v BVec[uint64]
	v.ExtendFromSlice(a, []uint64{1, 2, 3, 4, 5, 6, 7, 8})
	base := unsafe.Pointer(&v.Slice()[0])

	// Something else now sits at the end of the arena.
	arena.AllocSlice[byte](a, 1)

	v.Push(a, 9)
	require.NotEqual(t, base, unsafe.Pointer(&v.Slice()[0]))
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9}, v.Slice())
}

func TestReserve(t *testing.T) {
	a := newTestArena(t)

	var v BVec[int32]
	v.ReserveExact(a, 3)
	require.Equal(t, minCapacity, v.Cap())
	v.ReserveExact(a, 20)
	require.Equal(t, 20, v.Cap())
	v.Reserve(a, 5)
	require.Equal(t, 20, v.Cap())
	v.SetLen(20)
	v.Reserve(a, 1)
	require.Equal(t, 40, v.Cap())
	require.Len(t, v.SpareCapacity(), 20)
}

func TestSetLenOutOfRange(t *testing.T) {
	if !y.DebugAssertions {
		t.Skip("SetLen is only checked in debug builds")
	}
	var v BVec[int]
	require.Panics(t, func() { v.SetLen(1) })
}

func TestTruncate(t *testing.T) {
	a := newTestArena(t)

	v := vecOf(a, 1, 2, 3, 4, 5)
	v.Truncate(10)
	require.Equal(t, 5, v.Len())
	v.Truncate(2)
	require.Equal(t, []int{1, 2}, v.Slice())
	// The removed elements were zeroed.
	require.Equal(t, []int{0, 0, 0}, unsafe.Slice(v.At(0), 5)[2:])
	v.Clear()
	require.True(t, v.IsEmpty())
	require.Equal(t, minCapacity, v.Cap())
}

func TestExtend(t *testing.T) {
	a := newTestArena(t)

	var v BVec[int]
	v.Extend(a, 5, func(yield func(int) bool) {
		for i := 0; i < 5; i++ {
			if !yield(i * 10) {
				return
			}
		}
	})
	require.Equal(t, []int{0, 10, 20, 30, 40}, v.Slice())

	require.Panics(t, func() { v.Extend(a, 3, slices.Values([]int{1, 2})) })
	require.Equal(t, 5, v.Len())
	require.Panics(t, func() { v.Extend(a, 1, slices.Values([]int{1, 2})) })
	require.Equal(t, 5, v.Len())

	v.ExtendSloppy(a, slices.Values([]int{7, 8}))
	require.Equal(t, []int{0, 10, 20, 30, 40, 7, 8}, v.Slice())
}

func TestExtendFromWithin(t *testing.T) {
	a := newTestArena(t)

	v := vecOf(a, 1, 2, 3)
	v.ExtendFromWithin(a, 0, 2)
	require.Equal(t, []int{1, 2, 3, 1, 2}, v.Slice())
	v.ExtendFromWithin(a, 3, math.MaxInt)
	require.Equal(t, []int{1, 2, 3, 1, 2, 1, 2}, v.Slice())
	v.ExtendFromWithin(a, 5, 2)
	require.Equal(t, 7, v.Len())
}

func TestPushRepeat(t *testing.T) {
	a := newTestArena(t)

	var v BVec[byte]
	v.PushRepeat(a, 'x', 1000)
	require.Equal(t, 1000, v.Len())
	require.GreaterOrEqual(t, v.Cap(), 1000)
	for _, b := range v.Slice() {
		require.Equal(t, byte('x'), b)
	}
	v.PushRepeat(a, 'y', 0)
	require.Equal(t, 1000, v.Len())
}

func TestReplaceRange(t *testing.T) {
	a := newTestArena(t)

	for _, tc := range []struct {
		name     string
		beg, end int
		src      []int
		want     []int
	}{
		{"grow", 1, 3, []int{9, 9, 9, 9}, []int{1, 9, 9, 9, 9, 4, 5}},
		{"shrink", 1, 4, []int{9}, []int{1, 9, 5}},
		{"same", 0, 2, []int{7, 8}, []int{7, 8, 3, 4, 5}},
		{"insert", 2, 2, []int{0}, []int{1, 2, 0, 3, 4, 5}},
		{"delete", 0, 5, nil, []int{}},
		{"append", 5, 5, []int{6}, []int{1, 2, 3, 4, 5, 6}},
		{"clamped", 3, math.MaxInt, []int{0}, []int{1, 2, 3, 0}},
		{"past end", 10, 20, []int{6}, []int{1, 2, 3, 4, 5, 6}},
		{"noop", 2, 2, nil, []int{1, 2, 3, 4, 5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := vecOf(a, 1, 2, 3, 4, 5)
			v.ReplaceRange(a, tc.beg, tc.end, tc.src)
			require.Equal(t, tc.want, v.Slice())
		})
	}
}

func TestReplaceRangeReversed(t *testing.T) {
	if !y.DebugAssertions {
		t.Skip("reversed ranges are only checked in debug builds")
	}
	a := newTestArena(t)

	v := vecOf(a, 1, 2, 3, 4, 5)
	require.Panics(t, func() { v.ReplaceRange(a, 3, 1, []int{9}) })
	require.Equal(t, []int{1, 2, 3, 4, 5}, v.Slice())
}

func TestLeak(t *testing.T) {
	a := newTestArena(t)

	v := vecOf(a, 1, 2, 3)
	s := v.Leak()
	require.Equal(t, []int{1, 2, 3}, s)
	require.True(t, v.IsEmpty())
	require.Zero(t, v.Cap())
}

func TestFromSlice(t *testing.T) {
	a := newTestArena(t)

	src := arena.AllocCopy(a, []int16{1, 2, 3})
	v := FromSlice(src)
	require.Equal(t, 3, v.Cap())

	// src is the arena's last allocation, so growing extends it in place.
	v.Push(a, 4)
	require.Equal(t, unsafe.Pointer(&src[0]), unsafe.Pointer(&v.Slice()[0]))
	require.Equal(t, []int16{1, 2, 3, 4}, v.Slice())
}

func TestHeapRoundTrip(t *testing.T) {
	v := FromHeapSlice([]int{1, 2, 3})
	for i := 4; i <= 20; i++ {
		v.Push(alloc.Heap, i)
	}
	s := v.IntoHeapSlice()
	require.Len(t, s, 20)
	require.Equal(t, 20, s[19])
	require.True(t, v.IsEmpty())

	var w BVec[uint32]
	w.PushRepeat(alloc.Heap, 7, 10)
	require.Equal(t, []uint32{7, 7, 7, 7, 7, 7, 7, 7, 7, 7}, w.IntoHeapSlice())
}

func TestZeroSizedElements(t *testing.T) {
	a := newTestArena(t)

	var v BVec[struct{}]
	off := a.Offset()
	v.PushRepeat(a, struct{}{}, 1000)
	require.Equal(t, 1000, v.Len())
	require.Equal(t, off, a.Offset())
}

func TestSwitchingAllocatorsPanics(t *testing.T) {
	if !y.DebugAssertions {
		t.Skip("allocator tracking is only enabled in debug builds")
	}
	a := newTestArena(t)
	b := newTestArena(t)

	v := vecOf(a, 1, 2, 3, 4, 5, 6, 7, 8)
	require.Panics(t, func() { v.Push(b, 9) })
	require.Panics(t, func() { v.IntoHeapSlice() })
}

func TestScratchBuiltVec(t *testing.T) {
	ss := arena.NewScratchSet(y.MiB)
	defer func() { require.NoError(t, ss.Release()) }()

	out := newTestArena(t)
	var result BVec[int]
	func() {
		scratch := ss.Get(out)
		defer scratch.Close()

		var tmp BVec[int]
		for i := 0; i < 50; i++ {
			tmp.Push(scratch, i)
		}
		result.ExtendFromSlice(out, tmp.Slice()[40:])
	}()
	require.Equal(t, []int{40, 41, 42, 43, 44, 45, 46, 47, 48, 49}, result.Slice())
}
