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
	"fmt"
	"math"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/termedit/stdext/sys"
	"github.com/termedit/stdext/y"
)

// ChunkSize is the granularity in which arenas commit memory: 64 KiB on
// 64-bit targets and 32 KiB on 32-bit ones.
const ChunkSize = (32 << (^uintptr(0) >> 63)) * y.KiB

const (
	// poisonAlloc fills freshly allocated memory in debug builds.
	poisonAlloc = 0xCD
	// poisonReset fills memory reclaimed by Reset in debug builds.
	poisonReset = 0xDD
	// poisonSlack is how far past the touched range the poison extends.
	poisonSlack = 128
)

// Arena is a bump allocator over a reserved virtual memory range.
//
// Think of it as a very large stack: allocating pushes onto the end, Reset
// pops everything above a previously observed offset. The zero value is an
// empty arena without backing memory; allocating from it panics.
type Arena struct {
	mem      []byte
	base     unsafe.Pointer
	capacity int
	commit   int
	offset   int

	borrows borrowCounter
}

// NewArena reserves capacity bytes, rounded up to ChunkSize. Nothing is
// committed until the first allocation.
func NewArena(capacity int) (*Arena, error) {
	a := &Arena{}
	if err := a.reserve(capacity); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) reserve(capacity int) error {
	y.AssertTrue(a.IsEmpty())
	if capacity < 1 {
		capacity = 1
	}
	if capacity > math.MaxInt-ChunkSize {
		return errors.Wrapf(ErrReserve, "capacity %d overflows", capacity)
	}
	capacity = y.AlignUp(capacity, ChunkSize)

	mem, err := sys.Reserve(capacity)
	if err != nil {
		return errors.Wrapf(ErrReserve, "%s: %v", humanize.IBytes(uint64(capacity)), err)
	}
	y.NumReservedAdd(options().MetricsEnabled, int64(capacity))

	a.mem = mem
	a.base = unsafe.Pointer(unsafe.SliceData(mem))
	a.capacity = capacity
	a.commit = 0
	a.offset = 0
	return nil
}

// Release gives the reservation back to the OS and leaves an empty arena.
// Every allocation made from the arena becomes invalid.
func (a *Arena) Release() error {
	if a.IsEmpty() {
		return nil
	}
	capacity := a.capacity
	err := sys.Release(a.mem)
	*a = Arena{}
	if err != nil {
		options().Warningf("Unable to release arena of %s: %v", humanize.IBytes(uint64(capacity)), err)
		return err
	}
	y.NumReleasedAdd(options().MetricsEnabled, int64(capacity))
	return nil
}

// IsEmpty reports whether the arena has no backing memory.
func (a *Arena) IsEmpty() bool {
	return a.base == nil
}

// Offset returns the bump offset. Pass it to Reset to free everything
// allocated after this call.
func (a *Arena) Offset() int {
	return a.offset
}

// Capacity returns the reserved size in bytes.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Committed returns the number of bytes backed by physical memory.
func (a *Arena) Committed() int {
	return a.commit
}

// Reset moves the offset to to, reclaiming everything allocated after it.
//
// Reset does not check that to is an offset this arena handed out before;
// moving the offset anywhere else corrupts live allocations. In debug builds
// the reclaimed bytes are overwritten with 0xDD.
func (a *Arena) Reset(to int) {
	if y.DebugAssertions && a.offset > to {
		a.poison(to, min(a.offset+poisonSlack, a.commit), poisonReset)
	}
	a.offset = to
}

// AllocRaw returns size bytes aligned to align, which must be a power of
// two. The memory is uninitialized. If the arena capacity is exhausted or the
// OS refuses to commit more memory, AllocRaw panics with ErrOutOfMemory.
func (a *Arena) AllocRaw(size, align int) unsafe.Pointer {
	if y.DebugAssertions && !y.IsPowerOfTwo(align) {
		panic(errors.Errorf("alignment %d is not a power of two", align))
	}
	beg := (a.offset + align - 1) &^ (align - 1)
	end := beg + size

	if end > a.commit || end < beg {
		return a.allocBump(beg, end)
	}

	if y.DebugAssertions {
		a.poison(a.offset, min(end+poisonSlack, a.commit), poisonAlloc)
	}

	a.offset = end
	return unsafe.Add(a.base, beg)
}

// allocBump is the slow path of AllocRaw. Keeping it separate keeps AllocRaw
// small enough to inline.
//
//go:noinline
func (a *Arena) allocBump(beg, end int) unsafe.Pointer {
	if end < beg {
		a.outOfMemory(errors.Errorf("allocation size overflows at offset %d", beg))
	}
	commitOld := a.commit
	commitNew := y.AlignUp(end, ChunkSize)
	if commitNew > a.capacity || commitNew < end {
		a.outOfMemory(errors.Errorf("need %s, capacity is %s",
			humanize.IBytes(uint64(end)), humanize.IBytes(uint64(a.capacity))))
	}
	if err := sys.Commit(a.mem[commitOld:commitNew]); err != nil {
		a.outOfMemory(err)
	}
	y.NumCommitsAdd(options().MetricsEnabled, int64(commitNew-commitOld))
	a.commit = commitNew

	if y.DebugAssertions {
		a.poison(a.offset, min(end+poisonSlack, a.commit), poisonAlloc)
	}

	a.offset = end
	return unsafe.Add(a.base, beg)
}

func (a *Arena) outOfMemory(cause error) {
	opt := options()
	opt.Errorf("Arena out of memory: %v", cause)
	y.NumOutOfMemoryAdd(opt.MetricsEnabled)
	panic(errors.Wrapf(ErrOutOfMemory, "%v", cause))
}

func (a *Arena) poison(from, to int, val byte) {
	if to <= from {
		return
	}
	b := unsafe.Slice((*byte)(unsafe.Add(a.base, from)), to-from)
	for i := range b {
		b[i] = val
	}
}

// Realloc implements alloc.Allocator.
//
// If old ends exactly at the bump offset it is the most recent allocation and
// is resized in place by moving the offset; the returned slice then starts at
// old. Otherwise growing copies oldSize bytes into a new allocation. Only the
// most recent allocation can shrink; shrinking any other is an assertion
// failure in debug builds and returns old unchanged in release builds.
func (a *Arena) Realloc(old unsafe.Pointer, oldSize, newSize, align int) []byte {
	if unsafe.Add(old, oldSize) == unsafe.Add(a.base, a.offset) {
		if newSize > oldSize {
			a.AllocRaw(newSize-oldSize, 1)
		} else {
			a.offset -= oldSize - newSize
		}
		return unsafe.Slice((*byte)(old), newSize)
	}
	if newSize > oldSize {
		ptr := a.AllocRaw(newSize, align)
		dst := unsafe.Slice((*byte)(ptr), newSize)
		if oldSize > 0 {
			copy(dst, unsafe.Slice((*byte)(old), oldSize))
		}
		return dst
	}
	y.DebugAssertf(false, "only the last allocation can be shrunk")
	return unsafe.Slice((*byte)(old), oldSize)
}

// Dealloc implements alloc.Allocator. Individual frees are meaningless in a
// bump allocator, so it does nothing.
func (a *Arena) Dealloc(ptr unsafe.Pointer, size, align int) {}

func (a *Arena) underlying() *Arena {
	return a
}

// Stats is a snapshot of an arena's counters.
type Stats struct {
	Capacity  int // reserved bytes
	Committed int // bytes backed by physical memory
	Offset    int // bytes in use, including alignment padding
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats {
	return Stats{Capacity: a.capacity, Committed: a.commit, Offset: a.offset}
}

// Utilization is the ratio of used to committed bytes.
func (s Stats) Utilization() float64 {
	if s.Committed == 0 {
		return 0
	}
	return float64(s.Offset) / float64(s.Committed)
}

func (s Stats) String() string {
	return fmt.Sprintf("used: %s committed: %s reserved: %s (%.1f%%)",
		humanize.IBytes(uint64(s.Offset)), humanize.IBytes(uint64(s.Committed)),
		humanize.IBytes(uint64(s.Capacity)), s.Utilization()*100)
}
