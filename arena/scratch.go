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
	"context"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/termedit/stdext/y"
)

// ScratchArena borrows an Arena for temporary allocations. Close resets the
// arena to the offset it had when the ScratchArena was created, freeing
// everything allocated through it.
//
// Borrows of the same arena must nest: once a newer ScratchArena over the
// same arena exists, the older one must not be used until the newer one is
// closed. Debug builds panic with ErrStaleBorrow when this is violated.
type ScratchArena struct {
	arena  *Arena
	offset int
	tag    borrowTag
}

func newScratchArena(a *Arena) *ScratchArena {
	s := &ScratchArena{arena: a, offset: a.Offset()}
	s.borrow()
	return s
}

// Close resets the borrowed arena. Calling Close more than once is a no-op.
func (s *ScratchArena) Close() {
	if s.arena == nil {
		return
	}
	s.target().Reset(s.offset)
	s.unborrow()
	s.arena = nil
}

// AllocRaw allocates from the borrowed arena.
func (s *ScratchArena) AllocRaw(size, align int) unsafe.Pointer {
	return s.target().AllocRaw(size, align)
}

// Offset returns the bump offset of the borrowed arena.
func (s *ScratchArena) Offset() int {
	return s.target().Offset()
}

// Reset resets the borrowed arena. to must not be below the offset the
// ScratchArena started at.
func (s *ScratchArena) Reset(to int) {
	s.target().Reset(to)
}

// Realloc implements alloc.Allocator on the borrowed arena.
func (s *ScratchArena) Realloc(old unsafe.Pointer, oldSize, newSize, align int) []byte {
	return s.target().Realloc(old, oldSize, newSize, align)
}

// Dealloc implements alloc.Allocator. It does nothing.
func (s *ScratchArena) Dealloc(ptr unsafe.Pointer, size, align int) {}

// Stats returns the counters of the borrowed arena.
func (s *ScratchArena) Stats() Stats {
	return s.target().Stats()
}

func (s *ScratchArena) underlying() *Arena {
	if s == nil {
		return nil
	}
	return s.arena
}

// ScratchSet is a pair of arenas handed out as ScratchArenas. The arenas are
// reserved on first use. A ScratchSet must only be used by one goroutine at a
// time and must not be copied after first use.
type ScratchSet struct {
	arenas   [2]Arena
	capacity int
}

// NewScratchSet returns a ScratchSet whose arenas reserve capacity bytes
// each. Zero uses Options.ScratchCapacity at the time of first use.
func NewScratchSet(capacity int) *ScratchSet {
	return &ScratchSet{capacity: capacity}
}

// Get borrows the arena of the set that does not back conflict. With a nil
// conflict the first arena is used.
//
// A function that takes a Region for its results must pass it here, so the
// temporary allocations it makes land in the other arena.
func (ss *ScratchSet) Get(conflict Region) *ScratchArena {
	var c *Arena
	if conflict != nil {
		c = conflict.underlying()
	}
	idx := 0
	if c == &ss.arenas[0] {
		idx = 1
	}
	a := &ss.arenas[idx]
	if a.IsEmpty() {
		ss.init()
	}
	return newScratchArena(a)
}

// init reserves both arenas. Failure to reserve is fatal.
//
//go:noinline
func (ss *ScratchSet) init() {
	opt := options()
	capacity := ss.capacity
	if capacity <= 0 {
		capacity = opt.ScratchCapacity
	}
	for i := range ss.arenas {
		a := &ss.arenas[i]
		if !a.IsEmpty() {
			continue
		}
		if err := a.reserve(capacity); err != nil {
			opt.Errorf("Unable to initialize scratch arenas: %v", err)
			panic(err)
		}
	}
	opt.Debugf("Scratch arenas reserved with %s each", humanize.IBytes(uint64(capacity)))
}

// Initialized reports whether the arenas of the set are reserved.
func (ss *ScratchSet) Initialized() bool {
	return !ss.arenas[0].IsEmpty() && !ss.arenas[1].IsEmpty()
}

// Release gives both arenas back to the OS. No ScratchArena of the set may
// be open.
func (ss *ScratchSet) Release() error {
	return y.CombineErrors(ss.arenas[0].Release(), ss.arenas[1].Release())
}

// Stats returns the counters of both arenas.
func (ss *ScratchSet) Stats() [2]Stats {
	return [2]Stats{ss.arenas[0].Stats(), ss.arenas[1].Stats()}
}

var global ScratchSet

// Scratch borrows an arena from the process-wide ScratchSet. See
// ScratchSet.Get. The process-wide set is not safe for use by more than one
// goroutine; concurrent code should give each goroutine its own ScratchSet.
func Scratch(conflict Region) *ScratchArena {
	return global.Get(conflict)
}

// ScratchStats returns the statistics of the process-wide scratch arenas.
func ScratchStats() [2]Stats {
	return global.Stats()
}

// ScratchInit sets the capacity the scratch arenas reserve and, if the
// process-wide set has not been used yet, reserves it right away so that a
// failure can be handled. A capacity of zero keeps the configured default.
func ScratchInit(capacity int) error {
	opt := CurrentOptions()
	if capacity > 0 {
		Configure(opt.WithScratchCapacity(capacity))
	}
	if global.Initialized() {
		if capacity > 0 {
			opt.Warningf("Scratch arenas already reserved; capacity %s applies to new sets only",
				humanize.IBytes(uint64(capacity)))
		}
		return nil
	}
	capacity = options().ScratchCapacity
	for i := range global.arenas {
		a := &global.arenas[i]
		if !a.IsEmpty() {
			continue
		}
		if err := a.reserve(capacity); err != nil {
			return y.Wrapf(err, "while initializing scratch arenas")
		}
	}
	opt.Infof("Scratch arenas reserved with %s each", humanize.IBytes(uint64(capacity)))
	return nil
}

type scratchKey struct{}

// WithScratch returns a context that carries ss.
func WithScratch(ctx context.Context, ss *ScratchSet) context.Context {
	return context.WithValue(ctx, scratchKey{}, ss)
}

// ScratchFromContext returns the ScratchSet attached with WithScratch, or nil.
func ScratchFromContext(ctx context.Context) *ScratchSet {
	ss, _ := ctx.Value(scratchKey{}).(*ScratchSet)
	return ss
}
