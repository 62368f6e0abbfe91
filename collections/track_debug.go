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

//go:build !release

package collections

import (
	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/y"
)

// allocTracker remembers the allocator a container was grown with, so that
// switching allocators midway is caught in debug builds.
type allocTracker struct {
	alloc alloc.Allocator
}

func (t *allocTracker) track(a alloc.Allocator) {
	y.AssertTruef(t.alloc == nil || t.alloc == a,
		"switching between allocators on a single BVec heavily suggests you're about to leak memory")
	t.alloc = a
}

func (t *allocTracker) setHeap() {
	t.alloc = alloc.Heap
}

func (t *allocTracker) assertHeap() {
	y.AssertTruef(t.alloc == nil || t.alloc == alloc.Allocator(alloc.Heap),
		"BVec can only be turned into a heap slice if it was allocated with alloc.Heap")
}
