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

/*
Package arena implements bump allocators over reserved virtual memory and the
scratch arena protocol built on top of them.

An Arena reserves its whole capacity up front and commits it in ChunkSize
steps as the bump offset advances. Memory is only ever reclaimed in bulk, by
resetting the offset to an earlier value. Nothing stored in an arena is
finalized, and since arena memory lives outside the Go heap the garbage
collector never scans it: values placed in an arena must not point into the
Go heap. Pointers from one arena allocation to another are fine.

Scratch arenas are temporary borrows that restore the offset on Close:

	scratch := arena.Scratch(nil)
	defer scratch.Close()

	tmp := arena.AllocSlice[int](scratch, 64)

A function that receives a Region for the values it returns must ask for its
own scratch arena by passing that Region as the conflict:

	func build(out arena.Region) []int {
		scratch := arena.Scratch(out)
		defer scratch.Close()
		...
	}

Each ScratchSet holds two arenas and always hands out the one that is not the
conflict, so interior and exterior allocations alternate between the two
arenas down an arbitrarily deep call chain.

In default builds every use of a ScratchArena checks that no newer borrow of
the same arena exists, and reclaimed memory is overwritten with 0xDD (fresh
allocations with 0xCD). Building with the release tag removes these checks.

An Arena is not safe for concurrent use. The package-level Scratch function
uses a single process-wide ScratchSet and is meant for programs that allocate
scratch memory from one goroutine; other goroutines should own a ScratchSet
each, optionally carried in a context with WithScratch.
*/
package arena
