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
	"github.com/pkg/errors"
)

var (
	// ErrReserve is returned when the address space for an arena cannot be
	// reserved.
	ErrReserve = errors.New("Unable to reserve arena address space")

	// ErrOutOfMemory is the value (wrapped) that a panicking allocation
	// carries when the arena capacity is exhausted or a commit fails.
	ErrOutOfMemory = errors.New("Arena out of memory")

	// ErrStaleBorrow is the value (wrapped) that a debug build panics with
	// when a ScratchArena is used after a newer one borrowed its arena.
	ErrStaleBorrow = errors.New("Arena already borrowed by a newer ScratchArena")

	// ErrClosedScratch is the value a ScratchArena panics with when it is
	// used after Close.
	ErrClosedScratch = errors.New("ScratchArena used after Close")
)
