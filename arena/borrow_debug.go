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

package arena

import (
	"github.com/pkg/errors"

	"github.com/termedit/stdext/y"
)

// borrowCounter counts the live ScratchArena borrows of an arena.
type borrowCounter struct {
	n int
}

// borrowTag is the value of the arena's borrowCounter right after this
// ScratchArena incremented it.
type borrowTag struct {
	id int
}

func (s *ScratchArena) borrow() {
	s.arena.borrows.n++
	s.tag.id = s.arena.borrows.n
}

// target returns the borrowed arena after checking that no newer
// ScratchArena has borrowed it since.
func (s *ScratchArena) target() *Arena {
	if s.arena == nil {
		panic(ErrClosedScratch)
	}
	if s.tag.id != s.arena.borrows.n {
		panic(errors.Wrapf(ErrStaleBorrow, "borrow %d, newest %d", s.tag.id, s.arena.borrows.n))
	}
	return s.arena
}

func (s *ScratchArena) unborrow() {
	y.AssertTruef(s.tag.id == s.arena.borrows.n,
		"ScratchArena closed out of order: borrow %d, newest %d", s.tag.id, s.arena.borrows.n)
	s.arena.borrows.n--
}
