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
	"iter"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/y"
)

// ErrInvalidUTF8 is returned when bytes that must be UTF-8 are not.
var ErrInvalidUTF8 = errors.New("Invalid UTF-8")

const replacement = "\uFFFD"

// BString is a string builder over borrowed memory, built on BVec[byte]. It
// holds valid UTF-8 at all times: every method that appends either takes
// runes and strings or validates its input.
type BString struct {
	vec BVec[byte]
}

// FromUTF8 wraps vec after validating it. The error wraps ErrInvalidUTF8
// and names the length of the valid prefix.
func FromUTF8(vec BVec[byte]) (BString, error) {
	b := vec.Slice()
	if n := validPrefix(b); n != len(b) {
		return BString{}, errors.Wrapf(ErrInvalidUTF8, "invalid byte at offset %d", n)
	}
	return BString{vec: vec}, nil
}

// FromUTF8Lossy wraps vec, replacing each maximal invalid sequence with
// U+FFFD. If vec is valid UTF-8 it is returned as is, without allocating or
// copying. Otherwise the result is built in a new buffer from a.
func FromUTF8Lossy(a alloc.Allocator, vec BVec[byte]) BString {
	b := vec.Slice()
	if utf8.Valid(b) {
		return BString{vec: vec}
	}
	var res BString
	res.Reserve(a, len(b))
	res.appendLossy(a, b)
	return res
}

// FromUTF8Unchecked wraps vec without validation. vec must be valid UTF-8.
func FromUTF8Unchecked(vec BVec[byte]) BString {
	return BString{vec: vec}
}

// FromString copies s into memory from a.
func FromString(a alloc.Allocator, s string) BString {
	var res BString
	res.PushStr(a, s)
	return res
}

// FromHeapString copies s into a BString grown with alloc.Heap. Go strings
// are immutable, so unlike FromHeapSlice this cannot adopt s in place.
func FromHeapString(s string) BString {
	return FromString(alloc.Heap, s)
}

// FromUTF16Lossy decodes UTF-16, replacing unpaired surrogates with U+FFFD.
func FromUTF16Lossy(a alloc.Allocator, s []uint16) BString {
	var res BString
	res.PushUTF16Lossy(a, s)
	return res
}

// IntoHeapString returns the contents of a BString grown with alloc.Heap as
// a Go string without copying, leaving s empty.
func (s *BString) IntoHeapString() string {
	b := s.vec.IntoHeapSlice()
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Len returns the length in bytes.
func (s *BString) Len() int { return s.vec.Len() }

// Cap returns the byte capacity.
func (s *BString) Cap() int { return s.vec.Cap() }

// IsEmpty reports whether s has no bytes.
func (s *BString) IsEmpty() bool { return s.vec.IsEmpty() }

// IsFull reports whether Len equals Cap.
func (s *BString) IsFull() bool { return s.vec.IsFull() }

// Bytes returns the UTF-8 bytes. They must not be modified.
func (s *BString) Bytes() []byte { return s.vec.Slice() }

// String returns the contents without copying. The result aliases the buffer
// and is only valid until s grows or its memory is reclaimed; use Leak or
// strings.Clone to keep it.
func (s *BString) String() string {
	b := s.vec.Slice()
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Leak returns the contents as a string that lives as long as the
// allocator's memory, leaving s empty.
func (s *BString) Leak() string {
	b := s.vec.Leak()
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// UnsafeVec exposes the underlying BVec. Writing bytes that are not valid
// UTF-8 through it breaks BString.
func (s *BString) UnsafeVec() *BVec[byte] {
	return &s.vec
}

// Reserve makes room for at least additional more bytes.
func (s *BString) Reserve(a alloc.Allocator, additional int) {
	s.vec.Reserve(a, additional)
}

// ReserveExact makes room for additional more bytes without over-allocating.
func (s *BString) ReserveExact(a alloc.Allocator, additional int) {
	s.vec.ReserveExact(a, additional)
}

// Clear empties s. The buffer is kept.
func (s *BString) Clear() {
	s.vec.Clear()
}

// Push appends r encoded as UTF-8. Invalid runes are written as U+FFFD.
func (s *BString) Push(a alloc.Allocator, r rune) {
	if r >= 0 && r < utf8.RuneSelf {
		s.vec.Push(a, byte(r))
		return
	}
	s.vec.Reserve(a, utf8.UTFMax)
	n := utf8.EncodeRune(s.vec.SpareCapacity(), r)
	s.vec.len += n
}

// PushStr appends str.
func (s *BString) PushStr(a alloc.Allocator, str string) {
	s.vec.Reserve(a, len(str))
	copy(s.vec.SpareCapacity(), str)
	s.vec.len += len(str)
}

// PushUTF16Lossy appends UTF-16 text, replacing unpaired surrogates with
// U+FFFD.
func (s *BString) PushUTF16Lossy(a alloc.Allocator, str []uint16) {
	s.Reserve(a, len(str))
	for i := 0; i < len(str); i++ {
		r := rune(str[i])
		if utf16.IsSurrogate(r) {
			if i+1 < len(str) {
				if dec := utf16.DecodeRune(r, rune(str[i+1])); dec != utf8.RuneError {
					s.Push(a, dec)
					i++
					continue
				}
			}
			r = utf8.RuneError
		}
		s.Push(a, r)
	}
}

// PushRepeat appends n copies of r. ASCII is a plain fill; other runes are
// encoded once and then the written suffix is doubled until it is long
// enough, so the work is proportional to the bytes written.
func (s *BString) PushRepeat(a alloc.Allocator, r rune, n int) {
	if n <= 0 {
		return
	}
	if r >= 0 && r < utf8.RuneSelf {
		s.vec.PushRepeat(a, byte(r), n)
		return
	}

	var enc [utf8.UTFMax]byte
	size := utf8.EncodeRune(enc[:], r)
	initial := s.vec.Len()
	final := initial + size*n

	s.vec.Reserve(a, size*n)
	s.vec.ExtendFromSlice(a, enc[:size])
	for s.vec.Len() != final {
		end := min(final-s.vec.Len()+initial, s.vec.Len())
		s.vec.ExtendFromWithin(a, initial, end)
	}
}

// Extend appends every rune seq yields.
func (s *BString) Extend(a alloc.Allocator, seq iter.Seq[rune]) {
	for r := range seq {
		s.Push(a, r)
	}
}

// ReplaceRange replaces bytes [beg, end) with with. Both offsets must fall
// on character boundaries, otherwise ReplaceRange panics.
func (s *BString) ReplaceRange(a alloc.Allocator, beg, end int, with string) {
	y.AssertTruef(s.IsCharBoundary(beg), "byte index %d is not a char boundary", beg)
	y.AssertTruef(s.IsCharBoundary(end), "byte index %d is not a char boundary", end)
	y.AssertTruef(beg <= end, "range start %d is after end %d", beg, end)
	s.vec.ReplaceRange(a, beg, end, unsafe.Slice(unsafe.StringData(with), len(with)))
}

// ReplaceOnceInPlace replaces the first occurrence of old with new.
func (s *BString) ReplaceOnceInPlace(a alloc.Allocator, old, new string) {
	if beg := strings.Index(s.String(), old); beg >= 0 {
		s.vec.ReplaceRange(a, beg, beg+len(old), unsafe.Slice(unsafe.StringData(new), len(new)))
	}
}

// IsCharBoundary reports whether i is the start or end of a character.
func (s *BString) IsCharBoundary(i int) bool {
	b := s.vec.Slice()
	if i == 0 || i == len(b) {
		return true
	}
	return i > 0 && i < len(b) && utf8.RuneStart(b[i])
}

// Equal reports whether s and other hold the same text.
func (s *BString) Equal(other *BString) bool {
	return s.String() == other.String()
}

// Compare compares s and other lexicographically, like strings.Compare.
func (s *BString) Compare(other *BString) int {
	return strings.Compare(s.String(), other.String())
}

// Hash returns the xxhash of the contents.
func (s *BString) Hash() uint64 {
	return xxhash.Sum64(s.vec.Slice())
}

// appendLossy appends b, replacing invalid sequences with U+FFFD.
func (s *BString) appendLossy(a alloc.Allocator, b []byte) {
	for len(b) > 0 {
		n := validPrefix(b)
		s.vec.ExtendFromSlice(a, b[:n])
		b = b[n:]
		if len(b) == 0 {
			break
		}
		s.PushStr(a, replacement)
		b = b[invalidPrefix(b):]
	}
}

// validPrefix returns the length of the longest valid UTF-8 prefix of b.
func validPrefix(b []byte) int {
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	return i
}

// invalidPrefix returns the length of the maximal subpart of an ill-formed
// sequence at the start of b: the bytes that could still have begun a valid
// character. Each such subpart is replaced by one U+FFFD.
func invalidPrefix(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}
