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
	"fmt"
	"unicode/utf8"

	"github.com/termedit/stdext/alloc"
)

// Formatter pairs a BString with an allocator so it can be the target of
// fmt.Fprintf and anything else that writes to an io.Writer. Bytes that are
// not valid UTF-8 are written as U+FFFD.
type Formatter struct {
	s *BString
	a alloc.Allocator
}

// Formatter returns a writer that appends to s using a.
func (s *BString) Formatter(a alloc.Allocator) Formatter {
	return Formatter{s: s, a: a}
}

// Write implements io.Writer. It never fails.
func (f Formatter) Write(p []byte) (int, error) {
	if utf8.Valid(p) {
		f.s.vec.ExtendFromSlice(f.a, p)
	} else {
		f.s.appendLossy(f.a, p)
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (f Formatter) WriteString(str string) (int, error) {
	if utf8.ValidString(str) {
		f.s.PushStr(f.a, str)
	} else {
		f.s.appendLossy(f.a, []byte(str))
	}
	return len(str), nil
}

// WriteRune appends r.
func (f Formatter) WriteRune(r rune) (int, error) {
	f.s.Push(f.a, r)
	if n := utf8.RuneLen(r); n > 0 {
		return n, nil
	}
	return len(replacement), nil
}

// Appendf appends the formatted text to s.
func (s *BString) Appendf(a alloc.Allocator, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.Formatter(a), format, args...)
}

// Sprintf formats into a new BString allocated from a.
func Sprintf(a alloc.Allocator, format string, args ...interface{}) BString {
	var s BString
	s.Appendf(a, format, args...)
	return s
}
