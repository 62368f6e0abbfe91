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
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/y"
)

const (
	minReadSize = 1 * y.KiB
	maxReadSize = 128 * y.KiB

	// maxEmptyReads is how many (0, nil) reads ReadAll tolerates in a row.
	maxEmptyReads = 100
)

// ReadFile reads the named file into a BVec grown with a. Reads start at
// 1 KiB and double up to 128 KiB, so small files do not over-allocate.
func ReadFile(a alloc.Allocator, path string) (BVec[byte], error) {
	f, err := os.Open(path)
	if err != nil {
		return BVec[byte]{}, y.Wrapf(err, "while opening file: %s", path)
	}
	defer f.Close()
	return ReadAll(a, f)
}

// ReadAll reads r until EOF into a BVec grown with a. A reader that keeps
// returning no data and no error fails with io.ErrNoProgress.
func ReadAll(a alloc.Allocator, r io.Reader) (BVec[byte], error) {
	var vec BVec[byte]
	size := minReadSize
	empty := 0
	for {
		vec.Reserve(a, size)
		spare := vec.SpareCapacity()
		n, err := r.Read(spare[:min(len(spare), size)])
		vec.len += n
		switch {
		case err == io.EOF:
			return vec, nil
		case errors.Is(err, syscall.EINTR):
			continue
		case err != nil:
			return vec, y.Wrapf(err, "while reading")
		}
		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				return vec, y.Wrapf(io.ErrNoProgress, "while reading")
			}
			continue
		}
		empty = 0
		size = min(size*2, maxReadSize)
	}
}

// ReadFileString reads the named file into a BString grown with a. The
// error wraps ErrInvalidUTF8 if the file is not valid UTF-8.
func ReadFileString(a alloc.Allocator, path string) (BString, error) {
	vec, err := ReadFile(a, path)
	if err != nil {
		return BString{}, err
	}
	s, err := FromUTF8(vec)
	if err != nil {
		return BString{}, y.Wrapf(err, "file %s did not contain valid UTF-8", path)
	}
	return s, nil
}
