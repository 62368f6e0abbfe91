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

//go:build unix

package sys

import (
	"golang.org/x/sys/unix"

	"github.com/termedit/stdext/y"
)

// Reserve maps size bytes of inaccessible address space. No physical memory
// backs the range until it is committed.
func Reserve(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, y.Wrapf(err, "while reserving %d bytes of address space", size)
	}
	return b, nil
}

// Commit makes region readable and writable. region must be a page-aligned
// sub-slice of a reservation.
func Commit(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return y.Wrapf(err, "while committing %d bytes", len(region))
	}
	return nil
}

// Release unmaps a reservation. It must be the exact slice returned by Reserve.
func Release(reservation []byte) error {
	if err := unix.Munmap(reservation); err != nil {
		return y.Wrapf(err, "while releasing %d bytes", len(reservation))
	}
	return nil
}
