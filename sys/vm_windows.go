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

//go:build windows

package sys

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/termedit/stdext/y"
)

// Reserve reserves size bytes of address space with MEM_RESERVE.
func Reserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, y.Wrapf(err, "while reserving %d bytes of address space", size)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Commit backs region with physical pages via MEM_COMMIT.
func Commit(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(region)))
	if _, err := windows.VirtualAlloc(addr, uintptr(len(region)), windows.MEM_COMMIT,
		windows.PAGE_READWRITE); err != nil {
		return y.Wrapf(err, "while committing %d bytes", len(region))
	}
	return nil
}

// Release frees the whole reservation with MEM_RELEASE.
func Release(reservation []byte) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(reservation)))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return y.Wrapf(err, "while releasing %d bytes", len(reservation))
	}
	return nil
}
