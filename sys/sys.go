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

// Package sys wraps the three virtual memory primitives an arena needs:
// reserving address space, committing pages inside it and releasing it.
//
// A reservation is returned as a []byte spanning the whole range. Touching a
// byte that has not been committed faults, so callers must Commit a
// page-aligned sub-slice before using it.
package sys

import (
	"os"
)

// PageSize returns the granularity that Commit works in.
func PageSize() int {
	return os.Getpagesize()
}
