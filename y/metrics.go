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

package y

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	// numCommits is the number of times an arena grew its committed range.
	numCommits = stats.Int64("stdext/arena/commits",
		"Number of virtual memory commits", stats.UnitDimensionless)
	// numCommittedBytes has the bytes committed by those calls.
	numCommittedBytes = stats.Int64("stdext/arena/committed_bytes",
		"Bytes committed to arenas", stats.UnitBytes)
	// numReservedBytes has the bytes of address space reserved by new arenas.
	numReservedBytes = stats.Int64("stdext/arena/reserved_bytes",
		"Bytes of address space reserved by arenas", stats.UnitBytes)
	// numReleasedBytes has the bytes of address space given back to the OS.
	numReleasedBytes = stats.Int64("stdext/arena/released_bytes",
		"Bytes of address space released by arenas", stats.UnitBytes)
	// numOutOfMemory counts fatal allocation failures.
	numOutOfMemory = stats.Int64("stdext/arena/oom",
		"Number of arena allocations that ran out of memory", stats.UnitDimensionless)
)

// Views aggregates the arena measures. They are not registered by default,
// call RegisterViews to export them.
var Views = []*view.View{
	{Name: "stdext/arena/commits", Measure: numCommits, Aggregation: view.Count()},
	{Name: "stdext/arena/committed_bytes", Measure: numCommittedBytes, Aggregation: view.Sum()},
	{Name: "stdext/arena/reserved_bytes", Measure: numReservedBytes, Aggregation: view.Sum()},
	{Name: "stdext/arena/released_bytes", Measure: numReleasedBytes, Aggregation: view.Sum()},
	{Name: "stdext/arena/oom", Measure: numOutOfMemory, Aggregation: view.Count()},
}

// RegisterViews registers Views with the opencensus view worker.
func RegisterViews() error {
	return view.Register(Views...)
}

// UnregisterViews undoes RegisterViews.
func UnregisterViews() {
	view.Unregister(Views...)
}

// NumCommitsAdd records a commit of n bytes.
func NumCommitsAdd(enabled bool, n int64) {
	if !enabled {
		return
	}
	stats.Record(context.Background(), numCommits.M(1), numCommittedBytes.M(n))
}

// NumReservedAdd records a reservation of n bytes.
func NumReservedAdd(enabled bool, n int64) {
	record(enabled, numReservedBytes, n)
}

// NumReleasedAdd records a release of n bytes.
func NumReleasedAdd(enabled bool, n int64) {
	record(enabled, numReleasedBytes, n)
}

// NumOutOfMemoryAdd records a fatal allocation failure.
func NumOutOfMemoryAdd(enabled bool) {
	record(enabled, numOutOfMemory, 1)
}

func record(enabled bool, m *stats.Int64Measure, n int64) {
	if !enabled {
		return
	}
	stats.Record(context.Background(), m.M(n))
}
