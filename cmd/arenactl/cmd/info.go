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

package cmd

import (
	"fmt"
	"io"

	"github.com/dgraph-io/ristretto/z"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/termedit/stdext/alloc"
	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/sys"
	"github.com/termedit/stdext/y"
)

var reserveScratch bool

func init() {
	RootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&reserveScratch, "reserve", false,
		"Reserve the process-wide scratch arenas and show their statistics.")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print arena parameters of this platform.",
	Long: `
This command prints the chunk size arenas commit memory in, the OS page size,
the configured scratch capacity and the heap allocator state.
`,
	RunE: handleInfo,
}

func handleInfo(cmd *cobra.Command, args []string) error {
	if reserveScratch {
		if err := arena.ScratchInit(0); err != nil {
			return err
		}
	}
	printInfo(cmd.OutOrStdout(), reserveScratch)
	return nil
}

func printInfo(w io.Writer, withScratch bool) {
	opt := arena.CurrentOptions()

	out := z.CallocNoRef(1, "arenactl.Info")
	jemalloc := len(out) > 0
	z.Free(out)

	fmt.Fprintf(w, "Chunk size:        %s\n", humanize.IBytes(uint64(arena.ChunkSize)))
	fmt.Fprintf(w, "Page size:         %s\n", humanize.IBytes(uint64(sys.PageSize())))
	fmt.Fprintf(w, "Scratch capacity:  %s\n", humanize.IBytes(uint64(opt.ScratchCapacity)))
	fmt.Fprintf(w, "Debug assertions:  %v\n", y.DebugAssertions)
	fmt.Fprintf(w, "Metrics enabled:   %v\n", opt.MetricsEnabled)
	fmt.Fprintf(w, "jemalloc enabled:  %v\n", jemalloc)
	fmt.Fprintf(w, "Heap bytes:        %s\n", humanize.IBytes(uint64(alloc.NumAllocBytes())))
	if withScratch {
		for i, s := range arena.ScratchStats() {
			fmt.Fprintf(w, "Scratch arena %d:   %s\n", i, s)
		}
	}
}
