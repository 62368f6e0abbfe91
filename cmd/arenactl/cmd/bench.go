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
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/net/trace"

	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/collections"
	"github.com/termedit/stdext/y"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark arena allocation.",
	Long: `
This command pushes integers, builds strings and runs a recursive workload on
scratch arenas, each goroutine with its own scratch set. Useful for testing
and performance analysis.
`,
	RunE: handleBench,
}

type benchOptions struct {
	n          int
	capacity   string
	goroutines int
	progress   bool
}

var bopt benchOptions

func init() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&bopt.n, "n", "n", 1000000, "Number of elements per workload.")
	benchCmd.Flags().StringVar(&bopt.capacity, "capacity", "1GiB",
		"Address space reserved by each arena of a worker.")
	benchCmd.Flags().IntVarP(&bopt.goroutines, "goroutines", "g", 1,
		"Number of goroutines running the workloads.")
	benchCmd.Flags().BoolVar(&bopt.progress, "progress", true, "Print progress every second.")
}

// benchStats is shared by the workers and the reporter.
type benchStats struct {
	elements uint64
	bytes    uint64
}

func handleBench(cmd *cobra.Command, args []string) error {
	capacity, err := parseSize(bopt.capacity)
	if err != nil {
		return errors.Wrap(err, "--capacity")
	}
	if bopt.n < 1 || bopt.goroutines < 1 {
		return errors.New("--n and --goroutines should be at least 1")
	}
	if err := y.RegisterViews(); err != nil {
		return y.Wrapf(err, "while registering views")
	}
	defer y.UnregisterViews()

	tr := trace.New("arenactl.Bench", "bench")
	defer tr.Finish()
	ctx := trace.NewContext(context.Background(), tr)

	return runBench(ctx, cmd.OutOrStdout(), bopt.n, capacity, bopt.goroutines, bopt.progress)
}

func runBench(ctx context.Context, w io.Writer, n, capacity, goroutines int, progress bool) error {
	var stats benchStats
	start := time.Now()

	reporter := y.NewCloser(0)
	if progress {
		reporter.AddRunning(1)
		go spawnReporter(w, reporter, &stats, start)
	}

	workers := y.NewCloser(goroutines)
	errs := make([]error, goroutines)
	results := make([]string, goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer workers.Done()
			results[i], errs[i] = benchWorker(ctx, n, capacity, &stats)
		}(i)
	}
	workers.Wait()
	reporter.SignalAndWait()

	var err error
	for i := range errs {
		err = y.CombineErrors(err, errs[i])
	}
	if err != nil {
		return err
	}
	for i, res := range results {
		fmt.Fprintf(w, "worker %d: %s\n", i, res)
	}
	fmt.Fprintf(w, "Time elapsed: %s, elements: %d, bytes: %s\n",
		y.FixedDuration(time.Since(start)), atomic.LoadUint64(&stats.elements),
		humanize.IBytes(atomic.LoadUint64(&stats.bytes)))
	return nil
}

func spawnReporter(w io.Writer, c *y.Closer, stats *benchStats, start time.Time) {
	defer c.Done()

	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-c.HasBeenClosed():
			return
		case <-t.C:
			durSec := uint64(time.Since(start).Seconds())
			if durSec > 0 {
				elements := atomic.LoadUint64(&stats.elements)
				sz := atomic.LoadUint64(&stats.bytes)
				fmt.Fprintf(w, "Time elapsed: %s, elements: %d, speed: %d/sec, bytes: %s, speed: %s/sec\n",
					y.FixedDuration(time.Since(start)), elements, elements/durSec,
					humanize.IBytes(sz), humanize.IBytes(sz/durSec))
			}
		}
	}
}

// benchWorker runs every workload on a scratch set of its own and returns a
// summary of the arenas afterwards.
func benchWorker(ctx context.Context, n, capacity int, stats *benchStats) (res string, err error) {
	ss := arena.NewScratchSet(capacity)
	out, err := arena.NewArena(capacity)
	if err != nil {
		return "", err
	}
	defer func() {
		err = y.CombineErrors(err, y.CombineErrors(ss.Release(), out.Release()))
	}()

	y.Trace(ctx, "Pushing %d integers", n)
	sum := pushIntegers(ss, out, n)
	atomic.AddUint64(&stats.elements, uint64(n))
	atomic.AddUint64(&stats.bytes, uint64(n*8))

	y.Trace(ctx, "Building a string of %d numbers", n)
	s := buildString(ss, out, n)
	atomic.AddUint64(&stats.elements, uint64(n))
	atomic.AddUint64(&stats.bytes, uint64(s.Len()))

	depth := min(n, 64)
	y.Trace(ctx, "Recursing %d levels", depth)
	total := recurse(ss, out, depth, n/depth)
	atomic.AddUint64(&stats.elements, uint64(depth*(n/depth)))

	scratch := ss.Stats()
	return fmt.Sprintf("sum %d, string hash %016x, recursive total %d; out %s; scratch %s / %s",
		sum, s.Hash(), total, out.Stats(), scratch[0], scratch[1]), nil
}

// pushIntegers fills a BVec in a scratch arena and keeps only the sum in out.
func pushIntegers(ss *arena.ScratchSet, out *arena.Arena, n int) uint64 {
	scratch := ss.Get(out)
	defer scratch.Close()

	var v collections.BVec[uint64]
	for i := 0; i < n; i++ {
		v.Push(scratch, uint64(i))
	}
	sum := arena.Alloc[uint64](out)
	*sum = 0
	for _, e := range v.All() {
		*sum += e
	}
	return *sum
}

// buildString writes n comma separated numbers into a BString in out.
func buildString(ss *arena.ScratchSet, out *arena.Arena, n int) collections.BString {
	scratch := ss.Get(out)
	defer scratch.Close()

	var tmp collections.BString
	for i := 0; i < n; i++ {
		tmp.Appendf(scratch, "%d,", i)
	}
	return collections.FromString(out, tmp.String())
}

// recurse allocates width integers per level in alternating scratch arenas
// and returns their total in out.
func recurse(ss *arena.ScratchSet, out arena.Region, depth, width int) int {
	if depth == 0 {
		return 0
	}
	scratch := ss.Get(out)
	defer scratch.Close()

	nums := arena.AllocFilled(scratch, width, 1)
	total := recurse(ss, scratch, depth-1, width)
	for _, v := range nums {
		total += v
	}
	return total
}
