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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/y"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in          string
		want        int
		shouldError bool
	}{
		{"64MiB", 64 * y.MiB, false},
		{"1GiB", y.GiB, false},
		{"4096", 4096, false},
		{"0", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.shouldError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRootCmdArgs(t *testing.T) {
	prev := arena.CurrentOptions()
	defer arena.Configure(prev)

	oldCapacity, oldNoMetrics := scratchCapacity, noMetrics
	defer func() { scratchCapacity, noMetrics = oldCapacity, oldNoMetrics }()

	scratchCapacity, noMetrics = "8MiB", true
	require.NoError(t, validateRootCmdArgs(&cobra.Command{Use: "test"}, nil))
	require.Equal(t, 8*y.MiB, arena.CurrentOptions().ScratchCapacity)
	require.False(t, arena.CurrentOptions().MetricsEnabled)

	scratchCapacity = "nope"
	err := validateRootCmdArgs(&cobra.Command{Use: "test"}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--scratch-capacity")
}

func TestCatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("caf\xe9 au lait\n"), 0644))

	var buf bytes.Buffer
	require.NoError(t, catFile(&buf, path, false))
	require.Equal(t, "caf� au lait\n", buf.String())

	buf.Reset()
	require.NoError(t, catFile(&buf, path, true))
	want := fmt.Sprintf("%016x  %s\n", xxhash.Sum64String("caf� au lait\n"), path)
	require.Equal(t, want, buf.String())

	require.Error(t, catFile(&buf, filepath.Join(t.TempDir(), "missing"), false))
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, false)
	out := buf.String()
	require.Contains(t, out, "Chunk size:")
	require.Contains(t, out, "Page size:")
	require.Contains(t, out, "Scratch capacity:")
	require.NotContains(t, out, "Scratch arena 0")
}

func TestRunBench(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runBench(context.Background(), &buf, 1000, 4*y.MiB, 2, false))

	out := buf.String()
	require.Contains(t, out, "worker 0: sum 499500")
	require.Contains(t, out, "worker 1: sum 499500")
	// 64 levels of 15 ones each.
	require.Contains(t, out, "recursive total 960")
	require.Equal(t, 3, strings.Count(out, "\n"))
}
