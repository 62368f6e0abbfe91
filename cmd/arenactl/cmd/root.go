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
	"net/http"
	_ "net/http/pprof" //nolint:gosec
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opencensus.io/zpages"

	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/y"
)

var (
	scratchCapacity string
	noMetrics       bool
	debugAddr       string
	verbose         bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               "arenactl",
	Short:             "Tools to inspect and exercise stdext arenas.",
	PersistentPreRunE: validateRootCmdArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&scratchCapacity, "scratch-capacity", "128MiB",
		"Address space each scratch arena reserves, e.g. 64MiB or 1GiB.")
	RootCmd.PersistentFlags().BoolVar(&noMetrics, "no-metrics", false,
		"Do not record opencensus measures.")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log DEBUG messages as well.")
	RootCmd.PersistentFlags().StringVar(&debugAddr, "debug-addr", "",
		"If set, serve /debug/pprof, /debug/requests and /z pages at this address.")
}

func validateRootCmdArgs(cmd *cobra.Command, args []string) error {
	if strings.HasPrefix(cmd.Use, "help ") { // No need to validate if it is help
		return nil
	}
	capacity, err := parseSize(scratchCapacity)
	if err != nil {
		return errors.Wrap(err, "--scratch-capacity")
	}
	opt := arena.CurrentOptions().
		WithScratchCapacity(capacity).
		WithMetricsEnabled(!noMetrics)
	if verbose {
		opt = opt.WithLogger(y.NewLogger(os.Stderr, y.DEBUG))
	}
	arena.Configure(opt)

	if debugAddr != "" {
		zpages.Handle(nil, "/z")
		go func() {
			if err := http.ListenAndServe(debugAddr, nil); err != nil {
				fmt.Printf("Unable to serve debug pages at %s: %v\n", debugAddr, err)
			}
		}()
		fmt.Printf("Listening for /debug HTTP requests at: %s\n", debugAddr)
	}
	return nil
}

// parseSize parses a human readable byte size such as "64MiB".
func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n == 0 || n > uint64(maxSize) {
		return 0, errors.Errorf("size %q out of range", s)
	}
	return int(n), nil
}

const maxSize = int(^uint(0) >> 1)
