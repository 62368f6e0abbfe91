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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/termedit/stdext/arena"
	"github.com/termedit/stdext/collections"
)

var showHash bool

func init() {
	RootCmd.AddCommand(catCmd)
	catCmd.Flags().BoolVar(&showHash, "hash", false,
		"Print the xxhash of each file instead of its contents.")
}

var catCmd = &cobra.Command{
	Use:   "cat FILE...",
	Short: "Print files read into a scratch arena.",
	Long: `
This command reads each file into a scratch arena, replaces invalid UTF-8 with
U+FFFD and prints the result, or its xxhash with --hash.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: handleCat,
}

func handleCat(cmd *cobra.Command, args []string) error {
	if err := arena.ScratchInit(0); err != nil {
		return err
	}
	for _, path := range args {
		if err := catFile(cmd.OutOrStdout(), path, showHash); err != nil {
			return err
		}
	}
	return nil
}

func catFile(w io.Writer, path string, hash bool) error {
	scratch := arena.Scratch(nil)
	defer scratch.Close()

	vec, err := collections.ReadFile(scratch, path)
	if err != nil {
		return err
	}
	s := collections.FromUTF8Lossy(scratch, vec)
	if hash {
		_, err = fmt.Fprintf(w, "%016x  %s\n", s.Hash(), path)
	} else {
		_, err = w.Write(s.Bytes())
	}
	return errors.Wrapf(err, "while writing %s", path)
}
