// Copyright 2013 Richard Lehane. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	olekit "github.com/AppAppWorks/ole-kit"
)

func newLsCommand() *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "ls <file>",
		Short: "list the storages and streams in a compound file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args[0], detail)
		},
	}

	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "show object type and timestamps")

	return cmd
}

func runLs(path string, detail bool) error {
	cf, err := olekit.Open(path)
	if err != nil {
		return err
	}
	defer cf.Close()

	return cf.Walk(func(p []string, e olekit.Entry) error {
		if len(p) == 0 {
			return nil // skip the root storage itself
		}
		full := strings.Join(append(append([]string{}, p...), e.Name()), "/")

		if !detail {
			if se, ok := e.(*olekit.StreamEntry); ok {
				fmt.Printf("%12s  %s\n", humanize.Bytes(se.Size()), full)
			} else {
				fmt.Printf("%12s  %s/\n", "-", full)
			}
			return nil
		}

		switch v := e.(type) {
		case *olekit.StreamEntry:
			fmt.Printf("%-10s %12s  %s\n", v.Type(), humanize.Bytes(v.Size()), full)
		case *olekit.StorageEntry:
			fmt.Printf("%-10s %12s  %s/\n", v.Type(), "-", full)
			if created, ok := v.Created(); ok {
				fmt.Printf("%-10s %12s  created:  %s\n", "", "", humanize.Time(created))
			}
			if modified, ok := v.Modified(); ok {
				fmt.Printf("%-10s %12s  modified: %s\n", "", "", humanize.Time(modified))
			}
		default:
			fmt.Printf("%-10s %12s  %s\n", e.Type(), "-", full)
		}
		return nil
	})
}
