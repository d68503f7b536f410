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
	"os"

	"github.com/spf13/cobra"

	olekit "github.com/AppAppWorks/ole-kit"
)

func newCatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <file> <stream>",
		Short: "write a stream's contents to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args[0], args[1])
		},
	}
	return cmd
}

func runCat(path, name string) error {
	cf, err := olekit.Open(path)
	if err != nil {
		return err
	}
	defer cf.Close()

	data, err := cf.ReadStream(name)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("olekit: no stream named %q", name)
	}
	_, err = os.Stdout.Write(data)
	return err
}
