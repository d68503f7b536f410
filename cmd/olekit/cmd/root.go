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

import "github.com/spf13/cobra"

const appName = "olekit"

// Execute builds and runs the olekit command tree.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: appName + " - inspect Compound File Binary (OLE/COM structured storage) files",
	}

	rootCmd.AddCommand(newLsCommand())
	rootCmd.AddCommand(newCatCommand())

	return rootCmd.Execute()
}
