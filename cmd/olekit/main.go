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

package main

import (
	"os"

	"github.com/dsoprea/go-logging"

	"github.com/AppAppWorks/ole-kit/cmd/olekit/cmd"
)

func main() {
	defer func() {
		if state := recover(); state != nil {
			err, ok := state.(error)
			if !ok {
				err = log.Errorf("%v", state)
			}
			log.PrintError(log.Wrap(err))
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		log.PrintError(log.Wrap(err))
		os.Exit(1)
	}
}
