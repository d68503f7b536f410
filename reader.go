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

package olekit

import (
	"io"

	"github.com/dsoprea/go-logging"
)

// sectionReader is the positioned-read primitive every other layer is
// built on: a single readAt operation against an absolute file offset,
// never mutating seek state. Backed by io.ReaderAt (os.File.ReadAt satisfies
// the pread-family concurrency guarantee the format's read model needs).
type sectionReader struct {
	ra   io.ReaderAt
	size int64
}

func newSectionReader(ra io.ReaderAt, size int64) *sectionReader {
	return &sectionReader{ra: ra, size: size}
}

// readAt reads exactly n bytes at offset, returning *TruncatedFileError
// if the range runs past the end of the file and *IOError on any other
// short read or I/O failure.
func (r *sectionReader) readAt(offset int64, n int) (buf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			recErr, ok := rec.(error)
			if !ok {
				recErr = log.Errorf("non-error panic reading sector: %v", rec)
			}
			err = &IOError{Offset: offset, Len: int64(n), Cause: log.Wrap(recErr)}
		}
	}()

	if offset < 0 || offset+int64(n) > r.size {
		return nil, &TruncatedFileError{Offset: offset + int64(n), FileSize: r.size}
	}

	buf = make([]byte, n)
	read, ioErr := r.ra.ReadAt(buf, offset)
	if ioErr != nil && !(ioErr == io.EOF && read == n) {
		return nil, &IOError{Offset: offset, Len: int64(n), Cause: ioErr}
	}
	return buf, nil
}
