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

import "fmt"

// IOError wraps a failed positioned read against the backing file.
type IOError struct {
	Offset int64
	Len    int64
	Cause  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("olekit: read of %d bytes at offset %d failed: %v", e.Len, e.Offset, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// MalformedHeaderError reports a header field that fails the signature,
// version, byte-order or geometry checks mandated by the format.
type MalformedHeaderError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("olekit: malformed header field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// MalformedEntryError reports a directory entry that fails to decode:
// an object-type byte outside {0,1,2,5}, an invalid color flag, or a
// name length outside the legal range. It is also returned when a
// stream read names an entry that is not a stream.
type MalformedEntryError struct {
	StreamID uint32
	Field    string
	Value    uint8
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("olekit: malformed directory entry %d, field %q: value 0x%02x", e.StreamID, e.Field, e.Value)
}

// MalformedChainError reports a sector or mini-sector chain that does not
// terminate cleanly at END-OF-CHAIN: it hit a sentinel mid-chain, cycled,
// or exceeded the file's total sector count.
type MalformedChainError struct {
	StartSector sectorNumber
	Reason      string
}

func (e *MalformedChainError) Error() string {
	return fmt.Sprintf("olekit: malformed sector chain starting at %s: %s", e.StartSector, e.Reason)
}

// UnsupportedVersionError reports a major version outside {3, 4}.
type UnsupportedVersionError struct {
	Major uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("olekit: unsupported major version 0x%04x", e.Major)
}

// TruncatedFileError reports a computed offset that exceeds the backing
// file's length. A stream chain that reaches END-OF-CHAIN before its
// declared size also yields it, with Offset set to the declared size and
// FileSize to the number of bytes the chain held.
type TruncatedFileError struct {
	Offset   int64
	FileSize int64
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("olekit: offset %d exceeds file size %d", e.Offset, e.FileSize)
}
