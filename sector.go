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

// sectorNumber is a 32-bit value that either addresses an ordinary sector
// or carries one of four sentinel meanings. Chain traversal terminates on
// any non-ordinary value.
type sectorNumber uint32

const (
	freeSect   sectorNumber = 0xFFFFFFFF // unallocated sector in FAT, mini-FAT or DIFAT
	endOfChain sectorNumber = 0xFFFFFFFE // terminates a chain
	fatSect    sectorNumber = 0xFFFFFFFD // this sector stores FAT data
	difatSect  sectorNumber = 0xFFFFFFFC // this sector stores DIFAT data

	maxRegSect sectorNumber = 0xFFFFFFFA // highest valid ordinary sector number
	noStream   uint32       = 0xFFFFFFFF // "no link" stream ID
)

// isOrdinary reports whether n addresses an actual sector rather than
// carrying one of the four sentinel meanings. Total over every uint32.
func (n sectorNumber) isOrdinary() bool {
	switch n {
	case freeSect, endOfChain, fatSect, difatSect:
		return false
	default:
		return true
	}
}

func (n sectorNumber) isFree() bool       { return n == freeSect }
func (n sectorNumber) isEndOfChain() bool { return n == endOfChain }
func (n sectorNumber) isFATSect() bool    { return n == fatSect }
func (n sectorNumber) isDIFATSect() bool  { return n == difatSect }

// byteOffset returns the absolute file offset of sector n's first byte.
// Undefined (but harmless) for sentinel values; callers only invoke this
// on sectors already known to be ordinary.
func (n sectorNumber) byteOffset(sectorSize uint32) int64 {
	return (int64(n) + 1) * int64(sectorSize)
}

func (n sectorNumber) div(count uint32) sectorNumber {
	return sectorNumber(uint32(n) / count)
}

func (n sectorNumber) mod(count uint32) uint32 {
	return uint32(n) % count
}

func (n sectorNumber) add(delta uint32) sectorNumber {
	return sectorNumber(uint32(n) + delta)
}

func (n sectorNumber) String() string {
	switch n {
	case freeSect:
		return "FREESECT"
	case endOfChain:
		return "ENDOFCHAIN"
	case fatSect:
		return "FATSECT"
	case difatSect:
		return "DIFSECT"
	default:
		return fmt.Sprintf("0x%08X", uint32(n))
	}
}
