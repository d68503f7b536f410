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

import "encoding/binary"

// fatSector is a materialized view over one FAT or mini-FAT sector: a
// contiguous run of sectorSize/4 little-endian sector numbers.
type fatSector []byte

func (f fatSector) lookup(i uint32) sectorNumber {
	off := i * 4
	return sectorNumber(binary.LittleEndian.Uint32(f[off : off+4]))
}

// fatCache memoizes already-materialized FAT and mini-FAT sectors for the
// duration of a single ReadStream/ReadMiniStream call. It has no
// correctness role — only avoids re-reading the same FAT sector
// repeatedly while walking a long chain — and is discarded when that
// call returns.
type fatCache struct {
	cf       *CompoundFile
	fat      map[uint32]fatSector
	miniFAT  map[uint32]fatSector
}

func newFATCache(cf *CompoundFile) *fatCache {
	return &fatCache{cf: cf, fat: make(map[uint32]fatSector), miniFAT: make(map[uint32]fatSector)}
}

func (c *fatCache) entriesPerFAT() uint32 {
	return c.cf.sectorSize / 4
}

// fatSectorFor returns the FAT sector materializing the successor entry
// for ordinary sector n (SPEC_FULL.md / spec.md §4.4 steps 1-4).
func (c *fatCache) fatSectorFor(n sectorNumber) (fatSector, uint32, error) {
	entries := c.entriesPerFAT()
	difatIndex := uint32(n) / entries
	slot := uint32(n) % entries

	if cached, ok := c.fat[difatIndex]; ok {
		return cached, slot, nil
	}

	fatSectNo, err := c.cf.sectorOfFAT(difatIndex)
	if err != nil {
		return nil, 0, err
	}
	buf, err := c.cf.r.readAt(fatSectNo.byteOffset(c.cf.sectorSize), int(c.cf.sectorSize))
	if err != nil {
		return nil, 0, err
	}
	sec := fatSector(buf)
	c.fat[difatIndex] = sec
	return sec, slot, nil
}

// next returns the sector following n in the regular FAT chain.
func (c *fatCache) next(n sectorNumber) (sectorNumber, error) {
	sec, slot, err := c.fatSectorFor(n)
	if err != nil {
		return 0, err
	}
	return sec.lookup(slot), nil
}

// miniFATSectorFor returns the mini-FAT sector materializing the
// successor entry for mini-sector m, per spec.md §4.4's mini-FAT walk:
// step mini_fat_index times through the chain rooted at
// first_mini_fat_sector_location, consulting the *regular* FAT at each
// step.
func (c *fatCache) miniFATSectorFor(m sectorNumber) (fatSector, uint32, error) {
	entries := c.entriesPerFAT()
	miniFATIndex := uint32(m) / entries
	slot := uint32(m) % entries

	if cached, ok := c.miniFAT[miniFATIndex]; ok {
		return cached, slot, nil
	}

	sect := c.cf.header.MiniFATSectorLoc
	for i := uint32(0); i < miniFATIndex; i++ {
		if !sect.isOrdinary() {
			return nil, 0, &MalformedChainError{StartSector: c.cf.header.MiniFATSectorLoc, Reason: "mini-FAT chain ended early"}
		}
		next, err := c.next(sect)
		if err != nil {
			return nil, 0, err
		}
		sect = next
	}
	if !sect.isOrdinary() {
		return nil, 0, &MalformedChainError{StartSector: c.cf.header.MiniFATSectorLoc, Reason: "mini-FAT chain ended early"}
	}

	buf, err := c.cf.r.readAt(sect.byteOffset(c.cf.sectorSize), int(c.cf.sectorSize))
	if err != nil {
		return nil, 0, err
	}
	sec := fatSector(buf)
	c.miniFAT[miniFATIndex] = sec
	return sec, slot, nil
}

// nextMini returns the mini-sector following m in the mini-FAT chain.
func (c *fatCache) nextMini(m sectorNumber) (sectorNumber, error) {
	sec, slot, err := c.miniFATSectorFor(m)
	if err != nil {
		return 0, err
	}
	return sec.lookup(slot), nil
}
