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

const miniSectorSize = 64

// readStream materializes e's bytes by walking its regular-FAT sector
// chain, or (if e.size is below the mini-stream cutoff and e is not
// the root storage itself) its mini-FAT mini-sector chain inside the
// root storage's mini-stream.
func readStream(cf *CompoundFile, e Entry) ([]byte, error) {
	switch v := e.(type) {
	case *StreamEntry:
		if v.size < uint64(cf.header.MiniStreamCutoffSize) {
			return readMiniChain(cf, v.startSector, v.size)
		}
		return readRegularChain(cf, v.startSector, v.size)
	case *RootStorageEntry:
		return readRegularChain(cf, v.startSector, v.size)
	default:
		return nil, &MalformedEntryError{Field: "object_type", Value: uint8(e.Type())}
	}
}

// readRegularChain walks the ordinary FAT chain starting at sn,
// concatenating whole sectors and truncating the final one down to sz.
func readRegularChain(cf *CompoundFile, sn sectorNumber, sz uint64) ([]byte, error) {
	if sz == 0 {
		return []byte{}, nil
	}
	cache := newFATCache(cf)
	out := make([]byte, 0, sz)
	visited := 0
	maxSectors := int(sz/uint64(cf.sectorSize)) + 2
	first := sn

	for sn.isOrdinary() {
		visited++
		if visited > maxSectors {
			return nil, &MalformedChainError{StartSector: first, Reason: "stream chain longer than its declared size"}
		}
		remaining := sz - uint64(len(out))
		if remaining == 0 {
			break
		}
		n := int(cf.sectorSize)
		if remaining < uint64(n) {
			n = int(remaining)
		}
		buf, err := cf.r.readAt(sn.byteOffset(cf.sectorSize), int(cf.sectorSize))
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
		if uint64(len(out)) >= sz {
			break
		}
		next, err := cache.next(sn)
		if err != nil {
			return nil, err
		}
		sn = next
	}
	if uint64(len(out)) < sz {
		if !sn.isEndOfChain() {
			return nil, &MalformedChainError{StartSector: first, Reason: "chain hit " + sn.String() + " before END-OF-CHAIN"}
		}
		return nil, &TruncatedFileError{Offset: int64(sz), FileSize: int64(len(out))}
	}
	return out[:sz], nil
}

// readMiniChain walks the mini-FAT chain rooted at sn, reading each
// 64-byte mini-sector out of the root storage's mini-stream (itself
// materialized via the regular FAT). This is the corrected per-mini-
// sector append-and-truncate version of the chain walk; the reference
// this spec was distilled from instead overwrote its output buffer in
// place with clone_from_slice, which only ever produced the final
// mini-sector's bytes.
func readMiniChain(cf *CompoundFile, sn sectorNumber, sz uint64) ([]byte, error) {
	if sz == 0 {
		return []byte{}, nil
	}
	root := cf.dir.Root()
	miniStream, err := readRegularChain(cf, root.startSector, root.size)
	if err != nil {
		return nil, err
	}

	cache := newFATCache(cf)
	out := make([]byte, 0, sz)
	visited := 0
	maxSectors := int(sz/miniSectorSize) + 2
	first := sn

	for sn.isOrdinary() {
		visited++
		if visited > maxSectors {
			return nil, &MalformedChainError{StartSector: first, Reason: "mini-stream chain longer than its declared size"}
		}
		remaining := sz - uint64(len(out))
		if remaining == 0 {
			break
		}
		n := miniSectorSize
		if remaining < miniSectorSize {
			n = int(remaining)
		}
		start := int64(sn) * miniSectorSize
		if start+int64(n) > int64(len(miniStream)) {
			return nil, &MalformedChainError{StartSector: first, Reason: "mini-sector outside mini-stream bounds"}
		}
		out = append(out, miniStream[start:start+int64(n)]...)
		if uint64(len(out)) >= sz {
			break
		}
		next, err := cache.nextMini(sn)
		if err != nil {
			return nil, err
		}
		sn = next
	}
	if uint64(len(out)) < sz {
		if !sn.isEndOfChain() {
			return nil, &MalformedChainError{StartSector: first, Reason: "mini chain hit " + sn.String() + " before END-OF-CHAIN"}
		}
		return nil, &TruncatedFileError{Offset: int64(sz), FileSize: int64(len(out))}
	}
	return out[:sz], nil
}
