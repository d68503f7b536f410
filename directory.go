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
	"encoding/binary"
	"time"
)

// Directory is the flat, stream-ID-indexed array of directory entries
// (spec.md §3/§4.5): one slot per 128-byte record in the directory
// sector chain, in on-disk order, including unallocated (Unknown)
// slots so that every left/right/child stream ID an entry carries
// indexes this array directly.
type Directory struct {
	cf      *CompoundFile
	entries []Entry
}

// Entries returns every allocated (non-Unknown) directory entry, in
// on-disk order.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, 0, len(d.entries))
	for _, e := range d.entries {
		if _, ok := e.(*UnknownEntry); !ok {
			out = append(out, e)
		}
	}
	return out
}

// Root returns the root storage entry (always stream ID 0).
func (d *Directory) Root() *RootStorageEntry {
	return d.entries[0].(*RootStorageEntry)
}

// Find performs the linear, folded-name scan spec.md §4.5 explicitly
// allows a read-only reader to use in place of a red-black-tree
// descent: it returns the first allocated entry whose name matches,
// or (nil, false) if there is none. A missing name is not an error.
func (d *Directory) Find(name string) (Entry, bool) {
	for _, e := range d.entries {
		if _, ok := e.(*UnknownEntry); ok {
			continue
		}
		if sameName(e.Name(), name) {
			return e, true
		}
	}
	return nil, false
}

// Children returns parent's direct children, in red-black in-order
// traversal (i.e. name order), by walking the actual left/right/child
// stream-ID links rather than scanning the whole array.
func (d *Directory) Children(parent Entry) []Entry {
	c := commonOf(parent)
	if !c.hasChild() {
		return nil
	}
	var out []Entry
	d.inorder(c.child, func(e Entry) { out = append(out, e) })
	return out
}

// Walk visits parent (first the root storage, then every descendant)
// depth-first, calling fn with the slash-free path of names leading to
// each entry. Stopping early is done by returning a non-nil error from
// fn; Walk returns it unchanged.
func (d *Directory) Walk(fn func(path []string, e Entry) error) error {
	return d.walk(nil, d.Root(), fn)
}

func (d *Directory) walk(path []string, e Entry, fn func([]string, Entry) error) error {
	if err := fn(path, e); err != nil {
		return err
	}
	for _, child := range d.Children(e) {
		childPath := make([]string, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = e.Name()
		if err := d.walk(childPath, child, fn); err != nil {
			return err
		}
	}
	return nil
}

func (d *Directory) inorder(id uint32, visit func(Entry)) {
	if id == noStream || int(id) >= len(d.entries) {
		return
	}
	e := d.entries[id]
	c := commonOf(e)
	d.inorder(c.left, visit)
	if _, ok := e.(*UnknownEntry); !ok {
		visit(e)
	}
	d.inorder(c.right, visit)
}

// commonOf extracts the shared tree-link fields from any Entry variant.
func commonOf(e Entry) direntCommon {
	switch v := e.(type) {
	case *StorageEntry:
		return v.direntCommon
	case *RootStorageEntry:
		return v.direntCommon
	case *StreamEntry:
		return v.direntCommon
	case *UnknownEntry:
		return v.direntCommon
	default:
		return direntCommon{left: noStream, right: noStream, child: noStream}
	}
}

// buildDirectory enumerates the directory-sector chain rooted at
// first_directory_sector_location and decodes each 128-byte record.
func buildDirectory(cf *CompoundFile) (*Directory, error) {
	cache := newFATCache(cf)
	perSector := cf.sectorSize / dirEntrySize

	var entries []Entry
	sn := cf.header.DirectorySectorLoc
	visited := 0
	maxSectors := int(cf.size/int64(cf.sectorSize)) + 1

	for sn.isOrdinary() {
		visited++
		if visited > maxSectors {
			return nil, &MalformedChainError{StartSector: cf.header.DirectorySectorLoc, Reason: "directory sector chain cycles"}
		}
		buf, err := cf.r.readAt(sn.byteOffset(cf.sectorSize), int(cf.sectorSize))
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < perSector; i++ {
			off := i * dirEntrySize
			id := uint32(len(entries))
			e, err := parseDirEntry(id, buf[off:off+dirEntrySize])
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		next, err := cache.next(sn)
		if err != nil {
			return nil, err
		}
		sn = next
	}
	if !sn.isEndOfChain() {
		return nil, &MalformedChainError{StartSector: cf.header.DirectorySectorLoc, Reason: "directory chain hit " + sn.String() + " before END-OF-CHAIN"}
	}
	if len(entries) == 0 {
		return nil, &MalformedChainError{StartSector: cf.header.DirectorySectorLoc, Reason: "empty directory"}
	}
	if _, ok := entries[0].(*RootStorageEntry); !ok {
		return nil, &MalformedEntryError{StreamID: 0, Field: "object_type", Value: uint8(entries[0].Type())}
	}
	return &Directory{cf: cf, entries: entries}, nil
}

func parseDirEntry(id uint32, buf []byte) (Entry, error) {
	objectType := ObjectType(buf[66])

	rawName := make([]uint16, 32)
	for i := 0; i < 32; i++ {
		rawName[i] = binary.LittleEndian.Uint16(buf[i*2 : i*2+2])
	}
	nameLength := binary.LittleEndian.Uint16(buf[64:66])

	if objectType == ObjectUnknown {
		return &UnknownEntry{direntCommon: direntCommon{id: id, objectType: ObjectUnknown, left: noStream, right: noStream, child: noStream}}, nil
	}

	name, err := decodeEntryName(rawName, nameLength)
	if err != nil {
		return nil, err
	}

	colorByte := buf[67]
	if colorByte != uint8(colorRed) && colorByte != uint8(colorBlack) {
		return nil, &MalformedEntryError{StreamID: id, Field: "color", Value: colorByte}
	}

	common := direntCommon{
		id:         id,
		name:       name,
		objectType: objectType,
		color:      colorFlag(colorByte),
		left:       binary.LittleEndian.Uint32(buf[68:72]),
		right:      binary.LittleEndian.Uint32(buf[72:76]),
		child:      binary.LittleEndian.Uint32(buf[76:80]),
	}

	var clsid [16]byte
	copy(clsid[:], buf[80:96])
	stateBits := binary.LittleEndian.Uint32(buf[96:100])
	var created, modified [8]byte
	copy(created[:], buf[100:108])
	copy(modified[:], buf[108:116])
	startSector := sectorNumber(binary.LittleEndian.Uint32(buf[116:120]))
	size := binary.LittleEndian.Uint64(buf[120:128])

	switch objectType {
	case ObjectStream:
		return &StreamEntry{direntCommon: common, startSector: startSector, size: size}, nil
	case ObjectStorage:
		return &StorageEntry{direntCommon: common, clsid: clsid, stateBits: stateBits, created: created, modified: modified}, nil
	case ObjectRootStorage:
		return &RootStorageEntry{direntCommon: common, clsid: clsid, stateBits: stateBits, startSector: startSector, size: size}, nil
	default:
		return nil, &MalformedEntryError{StreamID: id, Field: "object_type", Value: uint8(objectType)}
	}
}

// filetimeEpochOffsetSeconds is the gap between the FILETIME epoch
// (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const filetimeEpochOffsetSeconds = 11644473600

// filetimeToTime converts an 8-byte Windows FILETIME (100-ns ticks
// since 1601-01-01 UTC) to a time.Time, per the format's actual
// definition (spec.md §4.5/§9: the Rust reference this spec was
// distilled from instead treated the raw value as nanoseconds, a
// documented bug this implementation does not reproduce). A
// structurally-zero field means "not recorded."
func filetimeToTime(raw [8]byte) (time.Time, bool) {
	ticks := binary.LittleEndian.Uint64(raw[:])
	if ticks == 0 {
		return time.Time{}, false
	}
	seconds := int64(ticks/10_000_000) - filetimeEpochOffsetSeconds
	nanos := int64(ticks%10_000_000) * 100
	return time.Unix(seconds, nanos).UTC(), true
}
