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
	"strings"
	"time"
	"unicode/utf16"
)

// ObjectType classifies a directory entry's object-type byte.
type ObjectType uint8

const (
	ObjectUnknown     ObjectType = 0x0
	ObjectStorage     ObjectType = 0x1
	ObjectStream      ObjectType = 0x2
	ObjectRootStorage ObjectType = 0x5
)

func (t ObjectType) String() string {
	switch t {
	case ObjectStorage:
		return "Storage"
	case ObjectStream:
		return "Stream"
	case ObjectRootStorage:
		return "RootStorage"
	default:
		return "Unknown"
	}
}

type colorFlag uint8

const (
	colorRed   colorFlag = 0x0
	colorBlack colorFlag = 0x1
)

const dirEntrySize = 128

// direntCommon holds the fields every directory-entry variant shares:
// name, the tree links that organize siblings, and this entry's own
// stream ID. Entry variants embed it so Name()/Type() are defined once
// and satisfy the Entry interface for all four concrete types.
type direntCommon struct {
	id         uint32
	name       string
	objectType ObjectType
	color      colorFlag
	left       uint32
	right      uint32
	child      uint32
}

func (d direntCommon) Name() string     { return d.name }
func (d direntCommon) Type() ObjectType { return d.objectType }

func (d direntCommon) hasLeft() bool  { return d.left != noStream }
func (d direntCommon) hasRight() bool { return d.right != noStream }
func (d direntCommon) hasChild() bool { return d.child != noStream }

// Entry is a directory entry: one of *StorageEntry, *StreamEntry,
// *RootStorageEntry or *UnknownEntry, dispatched on the object-type byte
// at construction time. Variant-only operations (CLSID, timestamps,
// stream size) live on the concrete types, not on this interface.
type Entry interface {
	Name() string
	Type() ObjectType
}

// StorageEntry is a directory-like container. Its parent object must be
// another storage object or the root storage object.
type StorageEntry struct {
	direntCommon
	clsid      [16]byte
	stateBits  uint32
	created    [8]byte
	modified   [8]byte
}

// CLSID returns the object class GUID, or all zeroes if none was set.
func (e *StorageEntry) CLSID() [16]byte { return e.clsid }

// StateBits returns the user-defined storage flags.
func (e *StorageEntry) StateBits() uint32 { return e.stateBits }

// Created returns the entry's creation time and whether one was
// recorded (a stored value of all zeroes means unset).
func (e *StorageEntry) Created() (time.Time, bool) { return filetimeToTime(e.created) }

// Modified returns the entry's last-modified time and whether one was
// recorded.
func (e *StorageEntry) Modified() (time.Time, bool) { return filetimeToTime(e.modified) }

// RootStorageEntry is the single top-level container in a compound
// file. Its "stream" (starting sector + size) is the mini-stream that
// backs every mini-FAT-allocated stream in the file.
type RootStorageEntry struct {
	direntCommon
	clsid             [16]byte
	stateBits         uint32
	startSector       sectorNumber
	size              uint64
}

func (e *RootStorageEntry) CLSID() [16]byte  { return e.clsid }
func (e *RootStorageEntry) StateBits() uint32 { return e.stateBits }

// Size returns the mini-stream's declared size in bytes.
func (e *RootStorageEntry) Size() uint64 { return e.size }

// StreamEntry is a file-like leaf. Its parent object must be a storage
// object or the root storage object.
type StreamEntry struct {
	direntCommon
	startSector sectorNumber
	size        uint64
}

// Size returns the stream's declared size in bytes.
func (e *StreamEntry) Size() uint64 { return e.size }

// UnknownEntry is an unallocated directory-entry slot (object-type 0).
type UnknownEntry struct {
	direntCommon
}

// foldedName returns the length-first, uppercase-folded key the format
// uses to order sibling entries in the red-black tree (spec.md §9: the
// format mandates folded comparison; a plain exact match is a
// documented bug in the reference this spec was distilled from).
func foldedName(name string) (int, string) {
	folded := strings.ToUpper(name)
	return len(folded), folded
}

func sameName(a, b string) bool {
	la, fa := foldedName(a)
	lb, fb := foldedName(b)
	return la == lb && fa == fb
}

// decodeEntryName decodes the UTF-16LE name field, stripping the
// trailing terminating-null code unit. nameLength is the on-disk byte
// count, which must be even, >= 2 and <= 64 for an allocated entry.
func decodeEntryName(raw []uint16, nameLength uint16) (string, error) {
	if nameLength == 0 {
		return "", nil
	}
	if nameLength%2 != 0 || nameLength > 64 || nameLength < 2 {
		return "", &MalformedEntryError{Field: "name_length", Value: uint8(nameLength)}
	}
	units := int(nameLength/2) - 1 // drop the terminating null
	if units < 0 || units > len(raw) {
		return "", &MalformedEntryError{Field: "name_length", Value: uint8(nameLength)}
	}
	return string(utf16.Decode(raw[:units])), nil
}
