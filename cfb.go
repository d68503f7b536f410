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

// Package olekit implements a read-only accessor for Microsoft's Compound
// File Binary File Format (http://msdn.microsoft.com/en-us/library/dd942138.aspx),
// also known as OLE or COM structured storage and used by early MS Office
// document formats.
//
// Example:
//
//	f, err := olekit.Open("test/test.doc")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//	entry, ok := f.Find("WordDocument")
//	if !ok {
//		log.Fatal("no WordDocument stream")
//	}
//	data, err := f.ReadStream(entry.Name())
package olekit

import (
	"io"
	"os"

	"github.com/dsoprea/go-logging"
)

// CompoundFile provides read-only, random access to the storages and
// streams of an opened compound file. A CompoundFile built over an
// io.ReaderAt is safe for concurrent read access by multiple goroutines,
// since every operation is expressed as positioned reads with no shared
// seek cursor.
type CompoundFile struct {
	header Header
	dir    *Directory

	r          *sectionReader
	size       int64
	sectorSize uint32

	extraDIFAT       []sectorNumber
	extraDIFATLoaded bool

	closer io.Closer
}

// Open opens the named file and parses it as a compound file.
func Open(name string) (*CompoundFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, log.Wrap(err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, log.Wrap(err)
	}
	cf, err := NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	cf.closer = f
	return cf, nil
}

// NewReader parses a compound file already available as a ReaderAt of the
// given size (e.g. a memory-mapped file, or an *os.File from a caller who
// wants to manage its own Close).
func NewReader(ra io.ReaderAt, size int64) (*CompoundFile, error) {
	sr := newSectionReader(ra, size)
	h, err := readHeader(sr)
	if err != nil {
		return nil, err
	}
	cf := &CompoundFile{
		header:     h,
		r:          sr,
		size:       size,
		sectorSize: h.SectorSize(),
	}
	if err := cf.ensureDIFATLoaded(); err != nil {
		return nil, err
	}
	dir, err := buildDirectory(cf)
	if err != nil {
		return nil, err
	}
	cf.dir = dir
	return cf, nil
}

// Close releases the underlying file, if CompoundFile opened it itself
// (via Open). Closing a CompoundFile built with NewReader is a no-op; the
// caller owns that lifetime.
func (cf *CompoundFile) Close() error {
	if cf.closer == nil {
		return nil
	}
	return cf.closer.Close()
}

// Header returns the parsed compound-file header.
func (cf *CompoundFile) Header() Header { return cf.header }

// SectorSize returns the file's sector size in bytes (512 or 4096).
func (cf *CompoundFile) SectorSize() uint32 { return cf.sectorSize }

// Root returns the root storage entry.
func (cf *CompoundFile) Root() *RootStorageEntry { return cf.dir.Root() }

// Entries returns every allocated directory entry, in on-disk order.
func (cf *CompoundFile) Entries() []Entry { return cf.dir.Entries() }

// Find looks up a directory entry by name using folded, length-first
// comparison (spec-blessed linear scan in place of a red-black-tree
// descent).
func (cf *CompoundFile) Find(name string) (Entry, bool) { return cf.dir.Find(name) }

// Children returns parent's direct children in name order.
func (cf *CompoundFile) Children(parent Entry) []Entry { return cf.dir.Children(parent) }

// Walk visits the root storage and every descendant depth-first.
func (cf *CompoundFile) Walk(fn func(path []string, e Entry) error) error {
	return cf.dir.Walk(fn)
}

// ReadStream looks up name and materializes the full contents of the
// stream it names, choosing the mini-FAT or regular-FAT chain walk
// according to its declared size and the header's mini-stream cutoff.
// It returns (nil, nil) if no entry named name exists, and a
// *MalformedEntryError if the entry exists but is not a stream.
func (cf *CompoundFile) ReadStream(name string) ([]byte, error) {
	e, ok := cf.dir.Find(name)
	if !ok {
		return nil, nil
	}
	if _, ok := e.(*StreamEntry); !ok {
		return nil, &MalformedEntryError{Field: "object_type", Value: uint8(e.Type())}
	}
	return readStream(cf, e)
}

// ReadMiniStream materializes the root storage's mini-stream, the backing
// store for every mini-FAT-allocated stream in the file.
func (cf *CompoundFile) ReadMiniStream() ([]byte, error) {
	root := cf.dir.Root()
	return readRegularChain(cf, root.startSector, root.size)
}
