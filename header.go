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

const (
	signature            uint64 = 0xE11AB1A1E011CFD0
	byteOrderMark        uint16 = 0xFFFE
	miniSectorShiftWant  uint16 = 0x0006
	miniStreamCutoffWant uint32 = 0x00001000

	headerInitialDifatCount = 109
	difatEntrySize          = 4
)

// Header is a typed, read-only view over a compound file's first 512
// header bytes: signature, version, sector geometry and chain roots.
type Header struct {
	Signature            uint64
	MinorVersion          uint16
	MajorVersion          uint16
	ByteOrder             uint16
	SectorShift           uint16
	MiniSectorShift       uint16
	NumDirectorySectors   uint32 // version 3: always 0
	NumFATSectors         uint32
	DirectorySectorLoc    sectorNumber
	TransactionSignature  uint32
	MiniStreamCutoffSize  uint32
	MiniFATSectorLoc      sectorNumber
	NumMiniFATSectors     uint32
	DIFATSectorLoc        sectorNumber
	NumDIFATSectors       uint32
	initialDIFAT          [headerInitialDifatCount]sectorNumber
}

// NoOfDirectorySectors mirrors spec.md's Option(SectorCount): version 3
// files must report zero here, meaning "not tracked."
func (h Header) NoOfDirectorySectors() (uint32, bool) {
	if h.NumDirectorySectors == 0 {
		return 0, false
	}
	return h.NumDirectorySectors, true
}

// SectorSize returns the sector size in bytes implied by SectorShift.
func (h Header) SectorSize() uint32 {
	return 1 << h.SectorShift
}

func readHeader(r *sectionReader) (Header, error) {
	buf, err := r.readAt(0, 512)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Signature:            binary.LittleEndian.Uint64(buf[0:8]),
		MinorVersion:         binary.LittleEndian.Uint16(buf[24:26]),
		MajorVersion:         binary.LittleEndian.Uint16(buf[26:28]),
		ByteOrder:            binary.LittleEndian.Uint16(buf[28:30]),
		SectorShift:          binary.LittleEndian.Uint16(buf[30:32]),
		MiniSectorShift:      binary.LittleEndian.Uint16(buf[32:34]),
		NumDirectorySectors:  binary.LittleEndian.Uint32(buf[40:44]),
		NumFATSectors:        binary.LittleEndian.Uint32(buf[44:48]),
		DirectorySectorLoc:   sectorNumber(binary.LittleEndian.Uint32(buf[48:52])),
		TransactionSignature: binary.LittleEndian.Uint32(buf[52:56]),
		MiniStreamCutoffSize: binary.LittleEndian.Uint32(buf[56:60]),
		MiniFATSectorLoc:     sectorNumber(binary.LittleEndian.Uint32(buf[60:64])),
		NumMiniFATSectors:    binary.LittleEndian.Uint32(buf[64:68]),
		DIFATSectorLoc:       sectorNumber(binary.LittleEndian.Uint32(buf[68:72])),
		NumDIFATSectors:      binary.LittleEndian.Uint32(buf[72:76]),
	}
	for i := 0; i < headerInitialDifatCount; i++ {
		off := 76 + i*difatEntrySize
		h.initialDIFAT[i] = sectorNumber(binary.LittleEndian.Uint32(buf[off : off+4]))
	}

	if err := validateHeader(h); err != nil {
		return Header{}, err
	}
	return h, nil
}

func validateHeader(h Header) error {
	if h.Signature != signature {
		return &MalformedHeaderError{Field: "signature", Expected: "0xE11AB1A1E011CFD0", Actual: hex64(h.Signature)}
	}
	if h.MajorVersion != 3 && h.MajorVersion != 4 {
		return &UnsupportedVersionError{Major: h.MajorVersion}
	}
	if h.ByteOrder != byteOrderMark {
		return &MalformedHeaderError{Field: "byte_order", Expected: "0xFFFE", Actual: hex16(h.ByteOrder)}
	}
	wantShift := uint16(9)
	if h.MajorVersion == 4 {
		wantShift = 0x000C
	}
	if h.SectorShift != wantShift {
		return &MalformedHeaderError{Field: "sector_shift", Expected: hex16(wantShift), Actual: hex16(h.SectorShift)}
	}
	if h.MiniSectorShift != miniSectorShiftWant {
		return &MalformedHeaderError{Field: "mini_sector_shift", Expected: hex16(miniSectorShiftWant), Actual: hex16(h.MiniSectorShift)}
	}
	if h.MiniStreamCutoffSize != miniStreamCutoffWant {
		return &MalformedHeaderError{Field: "mini_stream_cutoff_size", Expected: "0x00001000", Actual: hex32(h.MiniStreamCutoffSize)}
	}
	if h.MajorVersion == 3 && h.NumDirectorySectors != 0 {
		return &MalformedHeaderError{Field: "no_of_directory_sectors", Expected: "0", Actual: hex32(h.NumDirectorySectors)}
	}
	return nil
}

// sectorOfFAT returns the sector number of the k-th FAT sector, reading
// straight out of the header's embedded 109 entries for k < 109 and
// chasing the DIFAT sector chain (each DIFAT sector's last slot names
// the next one) beyond that.
func (cf *CompoundFile) sectorOfFAT(k uint32) (sectorNumber, error) {
	if k < headerInitialDifatCount {
		return cf.header.initialDIFAT[k], nil
	}
	if err := cf.ensureDIFATLoaded(); err != nil {
		return 0, err
	}
	idx := int(k) - headerInitialDifatCount
	if idx < 0 || idx >= len(cf.extraDIFAT) {
		return 0, &MalformedChainError{StartSector: cf.header.DIFATSectorLoc, Reason: "FAT index beyond available DIFAT entries"}
	}
	return cf.extraDIFAT[idx], nil
}

// ensureDIFATLoaded walks the DIFAT sector chain rooted at
// DIFATSectorLoc, populating cf.extraDIFAT with every FAT-sector
// location past the header's embedded 109. Each DIFAT sector holds
// (sectorSize/4 - 1) FAT locations followed by the next DIFAT sector
// number (or END-OF-CHAIN).
func (cf *CompoundFile) ensureDIFATLoaded() error {
	if cf.extraDIFATLoaded {
		return nil
	}
	cf.extraDIFATLoaded = true
	if cf.header.NumDIFATSectors == 0 {
		return nil
	}
	entries := cf.sectorSize/difatEntrySize - 1
	sect := cf.header.DIFATSectorLoc
	for i := uint32(0); i < cf.header.NumDIFATSectors; i++ {
		if !sect.isOrdinary() {
			return &MalformedChainError{StartSector: cf.header.DIFATSectorLoc, Reason: "DIFAT chain ended early"}
		}
		buf, err := cf.r.readAt(sect.byteOffset(cf.sectorSize), int(cf.sectorSize))
		if err != nil {
			return err
		}
		for j := uint32(0); j < entries; j++ {
			off := j * difatEntrySize
			cf.extraDIFAT = append(cf.extraDIFAT, sectorNumber(binary.LittleEndian.Uint32(buf[off:off+4])))
		}
		sect = sectorNumber(binary.LittleEndian.Uint32(buf[entries*difatEntrySize:]))
	}
	return nil
}

func hex64(v uint64) string { return hexFmt(int64(v), 16) }
func hex32(v uint32) string { return hexFmt(int64(v), 8) }
func hex16(v uint16) string { return hexFmt(int64(v), 4) }

func hexFmt(v int64, width int) string {
	const hexDigits = "0123456789ABCDEF"
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return "0x" + string(out)
}
