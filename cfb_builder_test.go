package olekit

import (
	"encoding/binary"
	"unicode/utf16"
)

// buildFixture hand-assembles a minimal, valid version-3 compound file with
// 512-byte sectors: one FAT sector, one directory sector (root storage,
// an empty "Details" storage, a mini-FAT-allocated "Small" stream, and a
// regular-FAT "Big" stream), one mini-FAT sector, one mini-stream data
// sector, and ten data sectors for the big stream. No .doc/.hwp binary
// fixtures ship with this module, so tests exercise the format against a
// fixture built the same way the teacher's own tree-traversal tests built
// entries with no backing file.
func buildFixture() []byte {
	const sectorSize = 512
	const totalSectors = 14 // sectors 0..13

	buf := make([]byte, 512+sectorSize*totalSectors)

	binary.LittleEndian.PutUint64(buf[0:8], signature)
	binary.LittleEndian.PutUint16(buf[24:26], 0x003E)
	binary.LittleEndian.PutUint16(buf[26:28], 3)
	binary.LittleEndian.PutUint16(buf[28:30], byteOrderMark)
	binary.LittleEndian.PutUint16(buf[30:32], 9)
	binary.LittleEndian.PutUint16(buf[32:34], 6)
	binary.LittleEndian.PutUint32(buf[40:44], 0)
	binary.LittleEndian.PutUint32(buf[44:48], 1)
	binary.LittleEndian.PutUint32(buf[48:52], 1) // directory sector 1
	binary.LittleEndian.PutUint32(buf[56:60], miniStreamCutoffWant)
	binary.LittleEndian.PutUint32(buf[60:64], 2) // mini-FAT sector 2
	binary.LittleEndian.PutUint32(buf[64:68], 1)
	binary.LittleEndian.PutUint32(buf[68:72], uint32(endOfChain))
	binary.LittleEndian.PutUint32(buf[72:76], 0)
	for i := 0; i < headerInitialDifatCount; i++ {
		off := 76 + i*4
		if i == 0 {
			binary.LittleEndian.PutUint32(buf[off:off+4], 0) // FAT sector 0
		} else {
			binary.LittleEndian.PutUint32(buf[off:off+4], uint32(freeSect))
		}
	}

	sectorOffset := func(n int) int { return 512 + n*sectorSize }

	fatOff := sectorOffset(0)
	setFAT := func(i int, v uint32) {
		off := fatOff + i*4
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
	}
	for i := 0; i < int(sectorSize/4); i++ {
		setFAT(i, uint32(freeSect))
	}
	setFAT(0, uint32(fatSect))
	setFAT(1, uint32(endOfChain)) // directory: one sector
	setFAT(2, uint32(endOfChain)) // mini-FAT: one sector
	setFAT(3, uint32(endOfChain)) // mini-stream data: one sector
	for i := 4; i <= 12; i++ {
		setFAT(i, uint32(i+1))
	}
	setFAT(13, uint32(endOfChain))

	miniFATOff := sectorOffset(2)
	setMiniFAT := func(i int, v uint32) {
		off := miniFATOff + i*4
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
	}
	for i := 0; i < int(sectorSize/4); i++ {
		setMiniFAT(i, uint32(freeSect))
	}
	setMiniFAT(0, uint32(endOfChain)) // Small's sole mini-sector

	dirOff := sectorOffset(1)
	writeName := func(entryOff int, name string) {
		units := utf16.Encode([]rune(name))
		for i, u := range units {
			binary.LittleEndian.PutUint16(buf[entryOff+i*2:entryOff+i*2+2], u)
		}
		nameLen := uint16((len(units) + 1) * 2)
		binary.LittleEndian.PutUint16(buf[entryOff+64:entryOff+66], nameLen)
	}
	writeEntry := func(idx int, name string, objType, color byte, left, right, child, startSector uint32, size uint64) {
		off := dirOff + idx*dirEntrySize
		writeName(off, name)
		buf[off+66] = objType
		buf[off+67] = color
		binary.LittleEndian.PutUint32(buf[off+68:off+72], left)
		binary.LittleEndian.PutUint32(buf[off+72:off+76], right)
		binary.LittleEndian.PutUint32(buf[off+76:off+80], child)
		binary.LittleEndian.PutUint32(buf[off+116:off+120], startSector)
		binary.LittleEndian.PutUint64(buf[off+120:off+128], size)
	}

	writeEntry(0, "Root Entry", uint8(ObjectRootStorage), uint8(colorBlack), noStream, noStream, 1, 3, 64)
	writeEntry(1, "Details", uint8(ObjectStorage), uint8(colorBlack), noStream, 2, noStream, 0, 0)
	writeEntry(2, "Small", uint8(ObjectStream), uint8(colorBlack), noStream, 3, noStream, 0, 50)
	writeEntry(3, "Big", uint8(ObjectStream), uint8(colorBlack), noStream, noStream, noStream, 4, 5000)

	miniDataOff := sectorOffset(3)
	for i := 0; i < 50; i++ {
		buf[miniDataOff+i] = byte('a' + i%26)
	}

	bigContent := make([]byte, 5000)
	for i := range bigContent {
		bigContent[i] = byte(i % 251)
	}
	written := 0
	for s := 4; s <= 13; s++ {
		off := sectorOffset(s)
		n := sectorSize
		if written+n > len(bigContent) {
			n = len(bigContent) - written
		}
		copy(buf[off:off+n], bigContent[written:written+n])
		written += n
	}

	return buf
}

func fixtureBigContent() []byte {
	bigContent := make([]byte, 5000)
	for i := range bigContent {
		bigContent[i] = byte(i % 251)
	}
	return bigContent
}

func fixtureSmallContent() []byte {
	small := make([]byte, 50)
	for i := range small {
		small[i] = byte('a' + i%26)
	}
	return small
}
