package olekit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHeaderV3() Header {
	return Header{
		Signature:            signature,
		MajorVersion:         3,
		ByteOrder:            byteOrderMark,
		SectorShift:          9,
		MiniSectorShift:      miniSectorShiftWant,
		MiniStreamCutoffSize: miniStreamCutoffWant,
	}
}

func TestValidateHeaderAcceptsWellFormedV3(t *testing.T) {
	assert.NoError(t, validateHeader(validHeaderV3()))
}

func TestValidateHeaderAcceptsWellFormedV4(t *testing.T) {
	h := validHeaderV3()
	h.MajorVersion = 4
	h.SectorShift = 0x000C
	assert.NoError(t, validateHeader(h))
}

func TestValidateHeaderRejectsBadSignature(t *testing.T) {
	h := validHeaderV3()
	h.Signature = 0
	err := validateHeader(h)
	require.Error(t, err)
	var target *MalformedHeaderError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "signature", target.Field)
}

func TestValidateHeaderRejectsUnsupportedVersion(t *testing.T) {
	h := validHeaderV3()
	h.MajorVersion = 7
	err := validateHeader(h)
	require.Error(t, err)
	var target *UnsupportedVersionError
	assert.ErrorAs(t, err, &target)
}

func TestValidateHeaderRejectsMismatchedSectorShift(t *testing.T) {
	h := validHeaderV3()
	h.SectorShift = 0x000C // v4 value on a v3 header
	err := validateHeader(h)
	require.Error(t, err)
	var target *MalformedHeaderError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "sector_shift", target.Field)
}

func TestValidateHeaderRejectsNonzeroV3DirectorySectorCount(t *testing.T) {
	h := validHeaderV3()
	h.NumDirectorySectors = 1
	err := validateHeader(h)
	require.Error(t, err)
	var target *MalformedHeaderError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "no_of_directory_sectors", target.Field)
}

func TestHeaderSectorSize(t *testing.T) {
	h := validHeaderV3()
	assert.EqualValues(t, 512, h.SectorSize())
	h.MajorVersion, h.SectorShift = 4, 0x000C
	assert.EqualValues(t, 4096, h.SectorSize())
}

func TestNoOfDirectorySectors(t *testing.T) {
	h := validHeaderV3()
	_, ok := h.NoOfDirectorySectors()
	assert.False(t, ok)

	h.NumDirectorySectors = 3
	n, ok := h.NoOfDirectorySectors()
	assert.True(t, ok)
	assert.EqualValues(t, 3, n)
}

func TestReadHeaderFromFixture(t *testing.T) {
	data := buildFixture()
	sr := newSectionReader(bytes.NewReader(data), int64(len(data)))
	h, err := readHeader(sr)
	require.NoError(t, err)
	assert.EqualValues(t, 3, h.MajorVersion)
	assert.EqualValues(t, 1, h.DirectorySectorLoc)
}
