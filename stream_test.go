package olekit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRegularChainTruncatesLastSector(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out, err := readRegularChain(cf, 4, 5000)
	require.NoError(t, err)
	assert.Equal(t, fixtureBigContent(), out)
}

func TestReadRegularChainEmpty(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out, err := readRegularChain(cf, endOfChain, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadMiniChainReturnsPerMiniSectorBytes(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out, err := readMiniChain(cf, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, fixtureSmallContent(), out)
}

func TestReadRegularChainDetectsTruncation(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	_, err = readRegularChain(cf, 4, 1<<20)
	require.Error(t, err)
	var target *TruncatedFileError
	assert.ErrorAs(t, err, &target)
}
