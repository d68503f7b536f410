package olekit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFATSectorLookup(t *testing.T) {
	sec := make(fatSector, 8)
	sec[4] = 0xEF
	sec[5] = 0xBE
	sec[6] = 0xAD
	sec[7] = 0xDE
	assert.EqualValues(t, sectorNumber(0xDEADBEEF), sec.lookup(1))
}

func TestFATCacheNextWalksChain(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	cache := newFATCache(cf)
	n, err := cache.next(4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	n, err = cache.next(13)
	require.NoError(t, err)
	assert.True(t, n.isEndOfChain())
}

func TestFATCacheNextMini(t *testing.T) {
	data := buildFixture()
	cf, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	cache := newFATCache(cf)
	n, err := cache.nextMini(0)
	require.NoError(t, err)
	assert.True(t, n.isEndOfChain())
}
