package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-dns-dashboard/internal/models"
)

func newTestStores(t *testing.T) *LedgerStores {
	t.Helper()
	db, err := NewMemPebbleDB()
	require.NoError(t, err)
	stores := NewLedgerStores(db)
	t.Cleanup(func() { _ = stores.Close() })
	return stores
}

func block(index int64, names ...string) *models.Block {
	b := &models.Block{Index: index, Hash: "h", PreviousHash: "p", Domains: []models.DomainRecord{}}
	for _, n := range names {
		b.Domains = append(b.Domains, models.DomainRecord{DomainName: n, IPAddress: "1.2.3.4", Owner: "o"})
	}
	return b
}

func TestEmptyChain(t *testing.T) {
	s := newTestStores(t)

	tip, err := s.MetaStore.GetTip()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), tip)

	latest, err := s.BlockStore.GetLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	blocks, err := s.BlockStore.All()
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestAppendKeepsChainOrder(t *testing.T) {
	s := newTestStores(t)

	// more than ten blocks so lexical and numeric order would differ without padding
	for i := int64(0); i < 12; i++ {
		require.NoError(t, s.BlockStore.Append(block(i)))
	}

	blocks, err := s.BlockStore.All()
	require.NoError(t, err)
	require.Len(t, blocks, 12)
	for i, b := range blocks {
		assert.Equal(t, int64(i), b.Index)
	}

	latest, err := s.BlockStore.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, int64(11), latest.Index)
}

func TestDomainIndex(t *testing.T) {
	s := newTestStores(t)
	require.NoError(t, s.BlockStore.Append(block(0)))
	require.NoError(t, s.BlockStore.Append(block(1, "zed.block")))
	require.NoError(t, s.BlockStore.Append(block(2, "Alice.block")))

	ok, err := s.DomainStore.Exists("alice.block")
	require.NoError(t, err)
	assert.True(t, ok)

	rec, err := s.DomainStore.Get("ALICE.BLOCK")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Alice.block", rec.DomainName)

	missing, err := s.DomainStore.Get("ghost.block")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := s.DomainStore.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "zed.block", all[0].DomainName)
	assert.Equal(t, "Alice.block", all[1].DomainName)
}

func TestUnknownColumnFamily(t *testing.T) {
	s := newTestStores(t)
	_, err := s.DB.Get("nope", []byte("k"))
	assert.Error(t, err)
}

func TestPrefixUpperBound(t *testing.T) {
	assert.Equal(t, []byte("blk;"), prefixUpperBound([]byte("blk:")))
	assert.Equal(t, []byte{0x02}, prefixUpperBound([]byte{0x01, 0xff}))
	assert.Nil(t, prefixUpperBound([]byte{0xff}))
	assert.Nil(t, prefixUpperBound(nil))
}
