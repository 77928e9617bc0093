package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheWrap(t *testing.T) {
	suite := NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
	t.Run("get set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
}

func TestLogableStoreRecordsOperations(t *testing.T) {
	kv, ops := LogableStore()

	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSetOp())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.Equal(t, []byte("1"), got[0].Value())
	assert.False(t, got[1].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
}

func TestDiscardedCacheLeavesParentUntouched(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("balance"), []byte{100}))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("balance"), []byte{0}))
	require.NoError(t, cache.Set([]byte("request"), []byte{1}))
	cache.Discard()

	val, err := base.Get([]byte("balance"))
	require.NoError(t, err)
	assert.Equal(t, []byte{100}, val)
	has, err := base.Has([]byte("request"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNilKeyPanics(t *testing.T) {
	kv := MemStore()
	assert.Panics(t, func() { _ = kv.Set(nil, []byte("x")) })
	assert.Panics(t, func() { _ = kv.Delete(nil) })
}
