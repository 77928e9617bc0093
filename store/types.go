package store

import "github.com/iov-one/coledger"

// Move references for all storage types into this package for shorter
// names everywhere.

type (
	ReadOnlyKVStore  = coledger.ReadOnlyKVStore
	SetDeleter       = coledger.SetDeleter
	KVStore          = coledger.KVStore
	CacheableKVStore = coledger.CacheableKVStore
	KVCacheWrap      = coledger.KVCacheWrap
	CommitKVStore    = coledger.CommitKVStore
	CommitID         = coledger.CommitID
)

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}
