package app

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed coledger.CommitKVStore
	deliver   coledger.KVCacheWrap
	check     coledger.KVCacheWrap
}

// NewCommitStore loads the latest version of given store and sets up the
// deliver and check caches.
func NewCommitStore(store coledger.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "cannot load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash.
func (cs *CommitStore) CommitInfo() (coledger.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it to disk.
// It then regenerates new deliver and check caches. All changes done in
// the check cache are dropped.
func (cs *CommitStore) Commit() (coledger.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return coledger.CommitID{}, errors.Wrap(err, "cannot flush deliver cache")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() coledger.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() coledger.CacheableKVStore {
	return cs.deliver
}

// QueryStore returns a read only view of the state that was committed last.
func (cs *CommitStore) QueryStore() coledger.ReadOnlyKVStore {
	return cs.committed
}

// _cl: is a prefix for internal ledger data
const chainIDKey = "_cl:chainID"

func loadChainID(kv coledger.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(kv coledger.KVStore, chainID string) error {
	if !coledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
