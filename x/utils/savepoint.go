package utils

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// Savepoint will isolate all data inside of the call, and commit or
// rollback to savepoint based on the returned error. A failed transaction
// leaves the store exactly as it was before the call.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ coledger.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator, but you must call
// OnCheck/OnDeliver so it will be triggered.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint.
func (s Savepoint) Check(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Checker) (*coledger.CheckResult, error) {
	cstore, ok := store.(coledger.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver will optionally set a checkpoint.
func (s Savepoint) Deliver(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Deliverer) (*coledger.DeliverResult, error) {
	cstore, ok := store.(coledger.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
