package utils

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we can
// log them as errors.
type Recovery struct{}

var _ coledger.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (Recovery) Check(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Checker) (_ *coledger.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (Recovery) Deliver(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Deliverer) (_ *coledger.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
