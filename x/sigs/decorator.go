/*
Package sigs provides basic authentication middleware to verify the
signatures on the transaction, and maintain nonces for replay protection.
*/
package sigs

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

const (
	signatureVerifyCost = 500
)

// RegisterQuery will register the signer sequences as "/auth".
func RegisterQuery(qr coledger.QueryRouter) {
	qr.Register("/auth", coledger.QueryHandlerFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		addr := coledger.Address(data)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return GetUser(db, addr)
	}))
}

// Decorator verifies the signatures and adds them to the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ coledger.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which appends
// the chainID before checking the signature, and requires at least one
// signature to be present.
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Checker) (*coledger.CheckResult, error) {
	ctx, signers, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	// The most expensive operation is the signature validation. We
	// charge gas proportionally to the effort.
	res.GasAllocated += int64(signers * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx, next coledger.Deliverer) (*coledger.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) verify(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx) (coledger.Context, int, error) {
	var signers []coledger.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, coledger.GetChainID(ctx))
		if err != nil {
			return ctx, 0, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return ctx, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
