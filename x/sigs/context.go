package sigs

import (
	"context"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx coledger.Context, signers []coledger.Condition) coledger.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives you the conditions proven by the transaction
// signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context. May be empty.
func (Authenticate) GetConditions(ctx coledger.Context) []coledger.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]coledger.Condition)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx coledger.Context, addr coledger.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
