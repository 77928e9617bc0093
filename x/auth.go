/*
Package x contains some standard extensions and helpers shared by the ledger
extensions in its subpackages.
*/
package x

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper.
	GetConditions(coledger.Context) []coledger.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(coledger.Context, coledger.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx coledger.Context) []coledger.Condition {
	var res []coledger.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx coledger.Context, addr coledger.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx coledger.Context, auth Authenticator) []coledger.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]coledger.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil.
func MainSigner(ctx coledger.Context, auth Authenticator) coledger.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// AnySigner returns the address of the main signer. It fails with
// ErrUnauthorized when the transaction is not signed.
func AnySigner(ctx coledger.Context, auth Authenticator) (coledger.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}
